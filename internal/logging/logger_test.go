package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		level       string
		environment string
		want        slog.Level
	}{
		{"debug", "production", slog.LevelDebug},
		{"INFO", "development", slog.LevelInfo},
		{"warning", "", slog.LevelWarn},
		{"warn", "", slog.LevelWarn},
		{"error", "", slog.LevelError},
		{"", "development", slog.LevelDebug},
		{"", "production", slog.LevelInfo},
		{"verbose", "development", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level+"/"+tt.environment, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.level, tt.environment))
		})
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "parking-test", "test", "info")

	Info(context.Background(), "vehicle parked", "spot", 1)
	Debug(context.Background(), "dropped at info level")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &record))
	assert.Equal(t, "vehicle parked", record["msg"])
	assert.Equal(t, "parking-test", record["service"])
	assert.Equal(t, "test", record["environment"])
	assert.EqualValues(t, 1, record["spot"])
}

func TestWithContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "parking-test", "test", "debug")

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	Warn(ctx, "exit of unparked vehicle")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, span.SpanContext().TraceID().String(), record["traceId"])
	assert.Equal(t, span.SpanContext().SpanID().String(), record["spanId"])
}
