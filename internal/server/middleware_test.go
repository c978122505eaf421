package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRequestIDMiddlewareKeepsCallerID(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(RequestIDKey).(string)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", seen)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))
}

func TestTracingAndRecoveryMiddleware(t *testing.T) {
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	otel.SetTracerProvider(tp)

	r := chi.NewRouter()
	r.Use(TracingMiddleware)
	r.Use(RecoveryMiddleware)
	r.Get("/vehicles/{number}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("gate jammed")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/vehicles/101", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	ended := spans.Ended()
	require.Len(t, ended, 2)

	assert.Equal(t, "GET /vehicles/{number}", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int("http.status_code", http.StatusNotFound))
	assert.Equal(t, codes.Unset, ended[0].Status().Code)

	assert.Equal(t, "GET /boom", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
	require.NotEmpty(t, ended[1].Events())
	assert.Equal(t, "exception", ended[1].Events()[0].Name)
}
