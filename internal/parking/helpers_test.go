package parking

import (
	"testing"

	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func newNoopTelemetry() *TelemetryProvider {
	return NewTelemetryProviderFromProviders(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider())
}

func newTestLot(t *testing.T, strategy Strategy) *Lot {
	t.Helper()
	lot, err := NewLot(strategy, nil, newNoopTelemetry())
	if err != nil {
		t.Fatalf("Failed to create lot: %v", err)
	}
	return lot
}
