package parking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type recordingTelemetry struct {
	provider *TelemetryProvider
	spans    *tracetest.SpanRecorder
	reader   *sdkmetric.ManualReader
}

func newRecordingTelemetry() *recordingTelemetry {
	spans := tracetest.NewSpanRecorder()
	reader := sdkmetric.NewManualReader()

	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return &recordingTelemetry{
		provider: NewTelemetryProviderFromProviders(tp, mp),
		spans:    spans,
		reader:   reader,
	}
}

// sum adds up the int64 data points of the named metric whose attributes
// include every given key/value.
func (rt *recordingTelemetry) sum(t *testing.T, name string, match ...attribute.KeyValue) int64 {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, rt.reader.Collect(context.Background(), &rm))

	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			data, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			for _, dp := range data.DataPoints {
				if hasAll(dp.Attributes, match) {
					total += dp.Value
				}
			}
		}
	}
	return total
}

func hasAll(set attribute.Set, match []attribute.KeyValue) bool {
	for _, kv := range match {
		v, ok := set.Value(kv.Key)
		if !ok || v.Emit() != kv.Value.Emit() {
			return false
		}
	}
	return true
}

func (rt *recordingTelemetry) spanNames() []string {
	var names []string
	for _, span := range rt.spans.Ended() {
		names = append(names, span.Name())
	}
	return names
}

func TestInstrumentedManagerRecordsEntriesAndExits(t *testing.T) {
	rt := newRecordingTelemetry()
	im, err := NewInstrumentedManager(NewManager(TwoWheeler, NearestToGate{}), rt.provider)
	require.NoError(t, err)

	ctx := context.Background()

	require.True(t, im.AddSpot(ctx, NewSpot(1, TwoWheeler)))
	require.False(t, im.AddSpot(ctx, NewSpot(9, FourWheeler)))

	spot := im.AddVehicle(ctx, NewVehicle(101, TwoWheeler))
	require.NotNil(t, spot)
	assert.Equal(t, 1, spot.ID)

	assert.Nil(t, im.AddVehicle(ctx, NewVehicle(102, TwoWheeler)))
	assert.Nil(t, im.RemoveVehicle(ctx, NewVehicle(999, TwoWheeler)))

	assert.Same(t, spot, im.Locate(ctx, 101))
	assert.Same(t, spot, im.RemoveVehicle(ctx, NewVehicle(101, TwoWheeler)))

	status := attribute.Key("status")
	assert.EqualValues(t, 1, rt.sum(t, "parking_entries_total", status.String(statusSuccess)))
	assert.EqualValues(t, 1, rt.sum(t, "parking_entries_total", status.String(statusFull)))
	assert.EqualValues(t, 1, rt.sum(t, "parking_exits_total", status.String(statusSuccess)))
	assert.EqualValues(t, 1, rt.sum(t, "parking_exits_total", status.String(statusNotParked)))
	assert.EqualValues(t, 0, rt.sum(t, "parking_spot_occupancy"))
	assert.EqualValues(t, 1, rt.sum(t, "parking_spots_total",
		attribute.String("category", "TWO"),
		attribute.String("strategy", NearestToGateName),
	))

	assert.Contains(t, rt.spanNames(), "parking_manager.add_vehicle")
	assert.Contains(t, rt.spanNames(), "parking_manager.remove_vehicle")
	assert.Contains(t, rt.spanNames(), "parking_manager.add_spot")
	assert.Contains(t, rt.spanNames(), "parking_manager.locate")
}

func TestInstrumentedManagerCountsPrepopulatedSpots(t *testing.T) {
	rt := newRecordingTelemetry()

	manager := NewManager(FourWheeler, FirstAvailable{})
	manager.AddSpot(NewSpot(1, FourWheeler))
	manager.AddSpot(NewSpot(2, FourWheeler))
	manager.AddVehicle(NewVehicle(7, FourWheeler))

	im, err := NewInstrumentedManager(manager, rt.provider)
	require.NoError(t, err)

	assert.EqualValues(t, 2, rt.sum(t, "parking_spots_total"))
	assert.EqualValues(t, 1, rt.sum(t, "parking_spot_occupancy"))

	spot := manager.Locate(7)
	require.True(t, im.RemoveSpot(context.Background(), spot))
	assert.EqualValues(t, 1, rt.sum(t, "parking_spots_total"))
	assert.EqualValues(t, 0, rt.sum(t, "parking_spot_occupancy"))

	assert.False(t, im.RemoveSpot(context.Background(), spot))
}
