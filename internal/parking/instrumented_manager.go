package parking

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	statusSuccess   = "success"
	statusFull      = "full"
	statusNotParked = "not_parked"
	statusRejected  = "rejected"
	statusNotFound  = "not_found"
)

type InstrumentedManager struct {
	Manager
	telemetry *TelemetryProvider

	// Metrics
	entryOperations   metric.Int64Counter
	exitOperations    metric.Int64Counter
	occupancyGauge    metric.Int64UpDownCounter
	operationDuration metric.Float64Histogram
	totalSpotsGauge   metric.Int64UpDownCounter
}

func NewInstrumentedManager(manager Manager, telemetry *TelemetryProvider) (*InstrumentedManager, error) {
	meter := telemetry.Meter()

	entryOperations, err := meter.Int64Counter("parking_entries_total",
		metric.WithDescription("Total number of vehicle entry attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	exitOperations, err := meter.Int64Counter("parking_exits_total",
		metric.WithDescription("Total number of vehicle exit attempts"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	occupancyGauge, err := meter.Int64UpDownCounter("parking_spot_occupancy",
		metric.WithDescription("Current number of occupied parking spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	operationDuration, err := meter.Float64Histogram("parking_operation_duration_seconds",
		metric.WithDescription("Duration of parking manager operations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	totalSpotsGauge, err := meter.Int64UpDownCounter("parking_spots_total",
		metric.WithDescription("Total number of managed parking spots"),
		metric.WithUnit("1"))
	if err != nil {
		return nil, err
	}

	im := &InstrumentedManager{
		Manager:           manager,
		telemetry:         telemetry,
		entryOperations:   entryOperations,
		exitOperations:    exitOperations,
		occupancyGauge:    occupancyGauge,
		operationDuration: operationDuration,
		totalSpotsGauge:   totalSpotsGauge,
	}

	// Spots handed over with a pre-populated manager.
	occupied, total := manager.Occupancy()
	if total > 0 {
		ctx := context.Background()
		totalSpotsGauge.Add(ctx, int64(total), metric.WithAttributes(im.baseAttributes()...))
		occupancyGauge.Add(ctx, int64(occupied), metric.WithAttributes(im.baseAttributes()...))
	}

	return im, nil
}

func (im *InstrumentedManager) baseAttributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("category", im.Category().String()),
		attribute.String("strategy", im.Strategy().Name()),
	}
}

func (im *InstrumentedManager) AddSpot(ctx context.Context, spot *Spot) bool {
	ctx, span := im.telemetry.Tracer().Start(ctx, "parking_manager.add_spot",
		trace.WithAttributes(
			attribute.String("manager.category", im.Category().String()),
			attribute.Int("spot.id", spot.ID),
			attribute.String("spot.category", spot.Category.String()),
		))
	defer span.End()

	start := time.Now()
	added := im.Manager.AddSpot(spot)
	duration := time.Since(start).Seconds()

	labels := append(im.baseAttributes(), attribute.String("operation", "add_spot"))
	if added {
		labels = append(labels, attribute.String("status", statusSuccess))
		span.AddEvent("spot_added")
		im.totalSpotsGauge.Add(ctx, 1, metric.WithAttributes(im.baseAttributes()...))
	} else {
		labels = append(labels, attribute.String("status", statusRejected))
		span.AddEvent("spot_rejected")
	}

	im.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return added
}

func (im *InstrumentedManager) RemoveSpot(ctx context.Context, spot *Spot) bool {
	ctx, span := im.telemetry.Tracer().Start(ctx, "parking_manager.remove_spot",
		trace.WithAttributes(
			attribute.String("manager.category", im.Category().String()),
			attribute.Int("spot.id", spot.ID),
		))
	defer span.End()

	start := time.Now()
	wasOccupied := !spot.IsAvailable()
	removed := im.Manager.RemoveSpot(spot)
	duration := time.Since(start).Seconds()

	labels := append(im.baseAttributes(), attribute.String("operation", "remove_spot"))
	if removed {
		labels = append(labels, attribute.String("status", statusSuccess))
		span.AddEvent("spot_removed")
		im.totalSpotsGauge.Add(ctx, -1, metric.WithAttributes(im.baseAttributes()...))
		if wasOccupied {
			im.occupancyGauge.Add(ctx, -1, metric.WithAttributes(im.baseAttributes()...))
		}
	} else {
		labels = append(labels, attribute.String("status", statusNotFound))
		span.AddEvent("spot_not_managed")
	}

	im.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return removed
}

// AddVehicle parks v and returns the allocated spot, or nil when the manager
// is full.
func (im *InstrumentedManager) AddVehicle(ctx context.Context, v *Vehicle) *Spot {
	ctx, span := im.telemetry.Tracer().Start(ctx, "parking_manager.add_vehicle",
		trace.WithAttributes(
			attribute.Int("vehicle.number", v.Number),
			attribute.String("vehicle.category", v.Category.String()),
			attribute.String("strategy", im.Strategy().Name()),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("finding_available_spot")

	var spot *Spot
	if im.Manager.AddVehicle(v) {
		spot = im.Manager.Locate(v.Number)
	}

	duration := time.Since(start).Seconds()

	labels := append(im.baseAttributes(), attribute.String("operation", "add_vehicle"))

	if spot == nil {
		span.SetStatus(codes.Error, "no spot available")
		span.AddEvent("no_spot_available")
		labels = append(labels, attribute.String("status", statusFull))
	} else {
		span.SetAttributes(
			attribute.Int("allocated_spot.id", spot.ID),
			attribute.Int("allocated_spot.price", spot.Price()),
		)
		span.AddEvent("spot_allocated", trace.WithAttributes(
			attribute.Int("spot.id", spot.ID),
		))
		labels = append(labels, attribute.String("status", statusSuccess))
		im.occupancyGauge.Add(ctx, 1, metric.WithAttributes(im.baseAttributes()...))
	}

	im.entryOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	im.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return spot
}

func (im *InstrumentedManager) RemoveVehicle(ctx context.Context, v *Vehicle) *Spot {
	ctx, span := im.telemetry.Tracer().Start(ctx, "parking_manager.remove_vehicle",
		trace.WithAttributes(
			attribute.Int("vehicle.number", v.Number),
		))
	defer span.End()

	start := time.Now()

	span.AddEvent("releasing_spot")

	spot := im.Manager.RemoveVehicle(v)

	duration := time.Since(start).Seconds()

	labels := append(im.baseAttributes(), attribute.String("operation", "remove_vehicle"))

	if spot == nil {
		span.AddEvent("vehicle_not_parked")
		labels = append(labels, attribute.String("status", statusNotParked))
	} else {
		span.SetAttributes(attribute.Int("released_spot.id", spot.ID))
		span.AddEvent("spot_released")
		labels = append(labels, attribute.String("status", statusSuccess))
		im.occupancyGauge.Add(ctx, -1, metric.WithAttributes(im.baseAttributes()...))
	}

	im.exitOperations.Add(ctx, 1, metric.WithAttributes(labels...))
	im.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return spot
}

func (im *InstrumentedManager) Locate(ctx context.Context, number int) *Spot {
	ctx, span := im.telemetry.Tracer().Start(ctx, "parking_manager.locate",
		trace.WithAttributes(
			attribute.Int("vehicle.number", number),
		))
	defer span.End()

	start := time.Now()
	spot := im.Manager.Locate(number)
	duration := time.Since(start).Seconds()

	labels := append(im.baseAttributes(), attribute.String("operation", "locate"))
	if spot == nil {
		span.AddEvent("vehicle_not_found")
		labels = append(labels, attribute.String("status", statusNotFound))
	} else {
		span.AddEvent("vehicle_found", trace.WithAttributes(
			attribute.Int("spot.id", spot.ID),
		))
		labels = append(labels, attribute.String("status", statusSuccess))
	}

	im.operationDuration.Record(ctx, duration, metric.WithAttributes(labels...))

	return spot
}

// boundManager carries a request context into the gates, which only see the
// context-free manager contract.
type boundManager struct {
	ctx context.Context
	im  *InstrumentedManager
}

func (im *InstrumentedManager) bind(ctx context.Context) boundManager {
	return boundManager{ctx: ctx, im: im}
}

func (b boundManager) AddVehicle(v *Vehicle) bool {
	return b.im.AddVehicle(b.ctx, v) != nil
}

func (b boundManager) RemoveVehicle(v *Vehicle) *Spot {
	return b.im.RemoveVehicle(b.ctx, v)
}
