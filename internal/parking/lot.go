package parking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"parking-allocator/internal/logging"
)

var (
	ErrNoSpotAvailable  = errors.New("no spot available")
	ErrVehicleNotParked = errors.New("vehicle is not parked")
	ErrVehicleParked    = errors.New("vehicle is already parked")
	ErrSpotNotFound     = errors.New("spot not found")
	ErrDuplicateSpot    = errors.New("spot already exists")
	ErrSpotOccupied     = errors.New("spot is occupied")
	ErrInvalidVehicle   = errors.New("vehicle number must be positive")
)

// Lot routes vehicles to the manager of their category. All access is
// serialized by a single lock, which keeps two concurrent entries from being
// allocated the same spot.
type Lot struct {
	mu       sync.Mutex
	strategy Strategy
	prices   PriceTable
	managers map[Category]*InstrumentedManager
}

type CategoryStatus struct {
	Category  Category
	Price     int
	Capacity  int
	Occupied  int
	Available int
	Spots     []SpotStatus
}

type SpotStatus struct {
	ID            int
	Occupied      bool
	VehicleNumber int
}

func NewLot(strategy Strategy, prices PriceTable, telemetry *TelemetryProvider) (*Lot, error) {
	if prices == nil {
		prices = DefaultPrices
	}

	lot := &Lot{
		strategy: strategy,
		prices:   prices,
		managers: make(map[Category]*InstrumentedManager),
	}

	for _, category := range Categories() {
		im, err := NewInstrumentedManager(NewManager(category, strategy), telemetry)
		if err != nil {
			return nil, fmt.Errorf("instrumenting %s manager: %w", category, err)
		}
		lot.managers[category] = im
	}

	return lot, nil
}

func (l *Lot) Strategy() Strategy {
	return l.strategy
}

func (l *Lot) Prices() PriceTable {
	prices := make(PriceTable, len(l.prices))
	for c, p := range l.prices {
		prices[c] = p
	}
	return prices
}

func (l *Lot) manager(category Category) (*InstrumentedManager, error) {
	im, ok := l.managers[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return im, nil
}

func (l *Lot) AddSpot(ctx context.Context, category Category, id int) (*Spot, error) {
	im, err := l.manager(category)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if findSpot(im.Spots(), id) != nil {
		return nil, fmt.Errorf("%w: %s spot %d", ErrDuplicateSpot, category, id)
	}

	spot := NewSpotWithPrices(id, category, l.prices)
	im.AddSpot(ctx, spot)

	logging.Debug(ctx, "spot added", "category", category.String(), "spot_id", id)
	return spot, nil
}

// RemoveSpot takes a free spot out of service.
func (l *Lot) RemoveSpot(ctx context.Context, category Category, id int) error {
	im, err := l.manager(category)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	spot := findSpot(im.Spots(), id)
	if spot == nil {
		return fmt.Errorf("%w: %s spot %d", ErrSpotNotFound, category, id)
	}
	if !spot.IsAvailable() {
		return fmt.Errorf("%w: %s spot %d", ErrSpotOccupied, category, id)
	}

	im.RemoveSpot(ctx, spot)

	logging.Debug(ctx, "spot removed", "category", category.String(), "spot_id", id)
	return nil
}

func (l *Lot) Park(ctx context.Context, v *Vehicle) (*Spot, error) {
	if v.Number <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVehicle, v.Number)
	}
	im, err := l.manager(v.Category)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if spot := l.locate(v.Number); spot != nil {
		return nil, fmt.Errorf("%w: vehicle %d in %s spot %d", ErrVehicleParked, v.Number, spot.Category, spot.ID)
	}

	if !NewEntryGate(im.bind(ctx)).AllowEntry(v) {
		logging.Info(ctx, "entry refused", "vehicle", v.Number, "category", v.Category.String())
		return nil, fmt.Errorf("%w for %s vehicle %d", ErrNoSpotAvailable, v.Category, v.Number)
	}
	spot := im.Manager.Locate(v.Number)

	logging.Info(ctx, "vehicle parked", "vehicle", v.Number, "category", v.Category.String(), "spot_id", spot.ID)
	return spot, nil
}

func (l *Lot) Leave(ctx context.Context, v *Vehicle) (*Spot, error) {
	if v.Number <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVehicle, v.Number)
	}
	im, err := l.manager(v.Category)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	spot := im.Manager.Locate(v.Number)
	NewExitGate(im.bind(ctx)).AllowExit(v)
	if spot == nil {
		logging.Info(ctx, "exit of unparked vehicle", "vehicle", v.Number, "category", v.Category.String())
		return nil, fmt.Errorf("%w: %s vehicle %d", ErrVehicleNotParked, v.Category, v.Number)
	}

	logging.Info(ctx, "vehicle left", "vehicle", v.Number, "category", v.Category.String(), "spot_id", spot.ID)
	return spot, nil
}

// Locate finds the spot holding vehicle number across all categories.
func (l *Lot) Locate(ctx context.Context, number int) (*Spot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, category := range Categories() {
		if spot := l.managers[category].Locate(ctx, number); spot != nil {
			return spot, nil
		}
	}
	return nil, fmt.Errorf("%w: vehicle %d", ErrVehicleNotParked, number)
}

func (l *Lot) locate(number int) *Spot {
	for _, category := range Categories() {
		if spot := l.managers[category].Manager.Locate(number); spot != nil {
			return spot
		}
	}
	return nil
}

func (l *Lot) Status() []CategoryStatus {
	l.mu.Lock()
	defer l.mu.Unlock()

	statuses := make([]CategoryStatus, 0, len(l.managers))
	for _, category := range Categories() {
		im := l.managers[category]
		occupied, total := im.Occupancy()

		status := CategoryStatus{
			Category:  category,
			Price:     l.prices.For(category),
			Capacity:  total,
			Occupied:  occupied,
			Available: total - occupied,
			Spots:     make([]SpotStatus, 0, total),
		}
		for _, spot := range im.Spots() {
			ss := SpotStatus{ID: spot.ID, Occupied: !spot.IsAvailable()}
			if v := spot.Occupant(); v != nil {
				ss.VehicleNumber = v.Number
			}
			status.Spots = append(status.Spots, ss)
		}
		statuses = append(statuses, status)
	}
	return statuses
}

func findSpot(spots []*Spot, id int) *Spot {
	for _, spot := range spots {
		if spot.ID == id {
			return spot
		}
	}
	return nil
}
