package parking

// Manager owns the spots of a single category and assigns them to vehicles
// through its Strategy. Invalid requests are reported through the return
// values only; none of the methods fail loudly.
type Manager interface {
	Category() Category
	Strategy() Strategy

	// AddSpot appends spot when its category matches the manager's and
	// reports whether it was added.
	AddSpot(spot *Spot) bool
	// RemoveSpot drops the first spot with the same identity.
	RemoveSpot(spot *Spot) bool
	Find(v *Vehicle) *Spot
	// AddVehicle parks v on the spot chosen by the strategy. It returns false,
	// leaving every spot untouched, when nothing is free.
	AddVehicle(v *Vehicle) bool
	// RemoveVehicle frees the spot holding a vehicle with v's number and
	// returns it, or nil when the vehicle is not parked here.
	RemoveVehicle(v *Vehicle) *Spot
	Locate(number int) *Spot
	Spots() []*Spot
	Occupancy() (occupied, total int)
}

type spotManager struct {
	category Category
	strategy Strategy
	spots    []*Spot
}

func (m *spotManager) Category() Category {
	return m.category
}

func (m *spotManager) Strategy() Strategy {
	return m.strategy
}

func (m *spotManager) AddSpot(spot *Spot) bool {
	if spot == nil || spot.Category != m.category {
		return false
	}
	m.spots = append(m.spots, spot)
	return true
}

func (m *spotManager) RemoveSpot(spot *Spot) bool {
	for i, s := range m.spots {
		if s == spot {
			m.spots = append(m.spots[:i], m.spots[i+1:]...)
			return true
		}
	}
	return false
}

func (m *spotManager) Find(v *Vehicle) *Spot {
	return m.strategy.Find(m.spots, v)
}

func (m *spotManager) AddVehicle(v *Vehicle) bool {
	spot := m.Find(v)
	if spot == nil {
		return false
	}
	spot.Occupy(v)
	return true
}

func (m *spotManager) RemoveVehicle(v *Vehicle) *Spot {
	spot := m.Locate(v.Number)
	if spot == nil {
		return nil
	}
	spot.Vacate()
	return spot
}

func (m *spotManager) Locate(number int) *Spot {
	for _, spot := range m.spots {
		if !spot.IsAvailable() && spot.Occupant().Number == number {
			return spot
		}
	}
	return nil
}

func (m *spotManager) Spots() []*Spot {
	spots := make([]*Spot, len(m.spots))
	copy(spots, m.spots)
	return spots
}

func (m *spotManager) Occupancy() (occupied, total int) {
	for _, spot := range m.spots {
		if !spot.IsAvailable() {
			occupied++
		}
	}
	return occupied, len(m.spots)
}

type TwoWheelerManager struct {
	spotManager
}

func NewTwoWheelerManager(strategy Strategy) *TwoWheelerManager {
	return &TwoWheelerManager{spotManager{category: TwoWheeler, strategy: strategy}}
}

type FourWheelerManager struct {
	spotManager
}

func NewFourWheelerManager(strategy Strategy) *FourWheelerManager {
	return &FourWheelerManager{spotManager{category: FourWheeler, strategy: strategy}}
}

// NewManager returns the manager implementation for category. Anything other
// than TwoWheeler gets a FourWheelerManager.
func NewManager(category Category, strategy Strategy) Manager {
	if category == TwoWheeler {
		return NewTwoWheelerManager(strategy)
	}
	return NewFourWheelerManager(strategy)
}
