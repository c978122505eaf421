package parking

type Spot struct {
	ID       int
	Category Category

	occupant *Vehicle
	prices   PriceTable
}

func NewSpot(id int, category Category) *Spot {
	return NewSpotWithPrices(id, category, DefaultPrices)
}

func NewSpotWithPrices(id int, category Category, prices PriceTable) *Spot {
	if prices == nil {
		prices = DefaultPrices
	}
	return &Spot{
		ID:       id,
		Category: category,
		prices:   prices,
	}
}

func (s *Spot) Price() int {
	return s.prices.For(s.Category)
}

// Occupy parks v in the spot. An existing occupant is overwritten; callers
// are expected to pick the spot through a Strategy, which only returns
// available spots.
func (s *Spot) Occupy(v *Vehicle) {
	s.occupant = v
}

// Vacate frees the spot and returns the vehicle that was parked there, if any.
func (s *Spot) Vacate() *Vehicle {
	vehicle := s.occupant
	s.occupant = nil
	return vehicle
}

func (s *Spot) IsAvailable() bool {
	return s.occupant == nil
}

func (s *Spot) Occupant() *Vehicle {
	return s.occupant
}
