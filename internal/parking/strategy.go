package parking

import (
	"fmt"
	"strings"
)

// Strategy picks a free spot for a vehicle. Implementations must not mutate
// the spots they are given and return nil when nothing is available.
type Strategy interface {
	Find(spots []*Spot, v *Vehicle) *Spot
	Name() string
}

const (
	FirstAvailableName = "first_available"
	NearestToGateName  = "nearest_to_gate"
)

// FirstAvailable returns the earliest available spot in sequence order.
type FirstAvailable struct{}

func (FirstAvailable) Name() string { return FirstAvailableName }

func (FirstAvailable) Find(spots []*Spot, _ *Vehicle) *Spot {
	for _, spot := range spots {
		if spot.IsAvailable() {
			return spot
		}
	}
	return nil
}

// NearestToGate treats lower spot IDs as closer to the gate.
type NearestToGate struct{}

func (NearestToGate) Name() string { return NearestToGateName }

func (NearestToGate) Find(spots []*Spot, _ *Vehicle) *Spot {
	var nearest *Spot
	for _, spot := range spots {
		if !spot.IsAvailable() {
			continue
		}
		if nearest == nil || spot.ID < nearest.ID {
			nearest = spot
		}
	}
	return nearest
}

func StrategyByName(name string) (Strategy, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	switch normalized {
	case FirstAvailableName:
		return FirstAvailable{}, nil
	case NearestToGateName:
		return NearestToGate{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}
