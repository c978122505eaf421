package parking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spotsWith builds two-wheeler spots with the given ids, occupying those
// listed in taken.
func spotsWith(ids []int, taken ...int) []*Spot {
	occupied := make(map[int]bool, len(taken))
	for _, id := range taken {
		occupied[id] = true
	}

	spots := make([]*Spot, 0, len(ids))
	for _, id := range ids {
		spot := NewSpot(id, TwoWheeler)
		if occupied[id] {
			spot.Occupy(NewVehicle(1000+id, TwoWheeler))
		}
		spots = append(spots, spot)
	}
	return spots
}

func TestFirstAvailableFind(t *testing.T) {
	tests := []struct {
		name   string
		ids    []int
		taken  []int
		wantID int
	}{
		{"empty sequence", nil, nil, 0},
		{"first in order", []int{5, 1, 3}, nil, 5},
		{"skips occupied", []int{5, 1, 3}, []int{5}, 1},
		{"last one free", []int{5, 1, 3}, []int{5, 1}, 3},
		{"all occupied", []int{5, 1, 3}, []int{5, 1, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := FirstAvailable{}.Find(spotsWith(tt.ids, tt.taken...), NewVehicle(1, TwoWheeler))
			if tt.wantID == 0 {
				assert.Nil(t, spot)
				return
			}
			require.NotNil(t, spot)
			assert.Equal(t, tt.wantID, spot.ID)
		})
	}
}

func TestNearestToGateFind(t *testing.T) {
	tests := []struct {
		name   string
		ids    []int
		taken  []int
		wantID int
	}{
		{"empty sequence", nil, nil, 0},
		{"minimum id regardless of order", []int{5, 3, 1, 4}, nil, 1},
		{"skips occupied minimum", []int{5, 3, 1, 4}, []int{1}, 3},
		{"only largest free", []int{5, 3, 1, 4}, []int{1, 3, 4}, 5},
		{"all occupied", []int{2, 1}, []int{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spot := NearestToGate{}.Find(spotsWith(tt.ids, tt.taken...), nil)
			if tt.wantID == 0 {
				assert.Nil(t, spot)
				return
			}
			require.NotNil(t, spot)
			assert.Equal(t, tt.wantID, spot.ID)
		})
	}
}

func TestNearestToGateTieKeepsFirst(t *testing.T) {
	first := NewSpot(1, TwoWheeler)
	second := NewSpot(1, TwoWheeler)

	assert.Same(t, first, NearestToGate{}.Find([]*Spot{first, second}, nil))
}

func TestStrategiesDoNotMutate(t *testing.T) {
	for _, strategy := range []Strategy{FirstAvailable{}, NearestToGate{}} {
		t.Run(strategy.Name(), func(t *testing.T) {
			spots := spotsWith([]int{3, 1, 2}, 3)
			before := make([]*Spot, len(spots))
			copy(before, spots)

			strategy.Find(spots, NewVehicle(7, TwoWheeler))

			assert.Equal(t, before, spots)
			assert.False(t, spots[0].IsAvailable())
			assert.True(t, spots[1].IsAvailable())
			assert.True(t, spots[2].IsAvailable())
		})
	}
}

func TestStrategyByName(t *testing.T) {
	s, err := StrategyByName("first_available")
	require.NoError(t, err)
	assert.Equal(t, FirstAvailableName, s.Name())

	s, err = StrategyByName("Nearest-To-Gate")
	require.NoError(t, err)
	assert.Equal(t, NearestToGateName, s.Name())

	_, err = StrategyByName("random")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
