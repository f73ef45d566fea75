package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nestfinder/models"
)

func TestWeightsFor_SumToOne(t *testing.T) {
	tests := []struct {
		name       string
		priorities []models.Priority
		hasCommute bool
	}{
		{"no priorities with commute", nil, true},
		{"no priorities without commute", nil, false},
		{"short commute first", []models.Priority{models.PriorityShortCommute}, true},
		{"three mixed", []models.Priority{models.PriorityLowPrice, models.PrioritySafeArea, models.PriorityGym}, true},
		{"more than three", []models.Priority{models.PriorityGym, models.PriorityParking, models.PriorityLaundry, models.PriorityLowPrice}, false},
		{"unknown tags", []models.Priority{"sunny", "views"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := WeightsFor(tt.priorities, tt.hasCommute)
			assert.InDelta(t, 1.0, w.Sum(), 1e-9)
		})
	}
}

func TestWeightsFor_ShortCommuteBoost(t *testing.T) {
	w := WeightsFor([]models.Priority{models.PriorityShortCommute}, true)

	assert.InDelta(t, 0.40/1.15, w.Commute, 1e-9)
	assert.InDelta(t, 0.25/1.15, w.Neighborhood, 1e-9)
	assert.InDelta(t, 0.25/1.15, w.Budget, 1e-9)
	assert.InDelta(t, 0.25/1.15, w.Amenities, 1e-9)
}

func TestWeightsFor_DecreasingBoosts(t *testing.T) {
	w := WeightsFor([]models.Priority{models.PriorityLowPrice, models.PrioritySafeArea, models.PriorityParking}, true)

	// 0.25+0.15, 0.25+0.10, 0.25+0.05 over 1.30
	assert.InDelta(t, 0.40/1.30, w.Budget, 1e-9)
	assert.InDelta(t, 0.35/1.30, w.Neighborhood, 1e-9)
	assert.InDelta(t, 0.30/1.30, w.Amenities, 1e-9)
	assert.InDelta(t, 0.25/1.30, w.Commute, 1e-9)
}

func TestWeightsFor_NoCommuteKeepsCommuteAtZero(t *testing.T) {
	w := WeightsFor([]models.Priority{models.PriorityShortCommute, models.PriorityLowPrice}, false)

	assert.Equal(t, 0.0, w.Commute)
	assert.InDelta(t, 1.0, w.Sum(), 1e-9)
	// the short_commute slot is spent, low_price gets the second boost
	assert.InDelta(t, 0.45/1.10, w.Budget, 1e-9)
}

func TestWeightsFor_UnknownPriorityConsumesSlot(t *testing.T) {
	w := WeightsFor([]models.Priority{"sunny", "views", "garden", models.PriorityLowPrice}, true)
	assert.Equal(t, BaseWeights(true), w)
}

func TestOverallScore(t *testing.T) {
	w := Weights{Commute: 0.25, Neighborhood: 0.25, Budget: 0.25, Amenities: 0.25}

	assert.Equal(t, 75, OverallScore(AxisScores{HasCommute: true, Commute: 100, Neighborhood: 80, Budget: 70, Amenities: 50}, w))
	assert.Equal(t, 50, OverallScore(AxisScores{HasCommute: false, Commute: 100, Neighborhood: 80, Budget: 70, Amenities: 50}, w))
	assert.Equal(t, 100, OverallScore(AxisScores{HasCommute: true, Commute: 100, Neighborhood: 100, Budget: 100, Amenities: 100}, w))
}

func TestAxisForPriority(t *testing.T) {
	cases := map[models.Priority]Axis{
		models.PriorityShortCommute: AxisCommute,
		models.PrioritySafeArea:     AxisNeighborhood,
		models.PriorityWalkable:     AxisNeighborhood,
		models.PriorityNightlife:    AxisNeighborhood,
		models.PriorityQuietArea:    AxisNeighborhood,
		models.PriorityLowPrice:     AxisBudget,
		models.PriorityParking:      AxisAmenities,
		models.PriorityGym:          AxisAmenities,
		models.PriorityLaundry:      AxisAmenities,
		models.PriorityPetFriendly:  AxisAmenities,
	}
	for p, want := range cases {
		got, ok := AxisForPriority(p)
		assert.True(t, ok, string(p))
		assert.Equal(t, want, got, string(p))
	}

	_, ok := AxisForPriority("rooftop")
	assert.False(t, ok)
}
