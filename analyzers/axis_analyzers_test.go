package analyzers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nestfinder/models"
	"nestfinder/scoring"
)

func TestNeighborhoodAnalyzer(t *testing.T) {
	safety := scoring.NewSafetyIndex(map[string]map[string]int{
		"The Glebe": {"theft": 2},
		"Vanier":    {"homicide": 1},
	}, scoring.DefaultIncidentSeverity)

	tests := []struct {
		name          string
		neighborhood  string
		safety        *scoring.SafetyIndex
		wantScore     int
		wantSafety    int
		wantDegraded  bool
		wantIncidents bool
		wantSummary   string
	}{
		{"table only", "The Glebe", nil, 87, 88, false, false, "Very safe area, highly walkable"},
		{"incident safety overrides table", "The Glebe", safety, 90, 95, false, true, "Very safe area, highly walkable"},
		{"unknown neighborhood", "Kanata", safety, 70, 70, true, false, "Generally safe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewNeighborhoodAnalyzer(scoring.OttawaNeighborhoodTable(), tt.safety, nil)
			got := a.Analyze(&models.Listing{ID: "x", Neighborhood: tt.neighborhood}, nil)

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantSafety, got.SafetyScore)
			assert.Equal(t, tt.wantDegraded, got.Degraded())
			assert.Equal(t, tt.wantIncidents, got.SafetyFromIncidents)
			assert.Equal(t, tt.wantSummary, got.Summary)
		})
	}
}

func TestBudgetAnalyzer_AtMarket(t *testing.T) {
	sqft := 620
	a := NewBudgetAnalyzer(scoring.OttawaMarketTable(), nil)

	got := a.Analyze(&models.Listing{ID: "x", Neighborhood: "The Glebe", Bedrooms: 1, Price: 1900, Sqft: &sqft})

	assert.False(t, got.Degraded())
	assert.Equal(t, 70, got.Score)
	assert.False(t, got.IsGoodDeal)
	assert.Equal(t, "At market rate", got.Summary)
	assert.Equal(t, 100, got.EstimatedUtilities)
	assert.Equal(t, 2000, got.TotalMonthly)
	require.NotNil(t, got.PricePerSqft)
	assert.InDelta(t, 3.06, *got.PricePerSqft, 1e-9)
	assert.Equal(t, 55, *got.SpaceValueScore)
}

func TestBudgetAnalyzer_DefaultMarketIsDegraded(t *testing.T) {
	a := NewBudgetAnalyzer(scoring.OttawaMarketTable(), nil)

	got := a.Analyze(&models.Listing{ID: "x", Neighborhood: "Kanata", Bedrooms: 2, Price: 1870})

	assert.True(t, got.Degraded())
	assert.Equal(t, 2200, got.MarketAverage)
	assert.Equal(t, -330, got.PriceDifference)
	assert.Equal(t, -15.0, got.PriceDifferencePercent)
	assert.Equal(t, 85, got.Score)
	assert.True(t, got.IsGoodDeal)
	assert.Equal(t, "Excellent deal! 15% below market", got.Summary)
	assert.Nil(t, got.PricePerSqft)
	assert.Equal(t, 150, got.EstimatedUtilities)
}

func TestAmenityAnalyzer(t *testing.T) {
	a := NewAmenityAnalyzer()
	l := &models.Listing{ID: "x", PetFriendly: true, LaundryType: models.LaundryInUnit}

	got := a.Analyze(l, []models.Priority{models.PriorityPetFriendly, models.PriorityLaundry, models.PriorityParking})
	assert.Equal(t, 90, got.Score)
	assert.Equal(t, "Matches Pet Friendly, In-Unit Laundry", got.Summary)

	none := a.Analyze(l, nil)
	assert.Equal(t, 50, none.Score)
	assert.Equal(t, "No prioritized amenities matched", none.Summary)
}

type fakeFinder struct {
	places map[models.POICategory][]models.NearbyPlace
	err    error
}

func (f *fakeFinder) NearbyPlaces(ctx context.Context, category models.POICategory, at models.Coordinates, radiusMeters float64) ([]models.NearbyPlace, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.places[category], nil
}

func TestWalkabilityAnalyzer(t *testing.T) {
	finder := &fakeFinder{places: map[models.POICategory][]models.NearbyPlace{
		models.CategoryParks:     {{Name: "Major's Hill Park", DistanceM: 389}},
		models.CategoryGroceries: {{Name: "Metro", DistanceM: 120}, {Name: "Loblaws", DistanceM: 600}},
	}}
	a := NewWalkabilityAnalyzer(finder, 0, nil)

	got := a.Analyze(context.Background(), listingAt("x", &parliament))

	assert.False(t, got.Degraded())
	assert.Equal(t, 74, got.Score)
	assert.Equal(t, 1, got.ParksNearby)
	assert.Equal(t, 0, got.SchoolsNearby)
	assert.Equal(t, 2, got.GroceriesNearby)
	assert.Equal(t, "Metro", got.ClosestGroceryName)
	assert.Equal(t, 120, *got.ClosestGroceryDistance)
	assert.Nil(t, got.ClosestSchoolDistance)
	assert.Equal(t, "Very walkable, grocery 120m away, 1 parks nearby", got.Summary)
}

func TestWalkabilityAnalyzer_Unavailable(t *testing.T) {
	tests := []struct {
		name    string
		finder  POIFinder
		listing *models.Listing
	}{
		{"no coordinates", &fakeFinder{}, listingAt("x", nil)},
		{"finder error", &fakeFinder{err: errors.New("redis down")}, listingAt("x", &parliament)},
		{"no finder", nil, listingAt("x", &parliament)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewWalkabilityAnalyzer(tt.finder, 800, nil).Analyze(context.Background(), tt.listing)
			assert.True(t, got.Degraded())
			assert.Equal(t, 50, got.Score)
			assert.Equal(t, "Location unavailable", got.Summary)
		})
	}
}
