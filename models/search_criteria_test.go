package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestSearchCriteria_ApplyDefaults(t *testing.T) {
	c := SearchCriteria{BudgetMax: 2000}
	c.ApplyDefaults()

	assert.Equal(t, ModeTransit, c.TransportMode)
	assert.Equal(t, 45, c.MaxCommuteMinutes)
	assert.NotNil(t, c.Priorities)

	c = SearchCriteria{TransportMode: ModeBiking, MaxCommuteMinutes: 20}
	c.ApplyDefaults()
	assert.Equal(t, ModeBiking, c.TransportMode)
	assert.Equal(t, 20, c.MaxCommuteMinutes)
}

func TestSearchCriteria_Validate(t *testing.T) {
	valid := func() SearchCriteria {
		c := SearchCriteria{BudgetMin: 1500, BudgetMax: 2000}
		c.ApplyDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(*SearchCriteria)
		field  string
	}{
		{"valid", func(*SearchCriteria) {}, ""},
		{"equal bounds", func(c *SearchCriteria) { c.BudgetMin = 2000 }, ""},
		{"studio", func(c *SearchCriteria) { c.Bedrooms = intPtr(0) }, ""},
		{"unknown priority is accepted", func(c *SearchCriteria) { c.Priorities = []Priority{"rooftop"} }, ""},
		{"negative min", func(c *SearchCriteria) { c.BudgetMin = -1 }, "budget_min"},
		{"negative max", func(c *SearchCriteria) { c.BudgetMin, c.BudgetMax = 0, -5 }, "budget_max"},
		{"min above max", func(c *SearchCriteria) { c.BudgetMin = 2500 }, "budget_min"},
		{"too many bedrooms", func(c *SearchCriteria) { c.Bedrooms = intPtr(MaxBedrooms + 1) }, "bedrooms"},
		{"negative bedrooms", func(c *SearchCriteria) { c.Bedrooms = intPtr(-1) }, "bedrooms"},
		{"unknown mode", func(c *SearchCriteria) { c.TransportMode = "teleport" }, "transport_mode"},
		{"non-positive max commute", func(c *SearchCriteria) { c.MaxCommuteMinutes = -10 }, "max_commute_minutes"},
		{"pin out of range", func(c *SearchCriteria) {
			c.Destination.Pinned = &Coordinates{Lat: 95, Lng: -75.7}
		}, "destination.pinned"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()

			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCriteria))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDestination_Empty(t *testing.T) {
	assert.True(t, Destination{}.Empty())
	assert.False(t, Destination{Address: "90 Wellington St"}.Empty())
	assert.False(t, Destination{Pinned: &Coordinates{Lat: 45.4236, Lng: -75.7009}}.Empty())
}

func TestPriorityAndModeLabels(t *testing.T) {
	assert.True(t, PriorityGym.Known())
	assert.Equal(t, "Gym Access", PriorityGym.Label())
	assert.False(t, Priority("rooftop").Known())
	assert.Equal(t, "", Priority("rooftop").Label())

	assert.True(t, ModeWalking.Valid())
	assert.Equal(t, "Public Transit", ModeTransit.Label())
	assert.False(t, TransportMode("").Valid())
}

func TestListing_Coordinates(t *testing.T) {
	lat, lng := 45.4, -75.7
	l := Listing{ID: "a", Lat: &lat}
	assert.Nil(t, l.Coordinates())

	l.Lng = &lng
	require.NotNil(t, l.Coordinates())
	assert.Equal(t, Coordinates{Lat: 45.4, Lng: -75.7}, *l.Coordinates())
}

func TestListing_Normalize(t *testing.T) {
	l := Listing{ID: "a", Price: 1500}
	require.NoError(t, l.Normalize())
	assert.Equal(t, LaundryNone, l.LaundryType)
	assert.Equal(t, []string{}, l.Amenities)

	l = Listing{ID: "b", Price: 1500, LaundryType: LaundryInUnit}
	require.NoError(t, l.Normalize())
	assert.Equal(t, LaundryInUnit, l.LaundryType)

	l = Listing{ID: "c", Price: -5}
	assert.ErrorIs(t, l.Normalize(), ErrInvalidListing)
	l = Listing{ID: "d", Bedrooms: -1}
	assert.ErrorIs(t, l.Normalize(), ErrInvalidListing)
}
