package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nestfinder/models"
)

func TestAmenityScore(t *testing.T) {
	tests := []struct {
		name       string
		listing    models.Listing
		priorities []models.Priority
		want       int
	}{
		{
			name:    "base score without priorities",
			listing: models.Listing{PetFriendly: true, ParkingIncluded: true},
			want:    50,
		},
		{
			name:       "pet friendly",
			listing:    models.Listing{PetFriendly: true},
			priorities: []models.Priority{models.PriorityPetFriendly},
			want:       70,
		},
		{
			name:       "three matches clamp to 100",
			listing:    models.Listing{PetFriendly: true, ParkingIncluded: true, LaundryType: models.LaundryInUnit},
			priorities: []models.Priority{models.PriorityPetFriendly, models.PriorityParking, models.PriorityLaundry},
			want:       100,
		},
		{
			name:       "in-building laundry",
			listing:    models.Listing{LaundryType: models.LaundryInBuilding},
			priorities: []models.Priority{models.PriorityLaundry},
			want:       60,
		},
		{
			name:       "gym tag",
			listing:    models.Listing{Amenities: []string{"gym", "balcony"}},
			priorities: []models.Priority{models.PriorityGym},
			want:       65,
		},
		{
			name:       "priority without feature",
			listing:    models.Listing{LaundryType: models.LaundryNone},
			priorities: []models.Priority{models.PriorityParking, models.PriorityLaundry},
			want:       50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := AmenityScore(&tt.listing, tt.priorities)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAmenityScore_ReportsMatches(t *testing.T) {
	l := models.Listing{PetFriendly: true, ParkingIncluded: false}
	_, matched := AmenityScore(&l, []models.Priority{models.PriorityParking, models.PriorityPetFriendly})
	assert.Equal(t, []models.Priority{models.PriorityPetFriendly}, matched)
}
