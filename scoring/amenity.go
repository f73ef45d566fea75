package scoring

import (
	"slices"

	"nestfinder/models"
)

const amenityBaseScore = 50

// AmenityScore adds bonuses for prioritized features the listing actually
// has. It returns the clamped score and the priorities that matched.
func AmenityScore(l *models.Listing, priorities []models.Priority) (int, []models.Priority) {
	score := amenityBaseScore
	matched := []models.Priority{}
	if slices.Contains(priorities, models.PriorityPetFriendly) && l.PetFriendly {
		score += 20
		matched = append(matched, models.PriorityPetFriendly)
	}
	if slices.Contains(priorities, models.PriorityParking) && l.ParkingIncluded {
		score += 20
		matched = append(matched, models.PriorityParking)
	}
	if slices.Contains(priorities, models.PriorityLaundry) {
		switch l.LaundryType {
		case models.LaundryInUnit:
			score += 20
			matched = append(matched, models.PriorityLaundry)
		case models.LaundryInBuilding:
			score += 10
			matched = append(matched, models.PriorityLaundry)
		}
	}
	if slices.Contains(priorities, models.PriorityGym) && l.HasAmenity("gym") {
		score += 15
		matched = append(matched, models.PriorityGym)
	}
	return clampScore(score), matched
}
