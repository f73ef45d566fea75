package scoring

import (
	"fmt"
	"slices"

	"nestfinder/models"
)

const (
	maxMatchReasons = 4
	maxConcerns     = 3
)

var headlines = map[Axis]string{
	AxisCommute:      "Best for Commuters",
	AxisNeighborhood: "Best Neighborhood",
	AxisBudget:       "Best Value",
	AxisAmenities:    "Best Amenities",
}

const BestOverallHeadline = "Best Overall Match"

// StrongestAxis is the argmax over the available axes; ties keep the
// earlier axis in commute, neighborhood, budget, amenities order.
func StrongestAxis(s AxisScores) Axis {
	best := AxisNeighborhood
	bestScore := s.Neighborhood
	if s.HasCommute {
		best, bestScore = AxisCommute, s.Commute
		if s.Neighborhood > bestScore {
			best, bestScore = AxisNeighborhood, s.Neighborhood
		}
	}
	if s.Budget > bestScore {
		best, bestScore = AxisBudget, s.Budget
	}
	if s.Amenities > bestScore {
		best = AxisAmenities
	}
	return best
}

func Headline(rank int, s AxisScores) string {
	if rank == 1 {
		return BestOverallHeadline
	}
	return headlines[StrongestAxis(s)]
}

func MatchReasons(l *models.Listing, s AxisScores, priorities []models.Priority) []string {
	reasons := []string{}

	if s.HasCommute {
		if s.Commute >= 80 {
			reasons = append(reasons, "Excellent commute time")
		} else if s.Commute >= 60 {
			reasons = append(reasons, "Good commute time")
		}
	}

	if s.Budget >= 80 {
		reasons = append(reasons, "Great value for money")
	} else if s.Budget >= 60 {
		reasons = append(reasons, "Reasonably priced")
	}

	if s.Neighborhood >= 80 {
		reasons = append(reasons, fmt.Sprintf("Great location in %s", l.Neighborhood))
	}
	if slices.Contains(priorities, models.PriorityPetFriendly) && l.PetFriendly {
		reasons = append(reasons, "Pet-friendly")
	}
	if slices.Contains(priorities, models.PriorityParking) && l.ParkingIncluded {
		reasons = append(reasons, "Parking included")
	}
	if l.LaundryType == models.LaundryInUnit {
		reasons = append(reasons, "In-unit laundry")
	}

	if len(reasons) > maxMatchReasons {
		reasons = reasons[:maxMatchReasons]
	}
	return reasons
}

func Concerns(l *models.Listing, s AxisScores, priorities []models.Priority) []string {
	concerns := []string{}

	if s.HasCommute && s.Commute < 50 {
		concerns = append(concerns, "Longer commute")
	}
	if s.Budget < 50 {
		concerns = append(concerns, "Above market price")
	}
	if s.Neighborhood < 50 {
		concerns = append(concerns, "Neighborhood may not match preferences")
	}
	if slices.Contains(priorities, models.PriorityPetFriendly) && !l.PetFriendly {
		concerns = append(concerns, "No pets allowed")
	}
	if slices.Contains(priorities, models.PriorityParking) && !l.ParkingIncluded {
		concerns = append(concerns, "No parking included")
	}
	if slices.Contains(priorities, models.PriorityLaundry) && l.LaundryType == models.LaundryNone {
		concerns = append(concerns, "No laundry facilities")
	}

	if len(concerns) > maxConcerns {
		concerns = concerns[:maxConcerns]
	}
	return concerns
}
