package scoring

import (
	"fmt"
	"strings"

	"nestfinder/models"
)

// WalkingRadiusMeters is roughly a ten minute walk.
const WalkingRadiusMeters = 800.0

func multipleOptionsBonus(places []models.NearbyPlace) int {
	extra := len(places) - 1
	if extra > 5 {
		extra = 5
	}
	if extra < 0 {
		extra = 0
	}
	return extra
}

// WalkabilityScore weighs groceries (40), parks (35) and schools (25). Each
// slice must be sorted by ascending distance.
func WalkabilityScore(parks, schools, groceries []models.NearbyPlace) int {
	grocery := 0
	if len(groceries) > 0 {
		d := groceries[0].DistanceM
		switch {
		case d <= 300:
			grocery = 40
		case d <= 500:
			grocery = 35
		case d <= 800:
			grocery = 25
		default:
			grocery = 15
		}
		grocery += multipleOptionsBonus(groceries)
	}

	park := 0
	if len(parks) > 0 {
		d := parks[0].DistanceM
		switch {
		case d <= 300:
			park = 35
		case d <= 500:
			park = 28
		case d <= 800:
			park = 20
		default:
			park = 10
		}
		park += multipleOptionsBonus(parks)
	}

	// no school nearby is a mild negative, not zero
	school := 5
	if len(schools) > 0 {
		d := schools[0].DistanceM
		switch {
		case d <= 500:
			school = 25
		case d <= 800:
			school = 18
		default:
			school = 10
		}
	}

	return clampScore(grocery + park + school)
}

func WalkabilitySummary(score int, parks, groceries []models.NearbyPlace) string {
	var parts []string
	switch {
	case score >= 85:
		parts = append(parts, "excellent walkability")
	case score >= 70:
		parts = append(parts, "very walkable")
	case score >= 55:
		parts = append(parts, "somewhat walkable")
	case score >= 40:
		parts = append(parts, "car-dependent")
	default:
		parts = append(parts, "very car-dependent")
	}

	if len(groceries) > 0 {
		closest := groceries[0]
		if closest.DistanceM <= 400 {
			parts = append(parts, fmt.Sprintf("grocery %dm away", closest.DistanceM))
		} else {
			parts = append(parts, fmt.Sprintf("nearest grocery %dm", closest.DistanceM))
		}
	} else {
		parts = append(parts, "no grocery within walking distance")
	}

	if len(parks) > 0 {
		parts = append(parts, fmt.Sprintf("%d parks nearby", len(parks)))
	}
	return capitalize(strings.Join(parts, ", "))
}
