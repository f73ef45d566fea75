package scoring

import (
	"math"

	"nestfinder/models"
)

// Axis identifies one weighted scoring dimension.
type Axis int

const (
	AxisCommute Axis = iota
	AxisNeighborhood
	AxisBudget
	AxisAmenities
)

var axisNames = [...]string{"commute", "neighborhood", "budget", "amenities"}

func (a Axis) String() string {
	if a < 0 || int(a) >= len(axisNames) {
		return "unknown"
	}
	return axisNames[a]
}

const (
	priorityBoost     = 0.15
	boostedPriorities = 3
)

// AxisForPriority maps a priority tag to the axis it boosts. Unrecognized
// tags return ok=false and boost nothing.
func AxisForPriority(p models.Priority) (Axis, bool) {
	switch p {
	case models.PriorityShortCommute:
		return AxisCommute, true
	case models.PrioritySafeArea, models.PriorityWalkable, models.PriorityNightlife, models.PriorityQuietArea:
		return AxisNeighborhood, true
	case models.PriorityLowPrice:
		return AxisBudget, true
	case models.PriorityParking, models.PriorityGym, models.PriorityLaundry, models.PriorityPetFriendly:
		return AxisAmenities, true
	default:
		return 0, false
	}
}

// Weights holds one coefficient per axis.
type Weights struct {
	Commute      float64 `json:"commute"`
	Neighborhood float64 `json:"neighborhood"`
	Budget       float64 `json:"budget"`
	Amenities    float64 `json:"amenities"`
}

func (w Weights) Sum() float64 {
	return w.Commute + w.Neighborhood + w.Budget + w.Amenities
}

func (w *Weights) add(a Axis, v float64) {
	switch a {
	case AxisCommute:
		w.Commute += v
	case AxisNeighborhood:
		w.Neighborhood += v
	case AxisBudget:
		w.Budget += v
	case AxisAmenities:
		w.Amenities += v
	}
}

func (w Weights) normalized() Weights {
	total := w.Sum()
	if total <= 0 {
		return w
	}
	return Weights{
		Commute:      w.Commute / total,
		Neighborhood: w.Neighborhood / total,
		Budget:       w.Budget / total,
		Amenities:    w.Amenities / total,
	}
}

// BaseWeights are the starting weights before priority boosts.
func BaseWeights(hasCommute bool) Weights {
	if hasCommute {
		return Weights{Commute: 0.25, Neighborhood: 0.25, Budget: 0.25, Amenities: 0.25}
	}
	return Weights{Commute: 0, Neighborhood: 0.35, Budget: 0.35, Amenities: 0.30}
}

// WeightsFor boosts the axes named by the first three priorities (0.15,
// 0.10, 0.05) and renormalizes to sum to 1. Without a commute the commute
// weight stays exactly zero.
func WeightsFor(priorities []models.Priority, hasCommute bool) Weights {
	w := BaseWeights(hasCommute)
	for i, p := range priorities {
		if i >= boostedPriorities {
			break
		}
		axis, ok := AxisForPriority(p)
		if !ok {
			continue
		}
		if axis == AxisCommute && !hasCommute {
			continue
		}
		w.add(axis, priorityBoost*float64(boostedPriorities-i)/boostedPriorities)
	}
	return w.normalized()
}

// AxisScores are the per-axis inputs to the overall score.
type AxisScores struct {
	HasCommute   bool
	Commute      int
	Neighborhood int
	Budget       int
	Amenities    int
}

// OverallScore is the rounded weighted sum. The commute term counts as zero
// when no commute was computed.
func OverallScore(s AxisScores, w Weights) int {
	commute := 0.0
	if s.HasCommute {
		commute = float64(s.Commute) * w.Commute
	}
	total := commute +
		float64(s.Neighborhood)*w.Neighborhood +
		float64(s.Budget)*w.Budget +
		float64(s.Amenities)*w.Amenities
	return clampScore(int(math.Round(total)))
}
