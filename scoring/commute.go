package scoring

import (
	"fmt"
	"math"

	"nestfinder/models"
)

// Average door-to-door speeds used when no travel-time service answers.
const (
	TransitSpeedKmh    = 15.0
	TransitWaitMinutes = 10.0
	DrivingSpeedKmh    = 30.0
	BikingSpeedKmh     = 15.0
	WalkingSpeedKmh    = 5.0
)

// CommuteScore maps one-way minutes onto a stepped, non-increasing curve.
func CommuteScore(minutes int) int {
	switch {
	case minutes <= 10:
		return 100
	case minutes <= 20:
		return 90
	case minutes <= 30:
		return 75
	case minutes <= 45:
		return 60
	case minutes <= 60:
		return 40
	default:
		return 20
	}
}

// EstimateMinutes derives per-mode minutes from a straight-line distance.
func EstimateMinutes(distanceMeters float64) map[models.TransportMode]int {
	km := distanceMeters / 1000
	minutesAt := func(kmh float64) int {
		return int(math.Round(km / kmh * 60))
	}
	return map[models.TransportMode]int{
		models.ModeTransit: minutesAt(TransitSpeedKmh) + int(TransitWaitMinutes),
		models.ModeDriving: minutesAt(DrivingSpeedKmh),
		models.ModeBiking:  minutesAt(BikingSpeedKmh),
		models.ModeWalking: minutesAt(WalkingSpeedKmh),
	}
}

// BestMode picks the fastest resolved mode. Ties go to the earlier mode in
// models.TransportModes. ok is false when nothing was resolved.
func BestMode(minutes map[models.TransportMode]int) (mode models.TransportMode, best int, ok bool) {
	for _, m := range models.TransportModes {
		v, found := minutes[m]
		if !found {
			continue
		}
		if !ok || v < best {
			mode, best, ok = m, v, true
		}
	}
	return mode, best, ok
}

func CommuteSummary(minutes int, mode models.TransportMode) string {
	switch {
	case minutes <= 20:
		return fmt.Sprintf("%d min by %s - excellent!", minutes, mode)
	case minutes <= 35:
		return fmt.Sprintf("%d min by %s - reasonable", minutes, mode)
	default:
		return fmt.Sprintf("%d min by %s - longer commute", minutes, mode)
	}
}
