package analyzers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"nestfinder/api/traveltime"
	"nestfinder/models"
	"nestfinder/scoring"
)

// DefaultDestination is downtown Ottawa, used when the renter's destination
// cannot be located at all.
var DefaultDestination = models.Coordinates{Lat: 45.4215, Lng: -75.6972}

var errNoTravelTimeService = errors.New("no travel time service configured")

// CommuteAnalyzer resolves per-mode travel times through a TravelTimeAPI
// once per search and falls back to straight-line estimates when that fails
// or times out.
type CommuteAnalyzer struct {
	travelTime         traveltime.TravelTimeAPI
	defaultDestination models.Coordinates
	timeout            time.Duration
	logger             *zap.Logger
}

// NewCommuteAnalyzer builds an analyzer. travelTime may be nil, in which
// case every commute is estimated.
func NewCommuteAnalyzer(travelTime traveltime.TravelTimeAPI, defaultDestination models.Coordinates, timeout time.Duration, logger *zap.Logger) *CommuteAnalyzer {
	return &CommuteAnalyzer{
		travelTime:         travelTime,
		defaultDestination: defaultDestination,
		timeout:            timeout,
		logger:             orNop(logger).Named("CommuteAnalyzer"),
	}
}

// Plan locates the destination once and resolves the travel times of every
// candidate in a single batch, all within the analyzer timeout. It never
// fails: whatever could not be resolved is estimated by Analyze.
func (a *CommuteAnalyzer) Plan(ctx context.Context, candidates []models.Listing, criteria *models.SearchCriteria) *models.CommutePlan {
	dest := criteria.Destination
	plan := &models.CommutePlan{
		Target:  a.defaultDestination,
		Minutes: make(map[string]map[models.TransportMode]int, len(candidates)),
	}
	if dest.Empty() || len(candidates) == 0 {
		return plan
	}
	if dest.Pinned != nil {
		plan.Target = *dest.Pinned
	}
	if a.travelTime == nil {
		plan.Failure = errNoTravelTimeService.Error()
		return plan
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if dest.Pinned == nil {
		target, err := a.travelTime.Geocode(callCtx, dest.Address)
		if err != nil {
			plan.Failure = "destination not found: " + err.Error()
			a.logger.Warn("could not locate destination, estimating toward the default",
				zap.String("address", dest.Address),
				zap.Error(err),
			)
			return plan
		}
		plan.Target = *target
	}

	origins := make([]traveltime.Origin, 0, len(candidates))
	seen := make(map[string]bool, len(candidates))
	for i := range candidates {
		c := candidates[i].Coordinates()
		if c == nil || seen[candidates[i].ID] {
			continue
		}
		seen[candidates[i].ID] = true
		origins = append(origins, traveltime.Origin{ID: candidates[i].ID, Coordinates: *c})
	}
	if len(origins) == 0 {
		return plan
	}

	minutes, err := a.travelTime.TravelTimes(callCtx, origins, plan.Target)
	if err != nil {
		plan.Failure = "travel time unavailable: " + err.Error()
		a.logger.Warn("travel time lookup failed, estimating commutes", zap.Int("origins", len(origins)), zap.Error(err))
	}
	for id, m := range minutes {
		plan.Minutes[id] = m
	}
	return plan
}

// Analyze scores one listing from a plan built for its search. A nil plan
// estimates every mode.
func (a *CommuteAnalyzer) Analyze(l *models.Listing, criteria *models.SearchCriteria, plan *models.CommutePlan) models.CommuteAnalysis {
	out := models.CommuteAnalysis{
		Outcome:       models.OK(),
		ListingID:     l.ID,
		PreferredMode: criteria.TransportMode,
	}

	if criteria.Destination.Empty() {
		out.Score = NeutralScore
		out.Summary = "No destination provided"
		return out
	}
	out.HasCommute = true

	origin := l.Coordinates()
	if origin == nil {
		out.Outcome = models.Degraded("listing has no coordinates")
		out.Score = NeutralScore
		out.Summary = "Location unknown"
		recordDegraded(a.logger, axisCommute, l.ID, out.DegradedReason)
		return out
	}

	if plan == nil {
		plan = &models.CommutePlan{Target: a.defaultDestination, Failure: "commute plan unavailable"}
		if criteria.Destination.Pinned != nil {
			plan.Target = *criteria.Destination.Pinned
		}
	}
	resolved := plan.Minutes[l.ID]
	switch {
	case plan.Failure != "":
		out.Outcome = models.Degraded(plan.Failure)
	case len(resolved) == 0:
		out.Outcome = models.Degraded("travel time unavailable: " + traveltime.ErrNoRoutes.Error())
	}
	if out.Degraded() {
		recordDegraded(a.logger, axisCommute, l.ID, out.DegradedReason)
	}

	minutes, estimated := fillEstimates(resolved, *origin, plan.Target)
	out.Estimated = estimated
	for mode, m := range minutes {
		out.SetMinutes(mode, m)
	}
	out.BestMode, out.BestTime, _ = scoring.BestMode(minutes)

	preferred := minutes[criteria.TransportMode]
	out.Score = scoring.CommuteScore(preferred)
	out.Summary = scoring.CommuteSummary(preferred, criteria.TransportMode)
	out.WithinMaxCommute = preferred <= criteria.MaxCommuteMinutes
	return out
}

// fillEstimates returns minutes for every mode. Modes the service did not
// answer are estimated from the great-circle distance to target.
func fillEstimates(resolved map[models.TransportMode]int, origin, target models.Coordinates) (map[models.TransportMode]int, bool) {
	minutes := make(map[models.TransportMode]int, len(models.TransportModes))
	for mode, m := range resolved {
		minutes[mode] = m
	}

	estimated := false
	if len(minutes) < len(models.TransportModes) {
		guess := scoring.EstimateMinutes(scoring.HaversineMeters(origin, target))
		for _, mode := range models.TransportModes {
			if _, ok := minutes[mode]; !ok {
				minutes[mode] = guess[mode]
				estimated = true
			}
		}
	}
	return minutes, estimated
}
