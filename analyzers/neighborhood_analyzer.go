package analyzers

import (
	"go.uber.org/zap"

	"nestfinder/models"
	"nestfinder/scoring"
)

// NeighborhoodAnalyzer scores the static neighborhood profile, with the
// safety sub-score taken from incident data when available.
type NeighborhoodAnalyzer struct {
	table  *scoring.NeighborhoodTable
	safety *scoring.SafetyIndex
	logger *zap.Logger
}

// NewNeighborhoodAnalyzer builds an analyzer. safety may be nil.
func NewNeighborhoodAnalyzer(table *scoring.NeighborhoodTable, safety *scoring.SafetyIndex, logger *zap.Logger) *NeighborhoodAnalyzer {
	return &NeighborhoodAnalyzer{
		table:  table,
		safety: safety,
		logger: orNop(logger).Named("NeighborhoodAnalyzer"),
	}
}

func (a *NeighborhoodAnalyzer) Analyze(l *models.Listing, priorities []models.Priority) models.NeighborhoodAnalysis {
	name := l.Neighborhood
	if name == "" {
		name = "Unknown"
	}

	profile, found := a.table.Lookup(name)
	outcome := models.OK()
	if !found {
		outcome = models.Degraded("neighborhood not in reference table")
		recordDegraded(a.logger, axisNeighborhood, l.ID, outcome.DegradedReason)
	}

	fromIncidents := false
	if s, ok := a.safety.Score(name); ok {
		profile.Safety = s
		fromIncidents = true
	}

	return models.NeighborhoodAnalysis{
		Outcome:             outcome,
		ListingID:           l.ID,
		NeighborhoodName:    name,
		SafetyScore:         profile.Safety,
		SafetyRating:        scoring.SafetyRating(profile.Safety),
		SafetyFromIncidents: fromIncidents,
		WalkabilityScore:    profile.Walkability,
		NightlifeScore:      profile.Nightlife,
		QuietScore:          profile.Quiet,
		GroceryNearby:       append([]string(nil), profile.GroceryNearby...),
		RestaurantsNearby:   profile.RestaurantsNearby,
		ParksNearby:         profile.ParksNearby,
		Score:               scoring.NeighborhoodScore(profile, priorities),
		Summary:             scoring.NeighborhoodSummary(profile, priorities),
	}
}
