package analyzers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"nestfinder/models"
	"nestfinder/scoring"
)

// POIFinder finds points of interest of one category around a location,
// closest first.
type POIFinder interface {
	NearbyPlaces(ctx context.Context, category models.POICategory, at models.Coordinates, radiusMeters float64) ([]models.NearbyPlace, error)
}

type WalkabilityAnalyzer struct {
	finder       POIFinder
	radiusMeters float64
	logger       *zap.Logger
}

func NewWalkabilityAnalyzer(finder POIFinder, radiusMeters float64, logger *zap.Logger) *WalkabilityAnalyzer {
	if radiusMeters <= 0 {
		radiusMeters = scoring.WalkingRadiusMeters
	}
	return &WalkabilityAnalyzer{
		finder:       finder,
		radiusMeters: radiusMeters,
		logger:       orNop(logger).Named("WalkabilityAnalyzer"),
	}
}

func (a *WalkabilityAnalyzer) unavailable(listingID, reason string) models.WalkabilityAnalysis {
	recordDegraded(a.logger, axisWalkability, listingID, reason)
	return models.WalkabilityAnalysis{
		Outcome:   models.Degraded(reason),
		ListingID: listingID,
		Score:     NeutralScore,
		Summary:   "Location unavailable",
	}
}

func (a *WalkabilityAnalyzer) Analyze(ctx context.Context, l *models.Listing) models.WalkabilityAnalysis {
	if a.finder == nil {
		return a.unavailable(l.ID, "no point-of-interest data loaded")
	}
	at := l.Coordinates()
	if at == nil {
		return a.unavailable(l.ID, "listing has no coordinates")
	}

	found := make(map[models.POICategory][]models.NearbyPlace, len(models.POICategories))
	for _, category := range models.POICategories {
		places, err := a.finder.NearbyPlaces(ctx, category, *at, a.radiusMeters)
		if err != nil {
			return a.unavailable(l.ID, fmt.Sprintf("%s lookup failed: %v", category, err))
		}
		found[category] = places
	}

	parks := found[models.CategoryParks]
	schools := found[models.CategorySchools]
	groceries := found[models.CategoryGroceries]
	score := scoring.WalkabilityScore(parks, schools, groceries)

	out := models.WalkabilityAnalysis{
		Outcome:         models.OK(),
		ListingID:       l.ID,
		Score:           score,
		ParksNearby:     len(parks),
		SchoolsNearby:   len(schools),
		GroceriesNearby: len(groceries),
		Summary:         scoring.WalkabilitySummary(score, parks, groceries),
	}
	if len(parks) > 0 {
		out.ClosestParkName, out.ClosestParkDistance = parks[0].Name, intPtr(parks[0].DistanceM)
	}
	if len(schools) > 0 {
		out.ClosestSchoolName, out.ClosestSchoolDistance = schools[0].Name, intPtr(schools[0].DistanceM)
	}
	if len(groceries) > 0 {
		out.ClosestGroceryName, out.ClosestGroceryDistance = groceries[0].Name, intPtr(groceries[0].DistanceM)
	}
	return out
}

func intPtr(v int) *int { return &v }
