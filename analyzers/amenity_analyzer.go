package analyzers

import (
	"fmt"
	"strings"

	"nestfinder/models"
	"nestfinder/scoring"
)

type AmenityAnalyzer struct{}

func NewAmenityAnalyzer() *AmenityAnalyzer {
	return &AmenityAnalyzer{}
}

func (a *AmenityAnalyzer) Analyze(l *models.Listing, priorities []models.Priority) models.AmenityAnalysis {
	score, matched := scoring.AmenityScore(l, priorities)

	summary := "No prioritized amenities matched"
	if len(matched) > 0 {
		labels := make([]string, len(matched))
		for i, p := range matched {
			labels[i] = p.Label()
		}
		summary = fmt.Sprintf("Matches %s", strings.Join(labels, ", "))
	}

	return models.AmenityAnalysis{
		Outcome:   models.OK(),
		ListingID: l.ID,
		Matched:   matched,
		Score:     score,
		Summary:   summary,
	}
}
