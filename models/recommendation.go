package models

import "time"

// Recommendation is one ranked listing with every axis analysis attached.
type Recommendation struct {
	Rank         int                  `json:"rank"`
	Listing      Listing              `json:"apartment"`
	Commute      CommuteAnalysis      `json:"commute"`
	Neighborhood NeighborhoodAnalysis `json:"neighborhood"`
	Budget       BudgetAnalysis       `json:"budget"`
	Walkability  WalkabilityAnalysis  `json:"walkability"`
	Amenities    AmenityAnalysis      `json:"amenities"`
	OverallScore int                  `json:"overall_score"`
	Headline     string               `json:"headline"`
	MatchReasons []string             `json:"match_reasons"`
	Concerns     []string             `json:"concerns"`
}

// SearchResponse is the immutable result of one search.
type SearchResponse struct {
	SearchID        string           `json:"search_id"`
	TotalFound      int              `json:"total_found"`
	Recommendations []Recommendation `json:"recommendations"`
	SearchParams    SearchCriteria   `json:"search_params"`
	SearchedAt      time.Time        `json:"searched_at"`
}
