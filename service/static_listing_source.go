package services

import (
	"context"

	"nestfinder/models"
)

// StaticListingSource serves candidates from an in-memory list in the order
// the listings were loaded.
type StaticListingSource struct {
	listings []models.Listing
}

func NewStaticListingSource(listings []models.Listing) *StaticListingSource {
	return &StaticListingSource{listings: listings}
}

func (s *StaticListingSource) FetchCandidates(ctx context.Context, budgetMin, budgetMax int, bedrooms *int, limit int) ([]models.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := []models.Listing{}
	for _, l := range s.listings {
		if limit > 0 && len(out) >= limit {
			break
		}
		if l.Price < budgetMin || l.Price > budgetMax {
			continue
		}
		if bedrooms != nil && l.Bedrooms != *bedrooms {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}
