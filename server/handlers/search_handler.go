package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"nestfinder/models"
)

const (
	VERBOSE_QUERY_ARG  = "verbose"
	maxSearchBodyBytes = 64 << 10
)

// Searcher runs one apartment search.
type Searcher interface {
	Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResponse, error)
}

// MinifiedRecommendation is the small form returned when verbose=false.
type MinifiedRecommendation struct {
	Rank         int      `json:"rank"`
	ListingID    string   `json:"listing_id"`
	Title        string   `json:"title"`
	Neighborhood string   `json:"neighborhood"`
	Price        int      `json:"price"`
	OverallScore int      `json:"overall_score"`
	Headline     string   `json:"headline"`
	MatchReasons []string `json:"match_reasons"`
	Concerns     []string `json:"concerns"`
}

type MinifiedSearchResponse struct {
	SearchID        string                   `json:"search_id"`
	TotalFound      int                      `json:"total_found"`
	Recommendations []MinifiedRecommendation `json:"recommendations"`
}

type SearchHandler struct {
	searcher Searcher
	logger   *zap.Logger
}

func NewSearchHandler(searcher Searcher, logger *zap.Logger) *SearchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchHandler{searcher: searcher, logger: logger.Named("SearchHandler")}
}

// Search handles POST /v1/search with a SearchCriteria JSON body.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var criteria models.SearchCriteria
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSearchBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&criteria); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	verbose := true
	if v := r.URL.Query().Get(VERBOSE_QUERY_ARG); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid argument "+VERBOSE_QUERY_ARG)
			return
		}
		verbose = parsed
	}

	resp, err := h.searcher.Search(r.Context(), criteria)
	switch {
	case err == nil:
	case errors.Is(err, models.ErrInvalidCriteria):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("search aborted", zap.Error(err))
		writeError(w, http.StatusServiceUnavailable, "search aborted")
		return
	default:
		h.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if verbose {
		writeJSON(w, http.StatusOK, resp)
		return
	}
	writeJSON(w, http.StatusOK, minify(resp))
}

func minify(resp *models.SearchResponse) MinifiedSearchResponse {
	out := MinifiedSearchResponse{
		SearchID:        resp.SearchID,
		TotalFound:      resp.TotalFound,
		Recommendations: make([]MinifiedRecommendation, 0, len(resp.Recommendations)),
	}
	for _, r := range resp.Recommendations {
		out.Recommendations = append(out.Recommendations, MinifiedRecommendation{
			Rank:         r.Rank,
			ListingID:    r.Listing.ID,
			Title:        r.Listing.Title,
			Neighborhood: r.Listing.Neighborhood,
			Price:        r.Listing.Price,
			OverallScore: r.OverallScore,
			Headline:     r.Headline,
			MatchReasons: r.MatchReasons,
			Concerns:     r.Concerns,
		})
	}
	return out
}
