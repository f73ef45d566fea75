package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nestfinder/metrics"
	"nestfinder/models"
	"nestfinder/scoring"
)

// ErrListingSource wraps any failure of the listing source.
var ErrListingSource = errors.New("listing source failed")

// ListingSource returns candidate listings within a budget, in a stable order.
type ListingSource interface {
	FetchCandidates(ctx context.Context, budgetMin, budgetMax int, bedrooms *int, limit int) ([]models.Listing, error)
}

// CommuteScorer resolves travel for a whole search once in Plan, before the
// candidates fan out, and then scores each listing from that plan.
type CommuteScorer interface {
	Plan(ctx context.Context, candidates []models.Listing, criteria *models.SearchCriteria) *models.CommutePlan
	Analyze(l *models.Listing, criteria *models.SearchCriteria, plan *models.CommutePlan) models.CommuteAnalysis
}

type NeighborhoodScorer interface {
	Analyze(l *models.Listing, priorities []models.Priority) models.NeighborhoodAnalysis
}

type BudgetScorer interface {
	Analyze(l *models.Listing) models.BudgetAnalysis
}

type WalkabilityScorer interface {
	Analyze(ctx context.Context, l *models.Listing) models.WalkabilityAnalysis
}

type AmenityScorer interface {
	Analyze(l *models.Listing, priorities []models.Priority) models.AmenityAnalysis
}

// Analyzers bundles one scorer per axis. Walkability may be nil.
type Analyzers struct {
	Commute      CommuteScorer
	Neighborhood NeighborhoodScorer
	Budget       BudgetScorer
	Walkability  WalkabilityScorer
	Amenity      AmenityScorer
}

type CoordinatorConfig struct {
	CandidateLimit int
	TopK           int
	MaxConcurrency int
}

var DefaultCoordinatorConfig = CoordinatorConfig{
	CandidateLimit: 30,
	TopK:           10,
	MaxConcurrency: 8,
}

// CoordinatorService runs one search: it fetches candidates, analyzes each
// of them concurrently, ranks them and explains the ranking.
type CoordinatorService struct {
	source    ListingSource
	analyzers Analyzers
	cfg       CoordinatorConfig
	logger    *zap.Logger
	now       func() time.Time
	newID     func() string
}

func NewCoordinatorService(source ListingSource, analyzers Analyzers, cfg CoordinatorConfig, logger *zap.Logger) *CoordinatorService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = DefaultCoordinatorConfig.CandidateLimit
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultCoordinatorConfig.TopK
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultCoordinatorConfig.MaxConcurrency
	}
	return &CoordinatorService{
		source:    source,
		analyzers: analyzers,
		cfg:       cfg,
		logger:    logger.Named("CoordinatorService"),
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// scored is one fully analyzed candidate before ranking.
type scored struct {
	rec  models.Recommendation
	axes scoring.AxisScores
}

// Search validates criteria and returns the top recommendations. A
// cancelled context yields an error and never a partial response.
func (s *CoordinatorService) Search(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResponse, error) {
	start := s.now()
	defer func() {
		metrics.SearchDuration.Observe(time.Since(start).Seconds())
	}()

	criteria.ApplyDefaults()
	if err := criteria.Validate(); err != nil {
		metrics.SearchRequests.WithLabelValues("invalid").Inc()
		return nil, err
	}

	searchID := s.newID()
	logger := s.logger.With(zap.String("search_id", searchID))
	logger.Info("search started",
		zap.Int("budget_min", criteria.BudgetMin),
		zap.Int("budget_max", criteria.BudgetMax),
		zap.Bool("has_destination", !criteria.Destination.Empty()),
		zap.Int("priorities", len(criteria.Priorities)),
	)

	candidates, err := s.source.FetchCandidates(ctx, criteria.BudgetMin, criteria.BudgetMax, criteria.Bedrooms, s.cfg.CandidateLimit)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.SearchRequests.WithLabelValues("cancelled").Inc()
			return nil, ctxErr
		}
		metrics.SearchRequests.WithLabelValues("error").Inc()
		logger.Error("failed to fetch candidates", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrListingSource, err)
	}
	if len(candidates) > s.cfg.CandidateLimit {
		candidates = candidates[:s.cfg.CandidateLimit]
	}

	plan := s.planCommutes(ctx, candidates, &criteria, logger)
	if err := ctx.Err(); err != nil {
		metrics.SearchRequests.WithLabelValues("cancelled").Inc()
		logger.Warn("search cancelled", zap.Error(err))
		return nil, err
	}

	weights := scoring.WeightsFor(criteria.Priorities, !criteria.Destination.Empty())

	results := make([]*scored, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.MaxConcurrency)
	for i := range candidates {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			results[i] = s.analyzeCandidate(gctx, &candidates[i], &criteria, plan, weights)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		metrics.SearchRequests.WithLabelValues("cancelled").Inc()
		logger.Warn("search cancelled", zap.Error(err))
		return nil, err
	}

	ranked := make([]*scored, 0, len(results))
	for _, r := range results {
		if r != nil {
			ranked = append(ranked, r)
		}
	}
	metrics.CandidatesAnalyzed.Add(float64(len(ranked)))

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].rec.OverallScore > ranked[b].rec.OverallScore
	})
	if len(ranked) > s.cfg.TopK {
		ranked = ranked[:s.cfg.TopK]
	}

	recommendations := make([]models.Recommendation, 0, len(ranked))
	for i, r := range ranked {
		r.rec.Rank = i + 1
		r.rec.Headline = scoring.Headline(r.rec.Rank, r.axes)
		recommendations = append(recommendations, r.rec)
	}

	metrics.SearchRequests.WithLabelValues("ok").Inc()
	logger.Info("search finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("recommendations", len(recommendations)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &models.SearchResponse{
		SearchID:        searchID,
		TotalFound:      len(candidates),
		Recommendations: recommendations,
		SearchParams:    criteria,
		SearchedAt:      s.now().UTC(),
	}, nil
}

// planCommutes runs the commute lookup shared by every candidate. A panic
// leaves the plan nil and every commute estimated.
func (s *CoordinatorService) planCommutes(ctx context.Context, candidates []models.Listing, criteria *models.SearchCriteria, logger *zap.Logger) (plan *models.CommutePlan) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("commute planning panicked, estimating every commute", zap.Any("panic", r))
			plan = nil
		}
	}()
	return s.analyzers.Commute.Plan(ctx, candidates, criteria)
}

// analyzeCandidate fans the axis analyzers out for one listing. It returns
// nil when an analyzer panics or the search is cancelled midway.
func (s *CoordinatorService) analyzeCandidate(ctx context.Context, l *models.Listing, criteria *models.SearchCriteria, plan *models.CommutePlan, weights scoring.Weights) *scored {
	var (
		wg       sync.WaitGroup
		panicked atomic.Bool
		rec      = models.Recommendation{Listing: *l}
	)

	guard := func() {
		if r := recover(); r != nil {
			panicked.Store(true)
			s.logger.Error("analyzer panicked, dropping candidate",
				zap.String("listing_id", l.ID),
				zap.Any("panic", r),
			)
		}
	}
	run := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer guard()
			fn()
		}()
	}

	run(func() { rec.Commute = s.analyzers.Commute.Analyze(l, criteria, plan) })
	run(func() { rec.Neighborhood = s.analyzers.Neighborhood.Analyze(l, criteria.Priorities) })
	run(func() { rec.Budget = s.analyzers.Budget.Analyze(l) })
	if s.analyzers.Walkability != nil {
		run(func() { rec.Walkability = s.analyzers.Walkability.Analyze(ctx, l) })
	} else {
		rec.Walkability = models.WalkabilityAnalysis{
			Outcome:   models.Degraded("walkability data not configured"),
			ListingID: l.ID,
			Score:     50,
			Summary:   "Location unavailable",
		}
	}
	func() {
		defer guard()
		rec.Amenities = s.analyzers.Amenity.Analyze(l, criteria.Priorities)
	}()
	wg.Wait()

	if panicked.Load() || ctx.Err() != nil {
		return nil
	}

	axes := scoring.AxisScores{
		HasCommute:   rec.Commute.HasCommute,
		Commute:      rec.Commute.Score,
		Neighborhood: rec.Neighborhood.Score,
		Budget:       rec.Budget.Score,
		Amenities:    rec.Amenities.Score,
	}
	rec.OverallScore = scoring.OverallScore(axes, weights)
	rec.MatchReasons = scoring.MatchReasons(l, axes, criteria.Priorities)
	rec.Concerns = scoring.Concerns(l, axes, criteria.Priorities)
	return &scored{rec: rec, axes: axes}
}
