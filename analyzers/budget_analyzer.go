package analyzers

import (
	"math"

	"go.uber.org/zap"

	"nestfinder/models"
	"nestfinder/scoring"
)

type BudgetAnalyzer struct {
	market *scoring.MarketTable
	logger *zap.Logger
}

func NewBudgetAnalyzer(market *scoring.MarketTable, logger *zap.Logger) *BudgetAnalyzer {
	return &BudgetAnalyzer{market: market, logger: orNop(logger).Named("BudgetAnalyzer")}
}

// Analyze compares rent with the market average for the listing's
// neighborhood and bedroom count, falling back to per-bedroom defaults.
func (a *BudgetAnalyzer) Analyze(l *models.Listing) models.BudgetAnalysis {
	avg, found := a.market.Lookup(l.Neighborhood, l.Bedrooms)
	outcome := models.OK()
	if !found {
		outcome = models.Degraded("no market average for neighborhood and bedroom count")
		recordDegraded(a.logger, axisBudget, l.ID, outcome.DegradedReason)
	}

	pd := scoring.PercentDiff(l.Price, avg)
	utilities := scoring.EstimatedUtilities(l.Sqft)

	out := models.BudgetAnalysis{
		Outcome:                outcome,
		ListingID:              l.ID,
		MonthlyRent:            l.Price,
		EstimatedUtilities:     utilities,
		TotalMonthly:           l.Price + utilities,
		MarketAverage:          avg,
		PriceDifference:        l.Price - avg,
		PriceDifferencePercent: math.Round(pd*10) / 10,
		IsGoodDeal:             scoring.IsGoodDeal(pd),
		Score:                  scoring.BudgetScore(l.Price, avg),
		Summary:                scoring.BudgetSummary(pd),
	}

	if l.Sqft != nil && *l.Sqft > 0 {
		perSqft := math.Round(float64(l.Price)/float64(*l.Sqft)*100) / 100
		space := scoring.SpaceValueScore(perSqft)
		out.PricePerSqft = &perSqft
		out.SpaceValueScore = &space
	}
	return out
}
