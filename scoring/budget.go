package scoring

import (
	"fmt"
	"math"
)

const (
	budgetBaseScore       = 70
	goodDealPercent       = -5.0
	defaultMarketFallback = 1700
)

// MarketAverage is one row of the market-average table.
type MarketAverage struct {
	Neighborhood string `json:"neighborhood"`
	Bedrooms     int    `json:"bedrooms"`
	Average      int    `json:"average"`
}

type marketKey struct {
	neighborhood string
	bedrooms     int
}

// MarketTable holds average rents per (neighborhood, bedrooms). It is built
// once and only read afterwards.
type MarketTable struct {
	averages map[marketKey]int
	defaults map[int]int
	fallback int
}

// NewMarketTable builds a table. defaults is keyed by bedroom count and used
// when the exact pair is absent; fallback covers bedroom counts with no default.
func NewMarketTable(rows []MarketAverage, defaults map[int]int, fallback int) *MarketTable {
	t := &MarketTable{
		averages: make(map[marketKey]int, len(rows)),
		defaults: make(map[int]int, len(defaults)),
		fallback: fallback,
	}
	for _, r := range rows {
		t.averages[marketKey{r.Neighborhood, r.Bedrooms}] = r.Average
	}
	for k, v := range defaults {
		t.defaults[k] = v
	}
	if t.fallback <= 0 {
		t.fallback = defaultMarketFallback
	}
	return t
}

// Lookup returns the market average and whether the exact pair was known.
func (t *MarketTable) Lookup(neighborhood string, bedrooms int) (int, bool) {
	if avg, ok := t.averages[marketKey{neighborhood, bedrooms}]; ok {
		return avg, true
	}
	if avg, ok := t.defaults[bedrooms]; ok {
		return avg, false
	}
	return t.fallback, false
}

// PercentDiff is how far price sits from the market average, in percent.
func PercentDiff(price, marketAverage int) float64 {
	if marketAverage <= 0 {
		return 0
	}
	return float64(price-marketAverage) / float64(marketAverage) * 100
}

// BudgetScore is 70 at market, +1 per percent under and -1 per percent over,
// clamped to [0,100].
func BudgetScore(price, marketAverage int) int {
	if marketAverage <= 0 {
		return 50
	}
	return roundScore(budgetBaseScore - PercentDiff(price, marketAverage))
}

func IsGoodDeal(percentDiff float64) bool {
	return percentDiff < goodDealPercent
}

// SpaceValueScore bands rent per square foot. It is informational and never
// enters the overall score.
func SpaceValueScore(pricePerSqft float64) int {
	switch {
	case pricePerSqft <= 2.00:
		return 100
	case pricePerSqft <= 2.50:
		return 85
	case pricePerSqft <= 3.00:
		return 70
	case pricePerSqft <= 3.50:
		return 55
	default:
		return 40
	}
}

// EstimatedUtilities guesses monthly utilities from floor area.
func EstimatedUtilities(sqft *int) int {
	if sqft != nil && *sqft > 0 && *sqft < 700 {
		return 100
	}
	return 150
}

func BudgetSummary(percentDiff float64) string {
	switch {
	case percentDiff <= -15:
		return fmt.Sprintf("Excellent deal! %.0f%% below market", math.Abs(percentDiff))
	case percentDiff <= -5:
		return fmt.Sprintf("Good value - %.0f%% below market", math.Abs(percentDiff))
	case percentDiff <= 5:
		return "At market rate"
	case percentDiff <= 15:
		return fmt.Sprintf("Slightly above market (+%.0f%%)", percentDiff)
	default:
		return fmt.Sprintf("Premium pricing (+%.0f%% above market)", percentDiff)
	}
}
