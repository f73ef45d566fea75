// Package analyzers scores one listing along one axis. Analyzers never
// return errors: when an input is missing they fall back to a documented
// default and mark the analysis as degraded.
package analyzers

import (
	"go.uber.org/zap"

	"nestfinder/metrics"
)

// NeutralScore is used whenever an axis cannot be computed.
const NeutralScore = 50

const (
	axisCommute      = "commute"
	axisNeighborhood = "neighborhood"
	axisBudget       = "budget"
	axisWalkability  = "walkability"
)

func recordDegraded(logger *zap.Logger, axis, listingID, reason string) {
	metrics.DegradedAnalyses.WithLabelValues(axis).Inc()
	logger.Debug("analysis degraded",
		zap.String("axis", axis),
		zap.String("listing_id", listingID),
		zap.String("reason", reason),
	)
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
