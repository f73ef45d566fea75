// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nestfinder"

var (
	// SearchRequests counts searches by outcome.
	// Labels: result (ok, invalid, error, cancelled)
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search requests by result",
		},
		[]string{"result"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	CandidatesAnalyzed = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_analyzed_total",
			Help:      "Total number of candidate listings fully analyzed",
		},
	)

	// DegradedAnalyses counts analyses that fell back to default values.
	// Labels: axis (commute, neighborhood, budget, walkability)
	DegradedAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_analyses_total",
			Help:      "Total number of axis analyses that degraded to a fallback",
		},
		[]string{"axis"},
	)

	// TravelTimeRequests counts outbound travel-time API calls.
	// Labels: result (success, error)
	TravelTimeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "traveltime_requests_total",
			Help:      "Total number of travel-time API requests by result",
		},
		[]string{"result"},
	)
)

func ResultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
