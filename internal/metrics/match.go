package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lostmatch"

// Match Prometheus metrics.
var (
	MatchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_requests_total",
			Help:      "Total number of scored match requests",
		},
		[]string{"confidence"}, // high / possible / low
	)

	MatchSimilarity = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_similarity",
			Help:      "Distribution of raw similarity scores",
			Buckets:   []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.65, 0.8, 0.9, 1},
		},
	)

	MatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_duration_seconds",
			Help:      "Scoring duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	MatchErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_errors_total",
			Help:      "Total match errors",
		},
		[]string{"error_type"},
	)

	QuotaRequestsRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "quota_requests_remaining",
			Help:      "Remaining match request quota",
		},
		[]string{"period"},
	)
)

var matchMetricsOnce sync.Once

// RegisterMatchMetrics registers Prometheus match metrics. Called from main; repeated calls are no-ops.
func RegisterMatchMetrics() {
	matchMetricsOnce.Do(func() {
		prometheus.MustRegister(
			MatchRequestsTotal,
			MatchSimilarity,
			MatchDuration,
			MatchErrorsTotal,
			QuotaRequestsRemaining,
		)
	})
}
