// Package metrics defines the Prometheus collectors used across the engine
// and exposes the scrape handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ResolveTotal counts resolutions by language and outcome
	// (cache_hit, resolved, empty, error).
	ResolveTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shabda_resolve_total",
			Help: "Total word resolutions by language and outcome.",
		},
		[]string{"language", "outcome"},
	)

	// ResolveDuration observes end-to-end resolution latency.
	ResolveDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shabda_resolve_duration_seconds",
			Help:    "Word resolution latency in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"language"},
	)

	// SegmentStrategyTotal counts compound segmentations by the strategy
	// that produced the parts (service, table, heuristic, none).
	SegmentStrategyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shabda_segment_strategy_total",
			Help: "Compound segmentations by winning strategy.",
		},
		[]string{"strategy"},
	)

	// HTTPRequestsTotal counts API requests by method, path and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shabda_http_requests_total",
			Help: "Total HTTP requests by method, path, and status.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes API request latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shabda_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path"},
	)
)

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
