// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_http_requests_total",
			Help: "Total HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobtracker_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	AnalyticsComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_analytics_computations_total",
			Help: "Analytics results computed, by kind",
		},
		[]string{"kind"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_analytics_cache_lookups_total",
			Help: "Analytics cache lookups by kind and result (hit, miss, error)",
		},
		[]string{"kind", "result"},
	)

	HealthScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobtracker_application_health_score",
			Help:    "Distribution of computed application health scores",
			Buckets: []float64{0, 20, 40, 60, 80, 100},
		},
	)

	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobtracker_rate_limited_total",
			Help: "Requests rejected by the rate limiter, by endpoint",
		},
		[]string{"endpoint"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
