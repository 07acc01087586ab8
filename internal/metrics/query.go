package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query and embedding Prometheus metrics.
var (
	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "biolit",
			Name:      "search_queries_total",
			Help:      "Total search queries by ranking mode and outcome",
		},
		[]string{"mode", "status"},
	)

	SearchDegradedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "biolit",
			Name:      "search_degraded_total",
			Help:      "Queries answered lexical-only because semantic ranking was unavailable",
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "biolit",
			Name:      "embedding_requests_total",
			Help:      "Total query-embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "biolit",
			Name:      "embedding_request_duration_seconds",
			Help:      "Query-embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "biolit",
			Name:      "embedding_cache_total",
			Help:      "Query-embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var queryMetricsRegistered bool

// RegisterQueryMetrics registers the query and embedding metrics.
// Must be called once from main.
func RegisterQueryMetrics() {
	if queryMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchQueriesTotal)
	prometheus.MustRegister(SearchDegradedTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingCacheTotal)
	queryMetricsRegistered = true
}
