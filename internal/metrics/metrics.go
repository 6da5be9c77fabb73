// Package metrics defines Prometheus metrics for the atlas API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "oatlas_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oatlas_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "oatlas_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	SearchesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oatlas_searches_total",
			Help: "Total search queries executed",
		},
	)

	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oatlas_query_cache_hits_total",
			Help: "List query cache hits",
		},
	)

	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "oatlas_query_cache_misses_total",
			Help: "List query cache misses",
		},
	)

	SnapshotEntities = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "oatlas_snapshot_entities",
			Help: "Entities in the current snapshot by type",
		},
		[]string{"entity_type"},
	)
)

// Register registers all metrics with the default Prometheus registry.
// Call once at startup.
func Register() {
	prometheus.MustRegister(
		RequestDuration,
		RequestsTotal,
		ErrorsTotal,
		SearchesTotal,
		CacheHitsTotal,
		CacheMissesTotal,
		SnapshotEntities,
	)
}
