// Package metrics provides Prometheus metrics for the MyStockTax backend.
// Scrape these at /metrics for Grafana dashboards and alerting.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktax_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stocktax_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Provider Metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktax_provider_requests_total",
			Help: "Upstream provider requests by provider and status",
		},
		[]string{"provider", "status"},
	)

	ProviderFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktax_provider_fallbacks_total",
			Help: "Times a failed macro call was served from the hardcoded fallback table",
		},
		[]string{"metric"},
	)

	// Cache Metrics
	CacheHitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktax_cache_hits_total",
			Help: "Check requests answered from the monthly cache",
		},
		[]string{"metric"},
	)

	CacheMissesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stocktax_cache_misses_total",
			Help: "Check requests that required a provider fetch",
		},
		[]string{"metric"},
	)

	// Store Metrics
	RowsInsertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocktax_rows_inserted_total",
			Help: "Quarter-point rows inserted",
		},
	)

	RowsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocktax_rows_skipped_total",
			Help: "Quarter-point inserts skipped because the unique key already existed",
		},
	)

	RowsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stocktax_rows_deleted_total",
			Help: "Quarter-point rows deleted by cache-tag clears",
		},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stocktax_refresh_duration_seconds",
			Help:    "Time taken for a full clear-fetch-store refresh",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)
)
