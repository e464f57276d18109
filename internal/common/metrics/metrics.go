// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConsultQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consult_queries_total",
			Help: "Total number of consultation queries by outcome",
		},
		[]string{"outcome"},
	)

	ConsultQueriesFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consult_queries_failed_total",
			Help: "Total number of failed consultation queries by error code",
		},
		[]string{"error_code"},
	)

	ConsultQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "consult_query_duration_seconds",
			Help: "End-to-end duration of consultation queries",
		},
		[]string{"mode"},
	)

	SourceDegradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consult_source_degraded_total",
			Help: "Relevance source failures absorbed as zero contribution",
		},
		[]string{"source"},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "consult_cache_requests_total",
			Help: "Result cache lookups by status (hit, miss, error)",
		},
		[]string{"status"},
	)
)
