package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "txpage"

var (
	// UpstreamRequestDuration observes calls to the explorer API
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of explorer API requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resource", "status"},
	)

	// QueryFetches counts query executions by outcome: ok, error, disabled
	QueryFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "query_fetches_total",
			Help:      "Total query executions.",
		},
		[]string{"resource", "outcome"},
	)

	// CacheLookups counts cache lookups by result: hit, stale, miss, error
	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Total query cache lookups.",
		},
		[]string{"resource", "result"},
	)

	// PageRenders counts page renders by state: loading, loaded
	PageRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Total transaction page renders.",
		},
		[]string{"format", "state"},
	)

	// HTTPRequestDuration observes served requests
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of served HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "status"},
	)
)
