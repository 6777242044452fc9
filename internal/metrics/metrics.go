// Package metrics holds the Prometheus collectors shared by the services and
// the HTTP layer. Collectors exist from package init so code paths that
// record metrics never need a nil check; Register exposes them.
package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kidstube_searches_total",
			Help: "Total catalog searches, by mode (search, latest).",
		},
		[]string{"mode"},
	)

	BlockedQueriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kidstube_blocked_queries_total",
			Help: "Searches rejected because the query contained a blocked keyword.",
		},
	)

	FilteredVideosTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kidstube_filtered_videos_total",
			Help: "Videos removed from results by the keyword deny-list.",
		},
	)

	UpstreamCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kidstube_upstream_calls_total",
			Help: "Calls to the upstream video directory, by operation and result.",
		},
		[]string{"op", "result"},
	)

	FanoutChannelFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kidstube_fanout_channel_failures_total",
			Help: "Per-channel sub-queries that failed and contributed no results.",
		},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kidstube_cache_hits_total",
			Help: "Result cache hits, by tier (memory, redis).",
		},
		[]string{"tier"},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "kidstube_cache_misses_total",
			Help: "Result cache misses across all tiers.",
		},
	)

	KeyPoolSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kidstube_api_key_pool_size",
			Help: "Number of API keys in the rotator pool after the last load.",
		},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "kidstube_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "kidstube_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)
)

// Register adds all collectors to the default registry. Call once at startup.
// When pool is non-nil, connection pool gauges are registered too.
func Register(pool *pgxpool.Pool) {
	prometheus.MustRegister(
		SearchesTotal,
		BlockedQueriesTotal,
		FilteredVideosTotal,
		UpstreamCallsTotal,
		FanoutChannelFailures,
		CacheHits,
		CacheMisses,
		KeyPoolSize,
		RequestDuration,
		RequestsInFlight,
	)

	if pool == nil {
		return
	}

	// DB pool gauges read live stats from pgxpool.
	prometheus.MustRegister(
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "kidstube_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		),
		prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "kidstube_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		),
	)
}
