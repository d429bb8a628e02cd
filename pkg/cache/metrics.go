package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportradar_cache_hits_total",
			Help: "Total number of aggregated payload cache hits",
		},
		[]string{"layer"}, // "redis"
	)

	// CacheMisses tracks cache misses
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sportradar_cache_misses_total",
			Help: "Total number of aggregated payload cache misses",
		},
	)

	// CacheBytes counts entry bytes read from and written to Redis
	CacheBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportradar_cache_bytes_total",
			Help: "Total bytes of cache entries served or stored",
		},
		[]string{"operation"}, // "get", "set"
	)

	// CacheErrors tracks cache operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sportradar_cache_errors_total",
			Help: "Total number of cache operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
