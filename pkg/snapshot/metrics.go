package snapshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks successful snapshot reads.
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cms_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		},
	)

	// CacheMisses tracks reads with no usable snapshot (absent or invalid).
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cms_cache_misses_total",
			Help: "Total number of snapshot cache misses",
		},
	)

	// CacheSize tracks the size of the persisted snapshot in bytes.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cms_cache_size_bytes",
			Help: "Size of the persisted snapshot document in bytes",
		},
	)

	// CacheErrors tracks cache operation errors.
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cms_cache_errors_total",
			Help: "Total number of snapshot cache operation errors",
		},
		[]string{"operation"}, // "read", "write"
	)
)
