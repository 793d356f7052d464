package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTotal counts snapshot refresh attempts by outcome.
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_refresh_total",
		Help: "Total number of snapshot refresh attempts",
	}, []string{"outcome"})

	// RefreshDuration tracks end-to-end refresh latency, fetch through
	// persisted write.
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cms_refresh_duration_seconds",
		Help:    "Snapshot refresh duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})

	// SearchTotal counts searches by source (live or cache).
	SearchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_search_total",
		Help: "Total number of coverage searches",
	}, []string{"source"})
)
