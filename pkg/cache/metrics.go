package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks lookups that found a stored entry
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_cache_hits_total",
			Help: "Total number of revalidation store hits",
		},
	)

	// CacheMisses tracks lookups without a stored entry
	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_cache_misses_total",
			Help: "Total number of revalidation store misses",
		},
	)

	// CacheEntries tracks the number of stored entries
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "directory_cache_entries",
			Help: "Current number of entries in the revalidation store",
		},
	)

	// ConditionalRequestsSent tracks requests sent with validators
	ConditionalRequestsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_conditional_requests_total",
			Help: "Total number of conditional requests sent",
		},
	)

	// NotModifiedResponses tracks 304 answers served from the store
	NotModifiedResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "directory_304_responses_total",
			Help: "Total number of 304 Not Modified responses replayed from the store",
		},
	)
)
