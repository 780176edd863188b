package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Codec metrics
	CodecOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "base62_codec_operations_total",
			Help: "Total number of codec operations by outcome",
		},
		[]string{"op", "result"}, // op: encode|decode|clean|digest, result: ok|error
	)

	IssuedIDs = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "base62_issued_ids_total",
			Help: "Total number of identifiers issued",
		},
		[]string{"generator"},
	)

	GeneratorCollisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "base62_generator_collisions_total",
			Help: "Generated codes rejected because they were already issued",
		},
	)

	// Cache metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "base62_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"layer"}, // "l1" or "l2"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "base62_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"layer"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "base62_cache_size",
			Help: "Current number of items in cache",
		},
		[]string{"layer"},
	)

	// Request metrics
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "base62_request_duration_seconds",
			Help:    "Request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "base62_requests_total",
			Help: "Total number of requests",
		},
		[]string{"method", "status"},
	)

	// Database metrics
	DatabaseQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "base62_database_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)
)

// Result maps an error to the "result" label value.
func Result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
