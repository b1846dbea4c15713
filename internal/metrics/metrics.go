// Package metrics provides centralized Prometheus metrics registry for the jackpot builder.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jackpot_builder",
		Name:      "predictions_generated_total",
		Help:      "Total number of prediction records generated",
	}, []string{"strategy"})
	WildcardRerollsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jackpot_builder",
		Name:      "wildcard_rerolls_total",
		Help:      "Total number of wildcard re-rolls applied to slips",
	})
	SlipCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jackpot_builder",
		Name:      "slip_cache_hits_total",
		Help:      "Total number of slip cache hits",
	})
	SlipCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jackpot_builder",
		Name:      "slip_cache_misses_total",
		Help:      "Total number of slip cache misses",
	})
	FixtureFetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jackpot_builder",
		Name:      "fixture_fetches_total",
		Help:      "Total number of fixture fetches by source and result",
	}, []string{"source", "result"})
	CSVExportsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jackpot_builder",
		Name:      "csv_exports_total",
		Help:      "Total number of slip CSV exports",
	})
)

// Gauge metrics
var (
	ActiveJackpots = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jackpot_builder",
		Name:      "active_jackpots",
		Help:      "Number of jackpots currently open for predictions",
	})
	SlipCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jackpot_builder",
		Name:      "slip_cache_hit_ratio",
		Help:      "Ratio of slip cache hits to total lookups",
	})
)

// Histogram metrics
var (
	GenerationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jackpot_builder",
		Name:      "generation_duration_seconds",
		Help:      "Duration of slip generation in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	FixtureFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "jackpot_builder",
		Name:      "fixture_fetch_duration_seconds",
		Help:      "Duration of fixture fetches in seconds",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(PredictionsGeneratedTotal)
		registry.MustRegister(WildcardRerollsTotal)
		registry.MustRegister(SlipCacheHitsTotal)
		registry.MustRegister(SlipCacheMissesTotal)
		registry.MustRegister(FixtureFetchesTotal)
		registry.MustRegister(CSVExportsTotal)

		// Register gauge metrics
		registry.MustRegister(ActiveJackpots)
		registry.MustRegister(SlipCacheHitRatio)

		// Register histogram metrics
		registry.MustRegister(GenerationDuration)
		registry.MustRegister(FixtureFetchDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordSlipGenerated records a completed generation run.
func RecordSlipGenerated(strategy string, records int, wildcards int, durationSeconds float64) {
	PredictionsGeneratedTotal.WithLabelValues(strategy).Add(float64(records))
	WildcardRerollsTotal.Add(float64(wildcards))
	GenerationDuration.Observe(durationSeconds)
}

// RecordSlipCacheHit records a slip cache hit.
func RecordSlipCacheHit() {
	SlipCacheHitsTotal.Inc()
}

// RecordSlipCacheMiss records a slip cache miss.
func RecordSlipCacheMiss() {
	SlipCacheMissesTotal.Inc()
}

// RecordFixtureFetch records a fixture fetch attempt.
func RecordFixtureFetch(source, result string, durationSeconds float64) {
	FixtureFetchesTotal.WithLabelValues(source, result).Inc()
	FixtureFetchDuration.Observe(durationSeconds)
}

// RecordCSVExport records a slip export event.
func RecordCSVExport() {
	CSVExportsTotal.Inc()
}

// UpdateActiveJackpots updates the open jackpots gauge.
func UpdateActiveJackpots(count float64) {
	ActiveJackpots.Set(count)
}

// UpdateSlipCacheHitRatio updates the cache hit ratio gauge.
func UpdateSlipCacheHitRatio(ratio float64) {
	SlipCacheHitRatio.Set(ratio)
}
