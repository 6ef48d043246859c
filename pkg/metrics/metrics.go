package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector provides Prometheus metrics collection for
// aggregation runs.
type MetricsCollector struct {
	runsTotal         *prometheus.CounterVec
	countriesTotal    *prometheus.CounterVec
	aggregatesWritten prometheus.Counter
	skippedTotal      *prometheus.CounterVec
	countryDuration   prometheus.Histogram
	tripleCount       prometheus.Gauge
	registry          *prometheus.Registry
}

// NewCollector creates a new Prometheus metrics collector.
func NewCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()

	runsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradegraph_runs_total",
			Help: "Total number of aggregation runs by status",
		},
		[]string{"status"},
	)

	countriesTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradegraph_countries_total",
			Help: "Total number of per-country work units by terminal status",
		},
		[]string{"status"},
	)

	aggregatesWritten := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tradegraph_aggregates_written_total",
			Help: "Total number of aggregate records written to the store",
		},
	)

	skippedTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradegraph_measurements_skipped_total",
			Help: "Total number of measurement records skipped by reason",
		},
		[]string{"reason"},
	)

	countryDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tradegraph_country_duration_seconds",
			Help:    "Duration of per-country aggregation work",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	tripleCount := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "tradegraph_store_triples",
			Help: "Current number of triples in the store",
		},
	)

	registry.MustRegister(runsTotal)
	registry.MustRegister(countriesTotal)
	registry.MustRegister(aggregatesWritten)
	registry.MustRegister(skippedTotal)
	registry.MustRegister(countryDuration)
	registry.MustRegister(tripleCount)

	return &MetricsCollector{
		runsTotal:         runsTotal,
		countriesTotal:    countriesTotal,
		aggregatesWritten: aggregatesWritten,
		skippedTotal:      skippedTotal,
		countryDuration:   countryDuration,
		tripleCount:       tripleCount,
		registry:          registry,
	}
}

// RecordRun records the completion of an aggregation run.
func (m *MetricsCollector) RecordRun(ctx context.Context, status string, durationMs int64) {
	m.runsTotal.WithLabelValues(status).Inc()
}

// RecordCountry records one per-country unit reaching a terminal state.
func (m *MetricsCollector) RecordCountry(ctx context.Context, status string, durationMs int64) {
	m.countriesTotal.WithLabelValues(status).Inc()
	m.countryDuration.Observe(float64(durationMs) / 1000.0)
}

// AddAggregatesWritten counts aggregate records written to the store.
func (m *MetricsCollector) AddAggregatesWritten(ctx context.Context, n int) {
	m.aggregatesWritten.Add(float64(n))
}

// AddSkippedMeasurements counts skipped measurement records by reason.
func (m *MetricsCollector) AddSkippedMeasurements(ctx context.Context, reason string, n int) {
	m.skippedTotal.WithLabelValues(reason).Add(float64(n))
}

// SetTripleCount sets the current store size.
func (m *MetricsCollector) SetTripleCount(ctx context.Context, count int64) {
	m.tripleCount.Set(float64(count))
}

// Registry returns the Prometheus registry for HTTP exposure.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}
