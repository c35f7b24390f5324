// Package metrics provides Prometheus metrics for the debatematcher engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Run-level metrics
	runsTotal   *prometheus.CounterVec
	runFailures *prometheus.CounterVec
	runDuration prometheus.Histogram

	// Assignment quality metrics
	pairingsGenerated  prometheus.Counter
	byesAssigned       prometheus.Counter
	panelAdditions     prometheus.Counter
	unusedAdjudicators prometheus.Gauge
	roundPenalty       prometheus.Gauge
	searchIterations   prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "debatematcher",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.runsTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "runs_total",
			Help:      "Total number of completed assignment runs by format",
		},
		[]string{"format"},
	)

	m.runFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "run_failures_total",
			Help:      "Total number of failed runs by error kind",
		},
		[]string{"kind"},
	)

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_milliseconds",
		Help:      "End-to-end assignment run duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.pairingsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairings_generated_total",
		Help:      "Total number of pairings produced across all runs",
	})

	m.byesAssigned = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "byes_assigned_total",
		Help:      "Total number of BYE sit-outs assigned",
	})

	m.panelAdditions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "panel_additions_total",
		Help:      "Total number of surplus adjudicators folded into panels",
	})

	m.unusedAdjudicators = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "unused_adjudicators",
		Help:      "Adjudicators left without an assignment in the last round",
	})

	m.roundPenalty = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "round_penalty",
		Help:      "Total penalty of the best pairing set found in the last round",
	})

	m.searchIterations = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "search_iterations",
		Help:      "Randomized search iterations spent before settling on a pairing set",
		Buckets:   []float64{1, 10, 50, 100, 250, 500, 1000},
	})
}

// Package-level helpers acting on the global manager.

// RecordRun increments the completed-run counter for a format.
func RecordRun(format string) {
	globalManager.runsTotal.WithLabelValues(format).Inc()
}

// RecordRunFailure increments the failed-run counter for an error kind.
func RecordRunFailure(kind string) {
	globalManager.runFailures.WithLabelValues(kind).Inc()
}

// RecordRunDuration observes an end-to-end run duration in milliseconds.
func RecordRunDuration(ms float64) {
	globalManager.runDuration.Observe(ms)
}

// RecordPairings adds to the generated-pairings counter.
func RecordPairings(n int) {
	globalManager.pairingsGenerated.Add(float64(n))
}

// RecordBye increments the BYE counter.
func RecordBye() {
	globalManager.byesAssigned.Inc()
}

// RecordPanelAddition increments the panel-additions counter.
func RecordPanelAddition() {
	globalManager.panelAdditions.Inc()
}

// UpdateUnusedAdjudicators sets the unused-adjudicator gauge.
func UpdateUnusedAdjudicators(n int) {
	globalManager.unusedAdjudicators.Set(float64(n))
}

// UpdateRoundPenalty sets the best-penalty gauge for the last round.
func UpdateRoundPenalty(penalty int) {
	globalManager.roundPenalty.Set(float64(penalty))
}

// RecordSearchIterations observes the iterations spent by the optimizer.
func RecordSearchIterations(n int) {
	globalManager.searchIterations.Observe(float64(n))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
