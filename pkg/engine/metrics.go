package engine

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures engine metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vhook").
	Namespace string

	// Subsystem is the metrics subsystem (default: "engine").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vhook",
		Subsystem: "engine",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for one or more engines.
// A nil *Metrics records nothing.
type Metrics struct {
	renders        *prometheus.CounterVec
	renderDuration prometheus.Histogram
	renderFailures prometheus.Counter
	stateUpdates   *prometheus.CounterVec
	effectsRun     prometheus.Counter
	hookSlots      prometheus.Gauge
}

// NewMetrics creates and registers engine metrics.
//
// Metrics collected:
//   - vhook_engine_renders_total: projections by trigger (explicit, setter)
//   - vhook_engine_render_duration_seconds: duration of projected passes
//   - vhook_engine_render_failures_total: passes aborted by a panic
//   - vhook_engine_state_updates_total: setter calls by result (applied, skipped)
//   - vhook_engine_effects_run_total: effect callback runs
//   - vhook_engine_hook_slots: slot count after the latest pass
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of projected render passes",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		renderFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_failures_total",
			Help:        "Total number of render passes aborted by a panic",
			ConstLabels: config.ConstLabels,
		}),

		stateUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "state_updates_total",
			Help:        "Total number of state setter calls",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		effectsRun: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_run_total",
			Help:        "Total number of effect callback runs",
			ConstLabels: config.ConstLabels,
		}),

		hookSlots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hook_slots",
			Help:        "Number of hook slots after the latest render pass",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) renderDone(trigger string, d time.Duration) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(trigger).Inc()
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) renderFailed() {
	if m == nil {
		return
	}
	m.renderFailures.Inc()
}

func (m *Metrics) stateSet(applied bool) {
	if m == nil {
		return
	}
	result := "skipped"
	if applied {
		result = "applied"
	}
	m.stateUpdates.WithLabelValues(result).Inc()
}

func (m *Metrics) effectRan() {
	if m == nil {
		return
	}
	m.effectsRun.Inc()
}

func (m *Metrics) setHookSlots(n int) {
	if m == nil {
		return
	}
	m.hookSlots.Set(float64(n))
}
