package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vxml/internal/errors"
	"github.com/vango-dev/vxml/pkg/vdom"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vxml").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
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

// MetricsOption configures the Prometheus metrics middleware.
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

// WithBuckets sets the duration histogram buckets.
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
		Namespace: "vxml",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the render collectors.
type Metrics struct {
	RendersTotal   *prometheus.CounterVec
	RenderDuration prometheus.Histogram
	OutputBytes    prometheus.Histogram
	Nodes          prometheus.Histogram
	RenderErrors   *prometheus.CounterVec
}

type metricsKey struct {
	reg       prometheus.Registerer
	namespace string
	subsystem string
}

// Collectors can be registered once per registry, so every Prometheus call
// with the same registry and names shares one Metrics. The first call's
// ConstLabels and Buckets win; registering the same names again with other
// values would be rejected by the registry.
var (
	metricsMu    sync.Mutex
	metricsCache = map[metricsKey]*Metrics{}
)

func metricsFor(config MetricsConfig) *Metrics {
	key := metricsKey{config.Registry, config.Namespace, config.Subsystem}

	metricsMu.Lock()
	defer metricsMu.Unlock()
	if m, ok := metricsCache[key]; ok {
		return m
	}
	m := newMetrics(config)
	metricsCache[key] = m
	return m
}

func newMetrics(config MetricsConfig) *Metrics {
	factory := promauto.With(config.Registry)

	return &Metrics{
		RendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of renders by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		RenderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		OutputBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_output_bytes",
			Help:        "Size of rendered output in bytes",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(64, 4, 8), // 64B to 1MB
		}),

		Nodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_nodes",
			Help:        "Number of nodes in rendered trees",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(1, 4, 10),
		}),

		RenderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_errors_total",
			Help:        "Total number of failed renders by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),
	}
}

// Prometheus creates middleware that records render metrics.
//
// Calls sharing a registry, namespace and subsystem share collectors, built
// from the first call's ConstLabels and Buckets. Use a distinct subsystem
// for a second set of labels or buckets.
//
// Node counts and output sizes are recorded for successful renders only;
// a failed render may have been stopped by a cycle.
func Prometheus(opts ...MetricsOption) Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	m := metricsFor(config)

	return func(next RenderFunc) RenderFunc {
		return func(ctx context.Context, node *vdom.Node) (string, error) {
			start := time.Now()
			out, err := next(ctx, node)
			m.RenderDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				m.RendersTotal.WithLabelValues("error").Inc()
				m.RenderErrors.WithLabelValues(errorCode(err)).Inc()
				return out, err
			}

			m.RendersTotal.WithLabelValues("ok").Inc()
			m.OutputBytes.Observe(float64(len(out)))
			m.Nodes.Observe(float64(vdom.Count(node)))
			return out, nil
		}
	}
}

// errorCode returns a low-cardinality label for err.
func errorCode(err error) string {
	if code := errors.CodeOf(err); code != "" {
		return code
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "unknown"
}
