// Package middleware provides interceptors that instrument navigation
// engine operations with Prometheus metrics and OpenTelemetry traces.
package middleware

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/navstack-dev/navstack/pkg/host"
)

// MetricsConfig configures the Prometheus metrics interceptor.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "navstack").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for operation duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics interceptor.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "navstack",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for navigation operations.
type metrics struct {
	opsTotal   *prometheus.CounterVec
	opDuration *prometheus.HistogramVec
	opErrors   *prometheus.CounterVec
	stackDepth prometheus.Gauge
}

// globalMetrics is the singleton metrics instance, created on the first
// call to Prometheus(). Later calls reuse it regardless of options, since
// collectors cannot be registered twice.
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// GetMetrics returns the initialized metrics instance, or nil if
// Prometheus() has not been called yet.
func GetMetrics() *metrics {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	return globalMetrics
}

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		opsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "ops_total",
			Help:        "Total number of navigation operations processed",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "status"}),

		opDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "op_duration_seconds",
			Help:        "Navigation operation duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		opErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "op_errors_total",
			Help:        "Total number of navigation operation errors",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		stackDepth: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "stack_depth",
			Help:        "Current navigation stack depth",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Prometheus creates an interceptor that collects Prometheus metrics for
// navigation operations.
//
// Metrics collected:
//   - navstack_ops_total: Counter of operations by op and status
//   - navstack_op_duration_seconds: Histogram of operation duration
//   - navstack_op_errors_total: Counter of operation errors by op
//   - navstack_stack_depth: Gauge of the stack depth after each operation
//
// Example:
//
//	h := host.New(delegate,
//	    host.WithInterceptors(middleware.Prometheus(
//	        middleware.WithNamespace("myapp"),
//	    )),
//	)
//
//	http.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) host.Interceptor {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return host.InterceptorFunc(func(op *host.OpInfo, next func() error) error {
		start := time.Now()
		err := next()
		m.opDuration.WithLabelValues(op.Name).Observe(time.Since(start).Seconds())

		status := "ok"
		if err != nil {
			status = "error"
			m.opErrors.WithLabelValues(op.Name).Inc()
		} else {
			m.stackDepth.Set(float64(op.Depth))
		}
		m.opsTotal.WithLabelValues(op.Name, status).Inc()
		return err
	})
}
