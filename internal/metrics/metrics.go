// Package metrics 记录配置校验的 Prometheus 指标，并写出 node_exporter textfile。
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/creamcroissant/boxschema/internal/schema"
)

// Config holds configuration for the validation metrics.
type Config struct {
	// Namespace is the prefix for all metrics (default: "boxschema")
	Namespace string
	// Subsystem is an optional subsystem name (default: "validate")
	Subsystem string
	// Buckets defines the histogram buckets for validation duration
	Buckets []float64
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Namespace: "boxschema",
		Subsystem: "validate",
		Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
	}
}

// 文档结果标签取值。
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// Metrics holds the Prometheus collectors on a private registry.
type Metrics struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	errors    *prometheus.CounterVec
	warnings  prometheus.Counter
	duration  prometheus.Histogram
}

// New creates a new Metrics instance with the given configuration.
func New(cfg Config) *Metrics {
	def := DefaultConfig()
	if cfg.Namespace == "" {
		cfg.Namespace = def.Namespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = def.Subsystem
	}
	if len(cfg.Buckets) == 0 {
		cfg.Buckets = def.Buckets
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "documents_total",
				Help:      "Total number of configuration documents validated.",
			},
			[]string{"result"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of validation errors by type.",
			},
			[]string{"type"},
		),
		warnings: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "warnings_total",
				Help:      "Total number of deprecation warnings.",
			},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "duration_seconds",
				Help:      "Validation latency in seconds.",
				Buckets:   cfg.Buckets,
			},
		),
	}
	m.registry.MustRegister(m.documents, m.errors, m.warnings, m.duration)
	return m
}

// Registry 返回私有注册表。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe 记录一次校验。res 为 nil 表示文档无法读取或解析。
func (m *Metrics) Observe(res *schema.Result, elapsed time.Duration) {
	m.duration.Observe(elapsed.Seconds())
	switch {
	case res == nil:
		m.documents.WithLabelValues(ResultError).Inc()
		return
	case res.Valid():
		m.documents.WithLabelValues(ResultValid).Inc()
	default:
		m.documents.WithLabelValues(ResultInvalid).Inc()
	}
	for _, e := range res.Errors {
		m.errors.WithLabelValues(string(e.Type)).Inc()
	}
	m.warnings.Add(float64(len(res.Warnings)))
}

// WriteTextfile 以 textfile collector 格式原子写出全部指标。
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
