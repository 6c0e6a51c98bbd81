// Package observability provides Prometheus metrics for the NFS source service.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// namespace is the Prometheus metric namespace prefix for all source metrics.
	namespace = "nfs_source"
)

// Metrics holds all Prometheus metrics for the source lifecycle.
type Metrics struct {
	registry *prometheus.Registry

	// Task execution metrics
	tasksTotal   *prometheus.CounterVec
	taskDuration *prometheus.HistogramVec

	// Source readiness
	sourceReady prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all metrics registered.
// Uses a custom registry to avoid panics on service restart (not DefaultRegistry).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,

		tasksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tasks_total",
				Help:      "Total number of source tasks run by name and status",
			},
			[]string{"task", "status"},
		),

		taskDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "task_duration_seconds",
				Help:      "Duration of source tasks in seconds",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"task"},
		),

		sourceReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ready",
			Help:      "Whether the installation source is currently mounted (1) or not (0)",
		}),
	}

	reg.MustRegister(m.tasksTotal, m.taskDuration, m.sourceReady)
	return m
}

// RecordTask records a completed task run with its outcome and duration.
func (m *Metrics) RecordTask(task string, err error, duration time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.tasksTotal.WithLabelValues(task, status).Inc()
	m.taskDuration.WithLabelValues(task).Observe(duration.Seconds())
}

// SetReady updates the readiness gauge.
func (m *Metrics) SetReady(ready bool) {
	if ready {
		m.sourceReady.Set(1)
	} else {
		m.sourceReady.Set(0)
	}
}

// Handler returns an HTTP handler serving the metrics registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
