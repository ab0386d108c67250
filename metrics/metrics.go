// Package metrics exposes pipeline and delivery counters to Prometheus.
// A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Delivery outcomes
const (
	Delivered = "delivered"
	Failed    = "failed"
	Poisoned  = "poisoned"
)

// Collector owns a private registry so several can coexist in tests.
type Collector struct {
	registry *prometheus.Registry

	stepsTotal   *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
	deliveries   *prometheus.CounterVec
	queuePending *prometheus.GaugeVec
	lastRun      prometheus.Gauge
}

// New creates and registers the autoblog metrics.
func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoblog_pipeline_steps_total",
			Help: "Pipeline steps run, by outcome",
		},
		[]string{"step", "outcome"},
	)
	c.stepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autoblog_pipeline_step_duration_seconds",
			Help:    "Pipeline step duration in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300},
		},
		[]string{"step"},
	)
	c.deliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoblog_queue_deliveries_total",
			Help: "Queue units handled by dispatchers, by outcome",
		},
		[]string{"platform", "outcome"},
	)
	c.queuePending = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "autoblog_queue_pending_items",
			Help: "Queue items not yet fully delivered after the last scan",
		},
		[]string{"platform"},
	)
	c.lastRun = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "autoblog_pipeline_last_run_timestamp_seconds",
			Help: "Unix time the last pipeline run finished",
		},
	)

	c.registry.MustRegister(
		c.stepsTotal,
		c.stepDuration,
		c.deliveries,
		c.queuePending,
		c.lastRun,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveStep records one finished pipeline step.
func (c *Collector) ObserveStep(step, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.stepsTotal.WithLabelValues(step, outcome).Inc()
	c.stepDuration.WithLabelValues(step).Observe(d.Seconds())
}

// ObserveDelivery records one queue unit outcome.
func (c *Collector) ObserveDelivery(platform, outcome string) {
	if c == nil {
		return
	}
	c.deliveries.WithLabelValues(platform, outcome).Inc()
}

// SetPending records how many items still wait for platform.
func (c *Collector) SetPending(platform string, n int) {
	if c == nil {
		return
	}
	c.queuePending.WithLabelValues(platform).Set(float64(n))
}

// MarkRun records the end of a pipeline run.
func (c *Collector) MarkRun(at time.Time) {
	if c == nil {
		return
	}
	c.lastRun.Set(float64(at.Unix()))
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
