// Package metrics exposes the engine's Prometheus collectors.
//
// Every method is safe to call on a nil *Collector, which records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidpool/vidpool/constant"
)

// Collector owns a private registry, so several engines in one process do not collide.
type Collector struct {
	registry *prometheus.Registry

	requests     *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	skips        *prometheus.CounterVec
	resets       *prometheus.CounterVec
	tasks        *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.Vidpool,
			Subsystem: "endpoint",
			Name:      "requests_total",
			Help:      "Endpoint calls, partitioned by capability, endpoint and outcome.",
		}, []string{"capability", "endpoint", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constant.Vidpool,
			Subsystem: "endpoint",
			Name:      "request_duration_seconds",
			Help:      "Endpoint call latency in seconds, partitioned by capability.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"capability"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.Vidpool,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Response cache lookups, partitioned by result.",
		}, []string{"result"}),
		skips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.Vidpool,
			Subsystem: "breaker",
			Name:      "skips_total",
			Help:      "Candidates skipped because they were cooling down.",
		}, []string{"capability"}),
		resets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.Vidpool,
			Subsystem: "breaker",
			Name:      "resets_total",
			Help:      "Failure records cleared because every candidate of a capability was cooling down.",
		}, []string{"capability"}),
		tasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constant.Vidpool,
			Subsystem: "fanout",
			Name:      "tasks_total",
			Help:      "Fan-out tasks, partitioned by operation and outcome.",
		}, []string{"operation", "outcome"}),
	}

	c.registry.MustRegister(c.requests, c.latency, c.cacheLookups, c.skips, c.resets, c.tasks)
	return c
}

// Request records one endpoint call. An empty outcome means success.
func (c *Collector) Request(capability, endpoint, outcome string, elapsed time.Duration) {
	if c == nil {
		return
	}
	if outcome == "" {
		outcome = "ok"
	}
	c.requests.WithLabelValues(capability, endpoint, outcome).Inc()
	c.latency.WithLabelValues(capability).Observe(elapsed.Seconds())
}

// CacheLookup is shaped to be passed to cache.WithObserver.
func (c *Collector) CacheLookup(hit bool) {
	if c == nil {
		return
	}
	if hit {
		c.cacheLookups.WithLabelValues("hit").Inc()
	} else {
		c.cacheLookups.WithLabelValues("miss").Inc()
	}
}

func (c *Collector) Skip(capability string) {
	if c == nil {
		return
	}
	c.skips.WithLabelValues(capability).Inc()
}

func (c *Collector) Reset(capability string) {
	if c == nil {
		return
	}
	c.resets.WithLabelValues(capability).Inc()
}

// Task records how a fan-out task ended: ok, failed or late.
func (c *Collector) Task(operation, outcome string) {
	if c == nil {
		return
	}
	c.tasks.WithLabelValues(operation, outcome).Inc()
}

// Registry exposes the underlying registry for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
