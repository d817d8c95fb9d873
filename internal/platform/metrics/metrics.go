// Package metrics exposes Prometheus metrics for upstream calls and inbound
// requests on a dedicated registry.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kb_gateway"

// Collector holds the gateway's metric vectors.
type Collector struct {
	registry *prometheus.Registry

	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	RequestsTotal    *prometheus.CounterVec
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		UpstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_calls_total",
			Help:      "Total number of RM API calls by operation and status code",
		}, []string{"operation", "status_code"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_call_duration_seconds",
			Help:      "Duration of RM API calls in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of inbound requests by route pattern and status code",
		}, []string{"method", "route", "status_code"}),
	}

	reg.MustRegister(c.UpstreamCalls, c.UpstreamDuration, c.RequestsTotal)
	return c
}

// ObserveUpstream records one upstream call. A zero status means the call
// failed before a response arrived.
func (c *Collector) ObserveUpstream(operation string, status int, elapsed time.Duration) {
	code := "error"
	if status != 0 {
		code = strconv.Itoa(status)
	}
	c.UpstreamCalls.WithLabelValues(operation, code).Inc()
	c.UpstreamDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// ObserveRequest records one inbound request.
func (c *Collector) ObserveRequest(method, route string, status int) {
	c.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
