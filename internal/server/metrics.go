package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exposed on /metrics.
type Metrics struct {
	registry          *prometheus.Registry
	requests          *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	rateLimited       prometheus.Counter
	dashboardDuration prometheus.Histogram
	dashboardFailures prometheus.Counter
}

// NewMetrics registers the server collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "craftd",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "craftd",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "craftd",
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		dashboardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "craftd",
			Name:      "dashboard_build_duration_seconds",
			Help:      "Time to fetch and compose a career dashboard.",
			Buckets:   prometheus.DefBuckets,
		}),
		dashboardFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "craftd",
			Name:      "dashboard_failures_total",
			Help:      "Dashboard requests that failed because a dataset could not be fetched.",
		}),
	}

	reg.MustRegister(
		m.requests,
		m.requestDuration,
		m.rateLimited,
		m.dashboardDuration,
		m.dashboardFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observeRequest(route, method string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
