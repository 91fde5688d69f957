package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "opeak"

// Metrics groups the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	LatencyMS       *prometheus.HistogramVec
	BackendRequests *prometheus.CounterVec
	BackendLatency  *prometheus.HistogramVec
	OrdersSubmitted *prometheus.CounterVec
	StatusReverts   prometheus.Counter
	CatalogRefresh  *prometheus.CounterVec
}

var latencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   latencyBuckets,
		}, []string{"method", "route"}),
		BackendRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Calls made to the REST backend.",
		}, []string{"endpoint", "status"}),
		BackendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "request_duration_ms",
			Help:      "REST backend latency in milliseconds.",
			Buckets:   latencyBuckets,
		}, []string{"endpoint"}),
		OrdersSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_submitted_total",
			Help:      "Orders accepted by the backend.",
		}, []string{"source"}),
		StatusReverts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_status_reverts_total",
			Help:      "Optimistic status changes rolled back after a backend failure.",
		}),
		CatalogRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_refresh_total",
			Help:      "Reference data fetches by resource and outcome.",
		}, []string{"resource", "outcome"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Requests, m.LatencyMS,
		m.BackendRequests, m.BackendLatency,
		m.OrdersSubmitted, m.StatusReverts, m.CatalogRefresh,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(method, route).Observe(ms(elapsed))
}

// ObserveBackend records a backend call; status 0 marks a transport failure.
func (m *Metrics) ObserveBackend(endpoint string, status int, elapsed time.Duration) {
	m.BackendRequests.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	m.BackendLatency.WithLabelValues(endpoint).Observe(ms(elapsed))
}

func (m *Metrics) OrderSubmitted(source string) {
	m.OrdersSubmitted.WithLabelValues(source).Inc()
}

func (m *Metrics) StatusReverted() {
	m.StatusReverts.Inc()
}

func (m *Metrics) ReferenceFetched(resource string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.CatalogRefresh.WithLabelValues(resource, outcome).Inc()
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
