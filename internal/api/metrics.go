package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricPrefix namespaces all registry metrics.
const metricPrefix = "homie_"

// Metrics holds the Prometheus instruments for the API server.
//
// Each Metrics value carries its own registry so tests can create
// independent instances without duplicate-registration panics.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec
	deviceCount  prometheus.Gauge
}

// NewMetrics creates and registers the API server's Prometheus instruments.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total HTTP requests by method, path and status",
			},
			[]string{"method", "path", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		deviceCount: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "devices_total",
				Help: "Number of devices in the catalogue",
			},
		),
	}

	m.registry.MustRegister(m.httpRequests, m.httpLatency, m.deviceCount)

	return m
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// metricsMiddleware records request counts and latency per route.
func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		s.metrics.httpRequests.WithLabelValues(
			r.Method, r.URL.Path, strconv.Itoa(wrapped.status),
		).Inc()
		s.metrics.httpLatency.WithLabelValues(
			r.Method, r.URL.Path,
		).Observe(time.Since(start).Seconds())
	})
}

// updateDeviceGauge refreshes the device count gauge from the store.
// Failures are ignored; the gauge simply keeps its previous value.
func (s *Server) updateDeviceGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return
	}
	s.metrics.deviceCount.Set(float64(count))
}
