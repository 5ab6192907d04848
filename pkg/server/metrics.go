package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is where the metrics handler is mounted.
const MetricsPath = "/metrics"

// unknownRegion labels region requests naming a region the server does not
// render, keeping the label set bounded.
const unknownRegion = "unknown"

// Metrics counts requests by route and region.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	regions  *prometheus.CounterVec
	handler  http.Handler
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg *prometheus.Registry) (*Metrics, error) {
	if reg == nil {
		return nil, fmt.Errorf("server: metrics registry is nil")
	}
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formframe_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "formframe_http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		regions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "formframe_region_requests_total",
				Help: "Total number of requests scoped to a region",
			},
			[]string{"region"},
		),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration, m.regions} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("server: register metrics: %w", err)
		}
	}
	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m, nil
}

// Handler serves the registry in the exposition format.
func (m *Metrics) Handler() http.Handler {
	return m.handler
}

func (m *Metrics) observe(r *http.Request, status int, elapsed time.Duration, known string) {
	if m == nil {
		return
	}
	route := "unmatched"
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			route = pattern
		}
	}
	m.requests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
	if region := RegionFromRequest(r); region != "" {
		if region != known {
			region = unknownRegion
		}
		m.regions.WithLabelValues(region).Inc()
	}
}
