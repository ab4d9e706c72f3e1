// v2
// internal/metrics/metrics.go
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry; separate instances never share
// collectors.
type Metrics struct {
	registry      *prometheus.Registry
	requests      *prometheus.CounterVec
	latencies     *prometheus.HistogramVec
	toolRejects   *prometheus.CounterVec
	segmentsTotal prometheus.Counter
}

// Tool identifiers used as label values.
const (
	ToolColors = "colors"
	ToolTime   = "time"
	ToolPoints = "points"
)

// New registers every stats board collector plus the Go runtime and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statsboard_http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		latencies: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "statsboard_http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		toolRejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statsboard_tool_rejections_total",
			Help: "Tool requests rejected because of invalid input.",
		}, []string{"tool"}),
		segmentsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statsboard_color_segments_decoded_total",
			Help: "Total colored segments produced by the color tool.",
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests,
		m.latencies,
		m.toolRejects,
		m.segmentsTotal,
	)
	return m
}

// ObserveRequest stores the status distribution and latency for a route.
func (m *Metrics) ObserveRequest(route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	if strings.TrimSpace(route) == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.latencies.WithLabelValues(route).Observe(duration.Seconds())
}

// IncToolRejected counts a tool request answered with 400.
func (m *Metrics) IncToolRejected(tool string) {
	if m == nil {
		return
	}
	m.toolRejects.WithLabelValues(tool).Inc()
}

// AddSegments counts decoded color segments.
func (m *Metrics) AddSegments(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.segmentsTotal.Add(float64(n))
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
