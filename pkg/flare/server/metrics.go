package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/watt-toolkit/flare/pkg/flare/http11"
)

// Metrics holds the Prometheus collectors of one server. Each server owns its
// registry so several servers (or tests) never collide on registration.
type Metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	parseErrors *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	active      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "flare",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of responses written, by method and status",
			},
			[]string{"method", "status"},
		),

		parseErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "flare",
				Subsystem: "http",
				Name:      "parse_errors_total",
				Help:      "Total number of rejected requests, by error kind",
			},
			[]string{"kind"},
		),

		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "flare",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Time from first byte read to response written",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),

		active: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "flare",
				Subsystem: "http",
				Name:      "active_connections",
				Help:      "Number of connections currently being served",
			},
		),
	}
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) observe(method http11.Method, status http11.Status, elapsed time.Duration) {
	label := methodLabel(method)
	m.requests.WithLabelValues(label, strconv.Itoa(status.Code())).Inc()
	m.duration.WithLabelValues(label).Observe(elapsed.Seconds())
}

func (m *Metrics) parseError(err error) {
	m.parseErrors.WithLabelValues(errorKind(err)).Inc()
}

func methodLabel(m http11.Method) string {
	if !m.IsValid() {
		return "unknown"
	}
	return m.String()
}

// errorKind maps a rejection cause to a low-cardinality label.
func errorKind(err error) string {
	switch {
	case errors.Is(err, http11.ErrInvalidRequestMethod):
		return "invalid_method"
	case errors.Is(err, http11.ErrHTTPVersionNotSupported):
		return "version_not_supported"
	case errors.Is(err, http11.ErrNoURLFound):
		return "no_url"
	case errors.Is(err, http11.ErrInvalidHeader):
		return "invalid_header"
	case errors.Is(err, http11.ErrQuery):
		return "query"
	case errors.Is(err, http11.ErrCookie):
		return "cookie"
	case errors.Is(err, http11.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, ErrHeaderTooLarge):
		return "header_too_large"
	case errors.Is(err, ErrBodyTooLarge):
		return "body_too_large"
	case errors.Is(err, ErrContentLength):
		return "content_length"
	default:
		return "other"
	}
}
