package telemetry

import (
	"bufio"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "launcher").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use. When nil the collectors
	// are created but not registered anywhere.
	Registry prometheus.Registerer
}

// MetricsOption configures the metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "launcher",
		Buckets:   prometheus.DefBuckets,
	}
}

// Metrics holds the launcher's Prometheus collectors.
type Metrics struct {
	navigations        *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	bridgeAttempts     *prometheus.CounterVec
	bridgeUnavailable  *prometheus.CounterVec
	themeChanges       *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with the configured
// registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "navigations_total",
			Help:        "Total number of page loads by page and status",
			ConstLabels: config.ConstLabels,
		}, []string{"page", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "navigation_duration_seconds",
			Help:        "Page load duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"page"}),

		bridgeAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "bridge_attempts_total",
			Help:        "Native host invocation attempts by command, strategy and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"command", "strategy", "outcome"}),

		bridgeUnavailable: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "bridge_unavailable_total",
			Help:        "Commands for which no invocation strategy produced a usable result",
			ConstLabels: config.ConstLabels,
		}, []string{"command"}),

		themeChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "theme_changes_total",
			Help:        "Applied themes by value and source",
			ConstLabels: config.ConstLabels,
		}, []string{"theme", "source"}),

		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "http_requests_total",
			Help:        "HTTP requests served by route and status code",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),
	}
}

// Bridge attempt outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeUnusable = "unusable"
)

// RecordNavigation records one page load.
func (m *Metrics) RecordNavigation(page, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.navigations.WithLabelValues(page, status).Inc()
	m.navigationDuration.WithLabelValues(page).Observe(d.Seconds())
}

// RecordBridgeAttempt records one invocation strategy attempt.
func (m *Metrics) RecordBridgeAttempt(command, strategy, outcome string) {
	if m == nil {
		return
	}
	m.bridgeAttempts.WithLabelValues(command, strategy, outcome).Inc()
}

// RecordBridgeUnavailable records a command that no strategy could serve.
func (m *Metrics) RecordBridgeUnavailable(command string) {
	if m == nil {
		return
	}
	m.bridgeUnavailable.WithLabelValues(command).Inc()
}

// RecordThemeChange records an applied theme.
func (m *Metrics) RecordThemeChange(theme, source string) {
	if m == nil {
		return
	}
	m.themeChanges.WithLabelValues(theme, source).Inc()
}

// Middleware records request counts and durations labeled by chi route
// pattern, keeping label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.httpRequests.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Hijack passes through to the underlying writer; the host websocket
// endpoint sits behind this middleware.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	w.status = http.StatusSwitchingProtocols
	return h.Hijack()
}
