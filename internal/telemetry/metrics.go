package telemetry

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Metrics exposes Prometheus observability primitives for the catalog API.
type Metrics struct {
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	regionDenials  *prometheus.CounterVec
	regionResolved *prometheus.CounterVec
	bundlesCreated *prometheus.CounterVec
}

// NewMetrics registers and returns Prometheus metrics.
func NewMetrics() *Metrics {
	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kursus_http_requests_total",
		Help: "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kursus_http_duration_seconds",
		Help:    "HTTP request latency per method/route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	regionDenials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kursus_region_denials_total",
		Help: "Requests rejected by the region blocklist.",
	}, []string{"route"})

	regionResolved := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kursus_region_resolved_total",
		Help: "Region resolutions by resolved region.",
	}, []string{"region"})

	bundlesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kursus_bundles_created_total",
		Help: "Bundles created by mode (manual or auto).",
	}, []string{"mode"})

	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		regionDenials,
		regionResolved,
		bundlesCreated,
	)

	return &Metrics{
		httpRequests:   httpRequests,
		httpDuration:   httpDuration,
		regionDenials:  regionDenials,
		regionResolved: regionResolved,
		bundlesCreated: bundlesCreated,
	}
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) RegionDenied(route string) {
	if m == nil {
		return
	}
	m.regionDenials.WithLabelValues(route).Inc()
}

func (m *Metrics) RegionResolved(region string) {
	if m == nil {
		return
	}
	m.regionResolved.WithLabelValues(region).Inc()
}

func (m *Metrics) BundleCreated(mode string) {
	if m == nil {
		return
	}
	m.bundlesCreated.WithLabelValues(mode).Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.ObserveRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Module provides application metrics.
var Module = fx.Module("telemetry",
	fx.Provide(NewMetrics),
)
