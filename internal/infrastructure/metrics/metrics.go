package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the gatekeeper Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "gatekeeper",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gatekeeper",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gatekeeper",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	gateDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gatekeeper",
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Gate evaluations by target type and outcome (allowed, a denial reason, or error).",
		},
		[]string{"target_type", "outcome"},
	)

	gateDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gatekeeper",
			Subsystem: "gate",
			Name:      "evaluation_duration_seconds",
			Help:      "Duration of gate evaluations including entitlement lookups.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"target_type"},
	)

	ambiguousGates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gatekeeper",
			Subsystem: "gate",
			Name:      "ambiguous_matches_total",
			Help:      "Evaluations where more than one enabled pay gate restricted the requested action.",
		},
		[]string{"target_type"},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		gateDecisions,
		gateDuration,
		ambiguousGates,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched gin route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		httpInFlight.Inc()
		defer httpInFlight.Dec()

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method

		httpRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// GateRecorder records gate decisions into the package registry.
type GateRecorder struct{}

// NewGateRecorder returns a recorder backed by Registry
func NewGateRecorder() *GateRecorder {
	return &GateRecorder{}
}

// RecordDecision counts one evaluation outcome.
func (GateRecorder) RecordDecision(targetType, outcome string, elapsed time.Duration) {
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	gateDecisions.WithLabelValues(targetType, outcome).Inc()
	gateDuration.WithLabelValues(targetType).Observe(elapsed.Seconds())
}

// RecordAmbiguousMatch counts an evaluation that had to fall back on gate order.
func (GateRecorder) RecordAmbiguousMatch(targetType string) {
	ambiguousGates.WithLabelValues(targetType).Inc()
}
