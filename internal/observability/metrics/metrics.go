// Package metrics holds the prometheus collectors of the billing API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Collaborators fetched by the header summary.
const (
	CollaboratorProject  = "project"
	CollaboratorServices = "services"
	CollaboratorPayments = "payments"
	CollaboratorTodos    = "todos"
	CollaboratorTenant   = "tenant"
)

// Billing bundles the billing service metrics.
type Billing struct {
	HeaderFallbacks      prometheus.Counter
	CollaboratorErrors   *prometheus.CounterVec
	HeaderSummaryLatency prometheus.Histogram
}

// NewBilling constructs the billing metrics and registers them with reg.
func NewBilling(reg prometheus.Registerer) *Billing {
	m := &Billing{
		HeaderFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "billing_header_summary_fallback_total",
			Help: "Header summaries answered with the zero fallback",
		}),
		CollaboratorErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "billing_collaborator_fetch_errors_total",
				Help: "Failed collaborator fetches by collaborator",
			},
			[]string{"collaborator"},
		),
		HeaderSummaryLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "billing_header_summary_duration_seconds",
			Help:    "Header summary computation time in seconds, fetches included",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.HeaderFallbacks, m.CollaboratorErrors, m.HeaderSummaryLatency)
	return m
}

// Fallback records one zero-summary fallback. Safe on a nil receiver.
func (m *Billing) Fallback() {
	if m == nil {
		return
	}
	m.HeaderFallbacks.Inc()
}

// CollaboratorFailed records a failed fetch of collaborator. Safe on a nil receiver.
func (m *Billing) CollaboratorFailed(collaborator string) {
	if m == nil {
		return
	}
	m.CollaboratorErrors.WithLabelValues(collaborator).Inc()
}

// ObserveHeader records how long a header summary took. Safe on a nil receiver.
func (m *Billing) ObserveHeader(d time.Duration) {
	if m == nil {
		return
	}
	m.HeaderSummaryLatency.Observe(d.Seconds())
}

// HTTP captures low-cardinality request metrics.
type HTTP struct {
	RequestDuration *prometheus.HistogramVec
}

// NewHTTP constructs the HTTP metrics and registers them with reg.
func NewHTTP(reg prometheus.Registerer) *HTTP {
	m := &HTTP{
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
	reg.MustRegister(m.RequestDuration)
	return m
}

// GinMiddleware records request duration by matched route.
func GinMiddleware(m *HTTP) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
