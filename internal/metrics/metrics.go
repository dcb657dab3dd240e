// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	workflowStarts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "workflow_runs_started_total",
			Help: "Workflow executions started, by definition.",
		},
		[]string{"workflow"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Notification attempts, by template and delivery outcome.",
		},
		[]string{"template", "delivered"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// WorkflowStarted records the start of a workflow execution.
func WorkflowStarted(workflow string) {
	workflowStarts.WithLabelValues(workflow).Inc()
}

// NotificationAttempted records a notification attempt and its outcome.
func NotificationAttempted(template string, delivered bool) {
	notifications.WithLabelValues(template, strconv.FormatBool(delivered)).Inc()
}

// Handler exposes the default registry.
func Handler() http.Handler { return promhttp.Handler() }

// Instrument is gin middleware measuring request counts and latency.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path, status).
			Observe(time.Since(start).Seconds())
	}
}
