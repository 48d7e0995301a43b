package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	coreport "github.com/amirhossein-jamali/venue-reservation/internal/domain/port/core"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "venue_reservation"

// Recorder exposes domain and HTTP metrics through a Prometheus registry
type Recorder struct {
	registry *prometheus.Registry

	operations       *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
	conflictRetries  *prometheus.CounterVec
	compensations    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpLatency      *prometheus.HistogramVec
}

var _ coreport.MetricsRecorder = (*Recorder)(nil)

// NewRecorder creates a recorder on its own registry, with Go runtime and
// process collectors attached
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservation",
			Name:      "operations_total",
			Help:      "Lifecycle and query operations by outcome.",
		}, []string{"operation", "outcome"}),
		operationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "reservation",
			Name:      "operation_duration_seconds",
			Help:      "Latency of lifecycle and query operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		conflictRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "conflict_retries_total",
			Help:      "Optimistic transactions aborted by a concurrent write.",
		}, []string{"operation"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reservation",
			Name:      "compensations_total",
			Help:      "Best-effort compensations after a partial failure.",
		}, []string{"reason"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.operations,
		r.operationLatency,
		r.conflictRetries,
		r.compensations,
		r.httpRequests,
		r.httpLatency,
	)
	return r
}

// ObserveOperation records an operation outcome and its latency
func (r *Recorder) ObserveOperation(operation string, outcome string, duration time.Duration) {
	r.operations.WithLabelValues(operation, outcome).Inc()
	r.operationLatency.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncConflictRetry counts an aborted optimistic transaction
func (r *Recorder) IncConflictRetry(operation string) {
	r.conflictRetries.WithLabelValues(operation).Inc()
}

// IncCompensation counts a compensation
func (r *Recorder) IncCompensation(reason string) {
	r.compensations.WithLabelValues(reason).Inc()
}

// RegisterDBStats exports connection pool statistics of db
func (r *Recorder) RegisterDBStats(db *sql.DB, name string) error {
	return r.registry.Register(collectors.NewDBStatsCollector(db, name))
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Middleware records request counts and latency per matched route
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpLatency.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// NoopRecorder discards every measurement
type NoopRecorder struct{}

var _ coreport.MetricsRecorder = NoopRecorder{}

// ObserveOperation does nothing
func (NoopRecorder) ObserveOperation(string, string, time.Duration) {}

// IncConflictRetry does nothing
func (NoopRecorder) IncConflictRetry(string) {}

// IncCompensation does nothing
func (NoopRecorder) IncCompensation(string) {}
