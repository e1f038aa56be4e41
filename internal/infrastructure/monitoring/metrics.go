// Package monitoring handles Prometheus metrics collection for the
// recommendation pipeline and the HTTP surface.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Pipeline metrics
	pipelineStagesTotal *prometheus.CounterVec
	aiRequestDuration   *prometheus.HistogramVec
	workoutsAccepted    prometheus.Counter
}

// NewMetricsCollector creates a metrics collector registered with the
// default Prometheus registry.
func NewMetricsCollector() *MetricsCollector {
	return NewMetricsCollectorWith(prometheus.DefaultRegisterer)
}

// NewMetricsCollectorWith creates a metrics collector registered with
// the given registerer. Tests pass a fresh registry so repeated
// construction does not collide.
func NewMetricsCollectorWith(reg prometheus.Registerer) *MetricsCollector {
	factory := promauto.With(reg)
	return &MetricsCollector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),
		pipelineStagesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_stages_total",
				Help: "Pipeline stage executions by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "Generative AI call duration in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16},
			},
			[]string{"stage"},
		),
		workoutsAccepted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "workouts_accepted_total",
				Help: "Workout options accepted and persisted",
			},
		),
	}
}

// RecordHTTPRequest records an HTTP request observation.
func (m *MetricsCollector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	m.httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	m.httpRequestDuration.WithLabelValues(method, path, code).Observe(duration.Seconds())
}

// RecordStage records a pipeline stage execution and its AI latency.
func (m *MetricsCollector) RecordStage(stage string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.pipelineStagesTotal.WithLabelValues(stage, outcome).Inc()
	m.aiRequestDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordWorkoutAccepted counts a persisted workout acceptance.
func (m *MetricsCollector) RecordWorkoutAccepted() {
	m.workoutsAccepted.Inc()
}

// Handler returns the Prometheus scrape handler.
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.Handler()
}
