package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns all Prometheus metrics of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	enabled        bool
	constLabels    map[string]string
	registry       prometheus.Registerer

	// Scoring
	predictions      *prometheus.CounterVec
	predictionErrors prometheus.Counter
	predictionTime   prometheus.Histogram
	riskScores       prometheus.Histogram
	batchSize        prometheus.Histogram
	batchTime        prometheus.Histogram
	riskThreshold    prometheus.Gauge
	storedCount      prometheus.Gauge

	// Jobs
	jobsSubmitted prometheus.Counter
	jobsDuplicate prometheus.Counter
	jobsRejected  prometheus.Counter
	jobsFinished  *prometheus.CounterVec
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge
	workersBusy   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errors *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // singleton backing the package-level recorders

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // shared registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "attrition",
		subsystem:      "scorer",
		latencyBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		enabled:        true,
		constLabels:    map[string]string{},
		registry:       prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) opts(name, help string) prometheus.Opts {
	return prometheus.Opts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	o := m.opts(name, help)
	return prometheus.HistogramOpts{
		Namespace:   o.Namespace,
		Subsystem:   o.Subsystem,
		Name:        o.Name,
		Help:        o.Help,
		ConstLabels: o.ConstLabels,
		Buckets:     buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.predictions = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"predictions_total", "Predictions produced, by risk level")), []string{"risk_level"})
	m.predictionErrors = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"prediction_errors_total", "Predictions that failed")))
	m.predictionTime = auto.NewHistogram(m.histOpts(
		"prediction_latency_milliseconds", "Single prediction latency in milliseconds", m.latencyBuckets))
	m.riskScores = auto.NewHistogram(m.histOpts(
		"risk_score", "Distribution of produced risk scores", prometheus.LinearBuckets(0.1, 0.1, 10)))
	m.batchSize = auto.NewHistogram(m.histOpts(
		"batch_size_employees", "Employees per batch prediction", prometheus.ExponentialBuckets(1, 4, 8)))
	m.batchTime = auto.NewHistogram(m.histOpts(
		"batch_latency_milliseconds", "Batch prediction latency in milliseconds", m.latencyBuckets))
	m.riskThreshold = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"risk_threshold", "Current binary risk decision threshold")))
	m.storedCount = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"stored_predictions", "Employees with a stored latest prediction")))

	m.jobsSubmitted = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"jobs_submitted_total", "Batch jobs accepted onto the queue")))
	m.jobsDuplicate = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"jobs_duplicate_total", "Batch jobs ignored as resubmissions")))
	m.jobsRejected = auto.NewCounter(prometheus.CounterOpts(m.opts(
		"jobs_rejected_total", "Batch jobs rejected by backpressure")))
	m.jobsFinished = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"jobs_finished_total", "Batch jobs finished, by final state")), []string{"state"})
	m.queueSize = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"queue_size", "Jobs waiting in the queue")))
	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"queue_capacity", "Maximum number of queued jobs")))
	m.workerCount = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"worker_count", "Configured job workers")))
	m.workersBusy = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"workers_busy", "Workers currently scoring a job")))

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"http_requests_total", "HTTP requests by endpoint, method and status")),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.latencyBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errors = auto.NewCounterVec(prometheus.CounterOpts(m.opts(
		"errors_total", "Errors by component and type")), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"system_memory_usage_bytes", "Heap memory in use")))
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts(m.opts(
		"system_goroutine_count", "Number of goroutines")))
	m.systemGCPauseTime = auto.NewHistogram(m.histOpts(
		"system_gc_pause_time_milliseconds", "Average GC pause in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// RecordPrediction counts a prediction and observes its score and latency.
func (m *Manager) RecordPrediction(riskLevel string, riskScore, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.predictions.WithLabelValues(riskLevel).Inc()
	m.riskScores.Observe(riskScore)
	m.predictionTime.Observe(latencyMs)
}

// RecordPredictionError counts a failed prediction.
func (m *Manager) RecordPredictionError() {
	if !m.enabled {
		return
	}
	m.predictionErrors.Inc()
}

// RecordBatch observes a batch's size and latency.
func (m *Manager) RecordBatch(size int, latencyMs float64) {
	if !m.enabled {
		return
	}
	m.batchSize.Observe(float64(size))
	m.batchTime.Observe(latencyMs)
}

// Package-level recorders delegate to the global manager.

// RecordPrediction counts a prediction by level and observes score and latency.
func RecordPrediction(riskLevel string, riskScore, latencyMs float64) {
	globalManager.RecordPrediction(riskLevel, riskScore, latencyMs)
}

// RecordPredictionError counts a failed prediction.
func RecordPredictionError() { globalManager.RecordPredictionError() }

// RecordBatch observes the size and latency of a batch prediction.
func RecordBatch(size int, latencyMs float64) { globalManager.RecordBatch(size, latencyMs) }

// UpdateRiskThreshold sets the threshold gauge.
func UpdateRiskThreshold(v float64) { globalManager.riskThreshold.Set(v) }

// UpdateStoredPredictions sets the stored prediction count.
func UpdateStoredPredictions(n int) { globalManager.storedCount.Set(float64(n)) }

// RecordJobSubmitted counts a queued job.
func RecordJobSubmitted() { globalManager.jobsSubmitted.Inc() }

// RecordJobDuplicate counts an ignored resubmission.
func RecordJobDuplicate() { globalManager.jobsDuplicate.Inc() }

// RecordJobRejected counts a job refused by backpressure.
func RecordJobRejected() { globalManager.jobsRejected.Inc() }

// RecordJobFinished counts a finished job by its final state.
func RecordJobFinished(state string) { globalManager.jobsFinished.WithLabelValues(state).Inc() }

// UpdateQueueSize sets the current queue length.
func UpdateQueueSize(n int) { globalManager.queueSize.Set(float64(n)) }

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// AddWorkersBusy adjusts the busy worker gauge by delta.
func AddWorkersBusy(delta int) { globalManager.workersBusy.Add(float64(delta)) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError counts an error by component and type.
func RecordError(component, errorType string) {
	globalManager.errors.WithLabelValues(component, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.systemGCPauseTime.Observe(pauseMs) }

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
