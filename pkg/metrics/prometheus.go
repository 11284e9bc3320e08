// Package metrics provides Prometheus metrics for the reference pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// fraudScoreBuckets covers the integer 0-100 fraud score range.
var fraudScoreBuckets = []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100} //nolint:gochecknoglobals // shared bucket layout

// Manager owns every Prometheus metric the service exposes.
type Manager struct {
	namespace       string
	subsystem       string
	enabled         bool
	refreshInterval time.Duration
	registry        prometheus.Registerer

	// Validation pipeline metrics
	validationsProcessed prometheus.Counter
	validationsByStatus  *prometheus.CounterVec
	validationLatency    prometheus.Histogram
	fraudScore           prometheus.Histogram
	consistencyScore     prometheus.Histogram
	submissionsDuplicate prometheus.Counter

	// Evaluation and tokenomics metrics
	evaluationsComputed prometheus.Counter
	evaluationErrors    prometheus.Counter
	tokenomicsPreviews  prometheus.Counter
	snapshotWrites      prometheus.Counter
	snapshotFailures    prometheus.Counter

	// Intake queue metrics
	queueSize        prometheus.Gauge
	queueCapacity    prometheus.Gauge
	queueUtilization prometheus.Gauge
	queueEnqueues    prometheus.Counter
	queueDequeues    prometheus.Counter
	queueErrors      *prometheus.CounterVec

	// Worker metrics
	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Leaderboard metrics
	leaderboardUpdates prometheus.Counter
	totalCandidates    prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Cross-cutting error tracking
	errorsByComponent *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:       "refcore",
		subsystem:       "pipeline",
		enabled:         true,
		refreshInterval: defaultRefreshInterval,
		registry:        prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.validationsProcessed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "validations_processed_total",
		Help: "Total number of reference submissions run through the validator.",
	})
	m.validationsByStatus = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "validations_by_status_total",
		Help: "Validation outcomes partitioned by validation status.",
	}, []string{"status"})
	m.validationLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "validation_latency_ms",
		Help:    "Latency of a single reference validation in milliseconds.",
		Buckets: prometheus.DefBuckets,
	})
	m.fraudScore = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "fraud_score",
		Help:    "Distribution of computed fraud scores (0-100).",
		Buckets: fraudScoreBuckets,
	})
	m.consistencyScore = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "consistency_score",
		Help:    "Distribution of computed consistency scores (0-1).",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})
	m.submissionsDuplicate = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "submissions_duplicate_total",
		Help: "Submissions rejected as duplicates by the idempotency check.",
	})

	m.evaluationsComputed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "evaluations_computed_total",
		Help: "Candidate evaluations computed (on demand or via batch).",
	})
	m.evaluationErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "evaluation_errors_total",
		Help: "Candidate evaluations that failed outright.",
	})
	m.tokenomicsPreviews = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "tokenomics_previews_total",
		Help: "Tokenomics previews served.",
	})
	m.snapshotWrites = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_writes_total",
		Help: "Append-only evaluation snapshots persisted.",
	})
	m.snapshotFailures = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "snapshot_failures_total",
		Help: "Snapshot writes that failed and were degraded to in-memory results.",
	})

	m.queueSize = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_size",
		Help: "Current number of queued validation jobs.",
	})
	m.queueCapacity = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_capacity",
		Help: "Configured capacity of the validation queue.",
	})
	m.queueUtilization = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_utilization",
		Help: "Queue fill ratio between 0 and 1.",
	})
	m.queueEnqueues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_enqueues_total",
		Help: "Jobs accepted by the validation queue.",
	})
	m.queueDequeues = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_dequeues_total",
		Help: "Jobs handed to workers by the validation queue.",
	})
	m.queueErrors = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "queue_errors_total",
		Help: "Queue failures partitioned by reason.",
	}, []string{"reason"})

	m.workerActive = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_active",
		Help: "Number of running validation workers.",
	})
	m.workerProcessingLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "worker_processing_latency_ms",
		Help:    "End-to-end processing latency of a validation job in milliseconds.",
		Buckets: prometheus.DefBuckets,
	})
	m.workerErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "worker_errors_total",
		Help: "Validation jobs that failed inside a worker.",
	})

	m.leaderboardUpdates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "leaderboard_updates_total",
		Help: "HRScore leaderboard updates applied.",
	})
	m.totalCandidates = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "total_candidates",
		Help: "Number of candidates tracked on the leaderboard.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total",
		Help: "HTTP requests partitioned by endpoint, method and status code.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name:    "http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "method", "status"})

	m.errorsByComponent = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "errors_by_component_total",
		Help: "Errors partitioned by component and error type.",
	}, []string{"component", "type"})

	m.systemMemoryUsage = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name: "memory_bytes",
		Help: "Current allocated heap bytes.",
	})
	m.systemGoroutineCount = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name: "goroutines",
		Help: "Current number of goroutines.",
	})
	m.systemGCPauseTime = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: "system",
		Name:    "gc_pause_ms",
		Help:    "Average GC pause time in milliseconds.",
		Buckets: prometheus.DefBuckets,
	})
}

// GetRegistry exposes the custom registry for the /healthz scrape handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Validation pipeline helpers.

func RecordValidation(status string) {
	globalManager.validationsProcessed.Inc()
	globalManager.validationsByStatus.WithLabelValues(status).Inc()
}

func RecordValidationLatency(ms float64) {
	globalManager.validationLatency.Observe(ms)
}

func RecordFraudScore(score float64) {
	globalManager.fraudScore.Observe(score)
}

func RecordConsistencyScore(score float64) {
	globalManager.consistencyScore.Observe(score)
}

func RecordSubmissionDuplicate() {
	globalManager.submissionsDuplicate.Inc()
}

// Evaluation and tokenomics helpers.

func RecordEvaluationComputed() { globalManager.evaluationsComputed.Inc() }
func RecordEvaluationError()    { globalManager.evaluationErrors.Inc() }
func RecordTokenomicsPreview()  { globalManager.tokenomicsPreviews.Inc() }
func RecordSnapshotWrite()      { globalManager.snapshotWrites.Inc() }
func RecordSnapshotFailure()    { globalManager.snapshotFailures.Inc() }

// Queue helpers.

func UpdateQueueSize(n int)              { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int)          { globalManager.queueCapacity.Set(float64(n)) }
func UpdateQueueUtilization(u float64)   { globalManager.queueUtilization.Set(u) }
func RecordQueueEnqueue()                { globalManager.queueEnqueues.Inc() }
func RecordQueueDequeue()                { globalManager.queueDequeues.Inc() }
func RecordQueueError(reason string)     { globalManager.queueErrors.WithLabelValues(reason).Inc() }

// Worker helpers.

func UpdateWorkerActiveCount(n int)             { globalManager.workerActive.Set(float64(n)) }
func RecordWorkerProcessingLatency(ms float64)  { globalManager.workerProcessingLatency.Observe(ms) }
func RecordWorkerError()                        { globalManager.workerErrors.Inc() }

// Leaderboard helpers.

func RecordLeaderboardUpdate()  { globalManager.leaderboardUpdates.Inc() }
func UpdateTotalCandidates(n int) { globalManager.totalCandidates.Set(float64(n)) }

// HTTP helpers.

func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// Error helpers.

func RecordErrorByComponent(component, errType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errType).Inc()
}

// System helpers.

func UpdateSystemMemoryUsage(bytes uint64)  { globalManager.systemMemoryUsage.Set(float64(bytes)) }
func UpdateSystemGoroutineCount(n int)      { globalManager.systemGoroutineCount.Set(float64(n)) }
func RecordSystemGCPauseTime(ms float64)    { globalManager.systemGCPauseTime.Observe(ms) }
