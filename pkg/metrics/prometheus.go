package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds; store and filter work is mostly sub-10ms.
var defaultBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000} //nolint:gochecknoglobals // read-only defaults

// Manager manages all Prometheus metrics for the benchboard service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Submission metrics
	scoresSubmitted prometheus.Counter
	scoresRejected  *prometheus.CounterVec

	// Store metrics
	storeErrors       *prometheus.CounterVec
	storeQueryLatency *prometheus.HistogramVec

	// Board metrics
	filterApplyLatency prometheus.Histogram
	boardRows          prometheus.Gauge
	liveSubscribers    prometheus.Gauge
	storedScores       prometheus.Gauge

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "benchboard",
		histogramBuckets: defaultBuckets,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per metric
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.customLabels)

	m.scoresSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scores_submitted_total",
		Help:        "Total number of scores accepted into the store",
		ConstLabels: labels,
	})

	m.scoresRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "scores_rejected_total",
		Help:        "Total number of submitted scores rejected by reason",
		ConstLabels: labels,
	}, []string{"reason"})

	m.storeErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_errors_total",
		Help:        "Total number of score store failures by operation",
		ConstLabels: labels,
	}, []string{"operation"})

	m.storeQueryLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "store_query_latency_milliseconds",
		Help:        "Score store operation latency in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"operation"})

	m.filterApplyLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "filter_apply_latency_milliseconds",
		Help:        "Time spent applying a filter collection to a board",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.boardRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "board_rows",
		Help:        "Number of rows in the most recently served board",
		ConstLabels: labels,
	})

	m.liveSubscribers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "live_subscribers",
		Help:        "Current number of live score feed subscribers",
		ConstLabels: labels,
	})

	m.storedScores = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stored_scores",
		Help:        "Number of runs in the score store",
		ConstLabels: labels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	}, []string{"endpoint", "method", "status_code"})
}

// RecordScoreSubmitted increments the accepted score counter.
func (m *Manager) RecordScoreSubmitted() { m.scoresSubmitted.Inc() }

// RecordScoreRejected increments the rejected score counter for reason.
func (m *Manager) RecordScoreRejected(reason string) {
	m.scoresRejected.WithLabelValues(reason).Inc()
}

// RecordStoreError counts a failed store operation.
func (m *Manager) RecordStoreError(operation string) {
	m.storeErrors.WithLabelValues(operation).Inc()
}

// RecordStoreQueryLatency observes a store operation's latency.
func (m *Manager) RecordStoreQueryLatency(operation string, latencyMs float64) {
	m.storeQueryLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordFilterApplyLatency observes how long a filter pipeline took.
func (m *Manager) RecordFilterApplyLatency(latencyMs float64) {
	m.filterApplyLatency.Observe(latencyMs)
}

// UpdateBoardRows sets the size of the last served board.
func (m *Manager) UpdateBoardRows(count int) { m.boardRows.Set(float64(count)) }

// UpdateLiveSubscribers sets the live feed subscriber count.
func (m *Manager) UpdateLiveSubscribers(count int) { m.liveSubscribers.Set(float64(count)) }

// UpdateStoredScores sets the number of stored runs.
func (m *Manager) UpdateStoredScores(count int) { m.storedScores.Set(float64(count)) }

// RecordHTTPRequest increments the HTTP request counter.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Package-level helpers record on the global manager.

// RecordScoreSubmitted increments the accepted score counter.
func RecordScoreSubmitted() { globalManager.RecordScoreSubmitted() }

// RecordScoreRejected increments the rejected score counter for reason.
func RecordScoreRejected(reason string) { globalManager.RecordScoreRejected(reason) }

// RecordStoreError counts a failed store operation.
func RecordStoreError(operation string) { globalManager.RecordStoreError(operation) }

// RecordStoreQueryLatency observes a store operation's latency.
func RecordStoreQueryLatency(operation string, latencyMs float64) {
	globalManager.RecordStoreQueryLatency(operation, latencyMs)
}

// RecordFilterApplyLatency observes how long a filter pipeline took.
func RecordFilterApplyLatency(latencyMs float64) { globalManager.RecordFilterApplyLatency(latencyMs) }

// UpdateBoardRows sets the size of the last served board.
func UpdateBoardRows(count int) { globalManager.UpdateBoardRows(count) }

// UpdateLiveSubscribers sets the live feed subscriber count.
func UpdateLiveSubscribers(count int) { globalManager.UpdateLiveSubscribers(count) }

// UpdateStoredScores sets the number of stored runs.
func UpdateStoredScores(count int) { globalManager.UpdateStoredScores(count) }

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
