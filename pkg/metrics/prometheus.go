// Package metrics provides Prometheus metrics for the expert recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Core business metrics: recomputations and what they cost
	recommendations       prometheus.Counter
	recommendationLatency prometheus.Histogram
	evaluations           prometheus.Counter
	candidatesEvaluated   prometheus.Counter
	positiveCandidates    prometheus.Gauge
	ownedSetSize          prometheus.Gauge
	toggles               *prometheus.CounterVec

	// Catalog metrics
	catalogExperts prometheus.Gauge
	catalogStages  *prometheus.GaugeVec
	catalogLoads   *prometheus.CounterVec

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "expertcalc",
		subsystem:        "recommender",
		histogramBuckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100},
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.recommendations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendations_total",
		Help:        "Total number of ranking recomputations",
		ConstLabels: labels,
	})

	m.recommendationLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "recommendation_latency_milliseconds",
		Help:        "Histogram of a full gain computation plus ranking in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})

	m.evaluations = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "stage_evaluations_total",
		Help:        "Total number of requirement evaluations over a tier's stage list",
		ConstLabels: labels,
	})

	m.candidatesEvaluated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "candidates_evaluated_total",
		Help:        "Total number of non-owned candidates evaluated hypothetically",
		ConstLabels: labels,
	})

	m.positiveCandidates = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "positive_gain_candidates",
		Help:        "Candidates with a non-zero gain in the latest recomputation",
		ConstLabels: labels,
	})

	m.ownedSetSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "owned_set_size",
		Help:        "Size of the owned set in the latest recomputation",
		ConstLabels: labels,
	})

	m.toggles = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "owned_toggles_total",
			Help:        "Owned-set toggles by direction",
			ConstLabels: labels,
		},
		[]string{"direction"},
	)

	m.catalogExperts = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "catalog_experts",
		Help:        "Number of experts in the loaded dataset",
		ConstLabels: labels,
	})

	m.catalogStages = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "catalog_stages",
			Help:        "Number of stages in the loaded dataset by tier",
			ConstLabels: labels,
		},
		[]string{"tier"},
	)

	m.catalogLoads = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "catalog_loads_total",
			Help:        "Dataset load attempts by outcome",
			ConstLabels: labels,
		},
		[]string{"outcome"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests by endpoint and method",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "http_request_duration_milliseconds",
			Help:        "HTTP request duration in milliseconds",
			Buckets:     m.histogramBuckets,
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_endpoint_total",
			Help:        "HTTP errors by endpoint, method and error type",
			ConstLabels: labels,
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   m.namespace,
			Subsystem:   m.subsystem,
			Name:        "errors_by_type_total",
			Help:        "Errors by type and severity",
			ConstLabels: labels,
		},
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "memory_usage_bytes",
		Help:        "Allocated heap memory in bytes",
		ConstLabels: labels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "goroutines",
		Help:        "Number of live goroutines",
		ConstLabels: labels,
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   "system",
		Name:        "gc_pause_milliseconds",
		Help:        "Average GC pause time in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: labels,
	})
}

// RecordRecommendation records one completed recomputation.
func RecordRecommendation(latencyMs float64, ownedSize, positive int) {
	globalManager.recommendations.Inc()
	globalManager.recommendationLatency.Observe(latencyMs)
	globalManager.ownedSetSize.Set(float64(ownedSize))
	globalManager.positiveCandidates.Set(float64(positive))
}

// RecordEvaluations adds n tier evaluations.
func RecordEvaluations(n int) {
	globalManager.evaluations.Add(float64(n))
}

// RecordCandidatesEvaluated adds n hypothetical candidate evaluations.
func RecordCandidatesEvaluated(n int) {
	globalManager.candidatesEvaluated.Add(float64(n))
}

// RecordToggle increments the toggle counter; added reports the direction.
func RecordToggle(added bool) {
	direction := "removed"
	if added {
		direction = "added"
	}
	globalManager.toggles.WithLabelValues(direction).Inc()
}

// UpdateCatalog publishes the size of the loaded dataset.
func UpdateCatalog(experts int, stagesByTier map[string]int) {
	globalManager.catalogExperts.Set(float64(experts))
	for tier, n := range stagesByTier {
		globalManager.catalogStages.WithLabelValues(tier).Set(float64(n))
	}
}

// RecordCatalogLoad counts a dataset load attempt.
func RecordCatalogLoad(ok bool) {
	outcome := "error"
	if ok {
		outcome = "ok"
	}
	globalManager.catalogLoads.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint increments errors for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType increments errors by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the allocated heap size.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(n int) {
	globalManager.systemGoroutineCount.Set(float64(n))
}

// RecordSystemGCPauseTime observes an average GC pause.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Observe(ms)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
