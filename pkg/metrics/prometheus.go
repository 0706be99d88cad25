// Package metrics provides Prometheus metrics for the Galactis web service.
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
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Intake metrics
	submissions       *prometheus.CounterVec
	rateLimitDenials  *prometheus.CounterVec
	crmDeliveries     *prometheus.CounterVec
	crmLatency        prometheus.Histogram
	limiterRecords    prometheus.Gauge
	limiterSweptTotal prometheus.Counter

	// Content metrics
	cmsFetches  *prometheus.CounterVec
	cmsLatency  *prometheus.HistogramVec
	cacheLookup *prometheus.CounterVec
	revalidated prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
	errorsByType        *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Setup rebuilds the global manager on a fresh custom registry with opts,
// e.g. constant labels from config. Call it at startup before anything
// records or serves metrics; earlier samples are dropped.
func Setup(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "galactis",
		subsystem:        "web",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.submissions = m.counterVec("form_submissions_total",
		"Form submissions by form kind and outcome (accepted, invalid, rate_limited, malformed)",
		"form", "outcome")

	m.rateLimitDenials = m.counterVec("rate_limit_denials_total",
		"Submissions denied by the per-client rate limiter", "form")

	m.crmDeliveries = m.counterVec("crm_deliveries_total",
		"CRM delivery attempts by form kind and outcome (delivered, rejected, error, timeout, panic)",
		"form", "outcome")

	m.crmLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "crm_delivery_duration_milliseconds",
		Help:        "Latency of outbound CRM submissions in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.limiterRecords = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rate_limit_records",
		Help:        "Number of live rate-limit records held in memory",
		ConstLabels: m.constLabels,
	})

	m.limiterSweptTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rate_limit_swept_total",
		Help:        "Expired rate-limit records removed by the sweep",
		ConstLabels: m.constLabels,
	})

	m.cmsFetches = m.counterVec("cms_fetches_total",
		"CMS fetches by operation and outcome (ok, empty, error, not_configured, not_found)",
		"operation", "outcome")

	m.cmsLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cms_fetch_duration_milliseconds",
		Help:        "Latency of CMS fetches in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"operation"})

	m.cacheLookup = m.counterVec("content_cache_lookups_total",
		"Content cache lookups by result (hit, miss)", "result")

	m.revalidated = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "content_revalidations_total",
		Help:        "Content cache invalidations triggered by the webhook",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = m.counterVec("http_requests_total",
		"Total number of HTTP requests by endpoint and method",
		"endpoint", "method", "status_code")

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total",
		"Error responses by endpoint, method and error type", "endpoint", "method", "error_type")

	m.errorsByType = m.counterVec("errors_by_type_total",
		"Error responses by type and severity", "error_type", "severity")

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "System memory usage in bytes",
		ConstLabels: m.constLabels,
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_goroutine_count",
		Help:        "Number of goroutines",
		ConstLabels: m.constLabels,
	})
}

// RecordSubmission counts a form submission outcome.
func RecordSubmission(form, outcome string) {
	globalManager.submissions.WithLabelValues(form, outcome).Inc()
}

// RecordRateLimitDenial counts a submission rejected by the limiter.
func RecordRateLimitDenial(form string) {
	globalManager.rateLimitDenials.WithLabelValues(form).Inc()
}

// RecordCRMDelivery counts a CRM delivery outcome and its latency.
func RecordCRMDelivery(form, outcome string, latencyMs float64) {
	globalManager.crmDeliveries.WithLabelValues(form, outcome).Inc()
	globalManager.crmLatency.Observe(latencyMs)
}

// UpdateRateLimitRecords sets the number of live limiter records.
func UpdateRateLimitRecords(count int) {
	globalManager.limiterRecords.Set(float64(count))
}

// RecordRateLimitSwept adds the number of records removed by a sweep.
func RecordRateLimitSwept(count int) {
	globalManager.limiterSweptTotal.Add(float64(count))
}

// RecordCMSFetch counts a CMS fetch outcome and its latency.
func RecordCMSFetch(operation, outcome string, latencyMs float64) {
	globalManager.cmsFetches.WithLabelValues(operation, outcome).Inc()
	globalManager.cmsLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordCacheLookup counts a content cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	globalManager.cacheLookup.WithLabelValues(result).Inc()
}

// RecordRevalidation counts a content cache invalidation.
func RecordRevalidation() {
	globalManager.revalidated.Inc()
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error response for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage updates system memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
