// Package monitoring provides Prometheus metrics and structured logging
// for the apocalypse meter service.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// HTTP performance
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Evaluation pipeline
	modelCalls      prometheus.Counter
	modelCallErrors prometheus.Counter
	modelLatency    prometheus.Histogram
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	parseRecoveries *prometheus.CounterVec
	parseFailures   prometheus.Counter

	// Results and leaderboards
	resultsStored   *prometheus.CounterVec
	resultsNotFound prometheus.Counter

	// Rate limiting
	rateLimitBlocks prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(customRegistry)
}

// NewManager creates a metrics manager registered on the given registry.
func NewManager(registry prometheus.Registerer) *Manager {
	m := &Manager{
		namespace: "apocalypse",
		registry:  registry,
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.modelCalls = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "model_calls_total",
		Help:      "Total number of chat-completion calls made",
	})

	m.modelCallErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "model_call_errors_total",
		Help:      "Total number of failed chat-completion calls",
	})

	m.modelLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "model_call_latency_milliseconds",
		Help:      "Chat-completion call latency in milliseconds",
		Buckets:   []float64{250, 500, 1000, 2500, 5000, 10000, 20000, 30000, 60000},
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "evaluation_cache_hits_total",
		Help:      "Total number of evaluations served from the response cache",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "evaluation_cache_misses_total",
		Help:      "Total number of evaluations that missed the response cache",
	})

	m.parseRecoveries = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "parse_recoveries_total",
			Help:      "Total number of model responses recovered by a fallback parse strategy",
		},
		[]string{"tier"},
	)

	m.parseFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "parse_failures_total",
		Help:      "Total number of model responses no parse strategy could recover",
	})

	m.resultsStored = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Name:      "results_stored_total",
			Help:      "Total number of results persisted, by scenario",
		},
		[]string{"scenario"},
	)

	m.resultsNotFound = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "results_not_found_total",
		Help:      "Total number of share-ID lookups that found nothing",
	})

	m.rateLimitBlocks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "rate_limit_blocks_total",
		Help:      "Total number of requests rejected by the rate limiter",
	})
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordModelCall records one chat-completion attempt.
func RecordModelCall(duration time.Duration, failed bool) {
	globalManager.modelCalls.Inc()
	globalManager.modelLatency.Observe(float64(duration.Milliseconds()))
	if failed {
		globalManager.modelCallErrors.Inc()
	}
}

// RecordCacheHit increments the response cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the response cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordParseRecovery counts a model response salvaged by the named tier.
func RecordParseRecovery(tier string) {
	globalManager.parseRecoveries.WithLabelValues(tier).Inc()
}

// RecordParseFailure counts a model response nothing could salvage.
func RecordParseFailure() {
	globalManager.parseFailures.Inc()
}

// RecordResultStored counts a persisted result for the scenario.
func RecordResultStored(scenarioID string) {
	globalManager.resultsStored.WithLabelValues(scenarioID).Inc()
}

// RecordResultNotFound counts a share-ID lookup miss.
func RecordResultNotFound() {
	globalManager.resultsNotFound.Inc()
}

// RecordRateLimitBlock counts a request rejected by the rate limiter.
func RecordRateLimitBlock() {
	globalManager.rateLimitBlocks.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
