// Package metrics provides Prometheus metrics for the morph telemetry core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the telemetry core.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Capture metrics - what the trackers observe
	eventsCaptured *prometheus.CounterVec
	motorSamples   prometheus.Counter
	motorRuns      prometheus.Counter
	captureSkips   *prometheus.CounterVec

	// Buffer metrics
	bufferEvents   prometheus.Gauge
	batchesFlushed prometheus.Counter
	batchEvents    prometheus.Histogram
	flushForced    prometheus.Counter

	// Sink metrics - transmission to the ingest boundary
	sinkRequests prometheus.Counter
	sinkErrors   prometheus.Counter
	sinkLatency  prometheus.Histogram

	// Matching metrics - suggestions and vector search
	suggestionsReceived prometheus.Counter
	suggestionsApplied  prometheus.Counter
	similaritySearches  prometheus.Counter

	// Session metrics
	sessionsStarted prometheus.Counter
	sessionsStopped prometheus.Counter

	// Diagnostic HTTP surface
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	// System metrics
	systemMemory     prometheus.Gauge
	systemGoroutines prometheus.Gauge
	systemGCPause    prometheus.Histogram
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
		namespace:        "morph",
		subsystem:        "telemetry",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	factory := promauto.With(m.registry)

	m.eventsCaptured = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_captured_total",
		Help:      "Discrete interaction events captured, by kind.",
	}, []string{"kind"})

	m.motorSamples = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "motor_samples_total",
		Help:      "Accepted pointer motion samples.",
	})

	m.motorRuns = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "motor_runs_total",
		Help:      "Motion sample runs flushed by the kinematics sampler.",
	})

	m.captureSkips = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "capture_skips_total",
		Help:      "Observations skipped by a tracker after a local capture error.",
	}, []string{"tracker"})

	m.bufferEvents = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "buffer_events",
		Help:      "Discrete events currently queued in the event buffer.",
	})

	m.batchesFlushed = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_flushed_total",
		Help:      "Telemetry batches handed to the sink.",
	})

	m.batchEvents = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_events",
		Help:      "Discrete events per flushed batch.",
		Buckets:   []float64{1, 5, 10, 25, 50, 100},
	})

	m.flushForced = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "flushes_forced_total",
		Help:      "Early flushes forced by the buffer size cap.",
	})

	m.sinkRequests = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_requests_total",
		Help:      "Batch transmissions attempted against the ingest endpoint.",
	})

	m.sinkErrors = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_errors_total",
		Help:      "Failed batch transmissions. Batches are dropped, not retried.",
	})

	m.sinkLatency = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sink_latency_ms",
		Help:      "Batch transmission latency in milliseconds.",
		Buckets:   m.histogramBuckets,
	})

	m.suggestionsReceived = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_received_total",
		Help:      "Module suggestions received on the inbound channel.",
	})

	m.suggestionsApplied = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "suggestions_applied_total",
		Help:      "Module suggestions decoded and applied to the render state.",
	})

	m.similaritySearches = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "similarity_searches_total",
		Help:      "Top-k similarity searches executed against the module catalog.",
	})

	m.sessionsStarted = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_started_total",
		Help:      "Telemetry sessions started.",
	})

	m.sessionsStopped = factory.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_stopped_total",
		Help:      "Telemetry sessions stopped.",
	})

	m.httpRequests = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Diagnostic HTTP requests, by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})

	m.httpDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_ms",
		Help:      "Diagnostic HTTP request duration in milliseconds.",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})

	m.systemMemory = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Heap bytes currently allocated.",
	})

	m.systemGoroutines = factory.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Live goroutine count.",
	})

	m.systemGCPause = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_ms",
		Help:      "Average GC pause time in milliseconds.",
		Buckets:   m.histogramBuckets,
	})
}

// Package-level helpers operating on the global manager.

// RecordEventCaptured increments the captured counter for an event kind.
func RecordEventCaptured(kind string) {
	if globalManager.enabled {
		globalManager.eventsCaptured.WithLabelValues(kind).Inc()
	}
}

// RecordMotorSample counts one accepted pointer sample.
func RecordMotorSample() {
	if globalManager.enabled {
		globalManager.motorSamples.Inc()
	}
}

// RecordMotorRun counts one flushed motion run.
func RecordMotorRun() {
	if globalManager.enabled {
		globalManager.motorRuns.Inc()
	}
}

// RecordCaptureSkip counts an observation dropped after a capture error.
func RecordCaptureSkip(tracker string) {
	if globalManager.enabled {
		globalManager.captureSkips.WithLabelValues(tracker).Inc()
	}
}

// UpdateBufferEvents sets the current buffered event count.
func UpdateBufferEvents(n int) {
	if globalManager.enabled {
		globalManager.bufferEvents.Set(float64(n))
	}
}

// RecordBatchFlushed counts one flushed batch and its event payload size.
func RecordBatchFlushed(events int) {
	if globalManager.enabled {
		globalManager.batchesFlushed.Inc()
		globalManager.batchEvents.Observe(float64(events))
	}
}

// RecordFlushForced counts an early flush triggered by the size cap.
func RecordFlushForced() {
	if globalManager.enabled {
		globalManager.flushForced.Inc()
	}
}

// RecordSinkRequest counts one transmission attempt.
func RecordSinkRequest() {
	if globalManager.enabled {
		globalManager.sinkRequests.Inc()
	}
}

// RecordSinkError counts one failed transmission.
func RecordSinkError() {
	if globalManager.enabled {
		globalManager.sinkErrors.Inc()
	}
}

// RecordSinkLatency observes transmission latency in milliseconds.
func RecordSinkLatency(latencyMs float64) {
	if globalManager.enabled {
		globalManager.sinkLatency.Observe(latencyMs)
	}
}

// RecordSuggestionReceived counts one inbound suggestion payload.
func RecordSuggestionReceived() {
	if globalManager.enabled {
		globalManager.suggestionsReceived.Inc()
	}
}

// RecordSuggestionApplied counts one suggestion folded into render state.
func RecordSuggestionApplied() {
	if globalManager.enabled {
		globalManager.suggestionsApplied.Inc()
	}
}

// RecordSimilaritySearch counts one catalog search.
func RecordSimilaritySearch() {
	if globalManager.enabled {
		globalManager.similaritySearches.Inc()
	}
}

// RecordSessionStarted counts one session start.
func RecordSessionStarted() {
	if globalManager.enabled {
		globalManager.sessionsStarted.Inc()
	}
}

// RecordSessionStopped counts one session stop.
func RecordSessionStopped() {
	if globalManager.enabled {
		globalManager.sessionsStopped.Inc()
	}
}

// RecordHTTPRequest counts one diagnostic HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one diagnostic HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}

// UpdateSystemMemoryUsage sets the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemory.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutines.Set(float64(n))
	}
}

// RecordSystemGCPauseTime records an average GC pause in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	if globalManager.enabled {
		globalManager.systemGCPause.Observe(pauseMs)
	}
}

// GetRegistry returns the custom Prometheus registry for the /metrics handler.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
