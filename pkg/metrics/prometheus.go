package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline stages observed by RecordStageDuration.
const (
	StageFetch     = "fetch"
	StageMerge     = "merge"
	StageAggregate = "aggregate"
	StageSummary   = "summary"
	StageIndices   = "indices"
)

var knownStages = map[string]struct{}{ //nolint:gochecknoglobals // closed label set
	StageFetch:     {},
	StageMerge:     {},
	StageAggregate: {},
	StageSummary:   {},
	StageIndices:   {},
}

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace    string
	subsystem    string
	fetchBuckets []float64
	stageBuckets []float64
	registry     prometheus.Registerer

	// Provider
	gamesFetched  prometheus.Counter
	gamesFailed   *prometheus.CounterVec
	gamesSkipped  prometheus.Counter
	fetchLatency  prometheus.Histogram
	cacheRequests *prometheus.CounterVec

	// Store
	playerMerges     prometheus.Counter
	mergeWarnings    *prometheus.CounterVec
	corruptDocuments prometheus.Counter
	playersTotal     prometheus.Gauge

	// Builders
	aggregatesTotal prometheus.Gauge
	stageDuration   *prometheus.HistogramVec
	lastRunUnix     prometheus.Gauge

	// Worker pool
	queueSize   prometheus.Gauge
	workerCount prometheus.Gauge

	// HTTP
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
		namespace:    "gridiron",
		subsystem:    "pipeline",
		fetchBuckets: []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		stageBuckets: []float64{1, 10, 100, 500, 1000, 5000, 15000, 60000, 300000},
		registry:     prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.gamesFetched = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_fetched_total",
		Help:      "Total number of box scores fetched from the provider",
	})

	m.gamesFailed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_failed_total",
		Help:      "Total number of games skipped because of an error, by reason",
	}, []string{"reason"})

	m.gamesSkipped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_duplicate_total",
		Help:      "Total number of game ids dropped as duplicates within a run",
	})

	m.fetchLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_latency_milliseconds",
		Help:      "Provider fetch latency in milliseconds",
		Buckets:   m.fetchBuckets,
	})

	m.cacheRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_requests_total",
		Help:      "Box score cache lookups by result (hit, miss, error)",
	}, []string{"result"})

	m.playerMerges = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "player_merges_total",
		Help:      "Total number of game logs merged into player documents",
	})

	m.mergeWarnings = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_warnings_total",
		Help:      "Non-fatal merge problems by kind",
	}, []string{"kind"})

	m.corruptDocuments = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "corrupt_documents_total",
		Help:      "Player documents that failed to parse and were quarantined",
	})

	m.playersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_total",
		Help:      "Number of player documents in the store",
	})

	m.aggregatesTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregates_total",
		Help:      "Number of college aggregates written by the last run",
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_milliseconds",
		Help:      "Duration of each pipeline stage in milliseconds",
		Buckets:   m.stageBuckets,
	}, []string{"stage"})

	m.lastRunUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last completed run",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_queue_size",
		Help:      "Current number of fetch jobs waiting in the queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "fetch_worker_count",
		Help:      "Number of running fetch workers",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: "api",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: "api",
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordGameFetched increments the fetched games counter.
func RecordGameFetched() {
	globalManager.gamesFetched.Inc()
}

// RecordGameFailed increments the failed games counter for reason.
func RecordGameFailed(reason string) {
	globalManager.gamesFailed.WithLabelValues(reason).Inc()
}

// RecordGameDuplicate increments the duplicate game id counter.
func RecordGameDuplicate() {
	globalManager.gamesSkipped.Inc()
}

// RecordFetchLatency records provider latency in milliseconds.
func RecordFetchLatency(latencyMs float64) {
	globalManager.fetchLatency.Observe(latencyMs)
}

// RecordCacheHit records a box score cache hit.
func RecordCacheHit() {
	globalManager.cacheRequests.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a box score cache miss.
func RecordCacheMiss() {
	globalManager.cacheRequests.WithLabelValues("miss").Inc()
}

// RecordCacheError records a failed cache round trip.
func RecordCacheError() {
	globalManager.cacheRequests.WithLabelValues("error").Inc()
}

// RecordPlayerMerge increments the merged game log counter.
func RecordPlayerMerge() {
	globalManager.playerMerges.Inc()
}

// RecordMergeWarning increments the merge warning counter for kind.
func RecordMergeWarning(kind string) {
	globalManager.mergeWarnings.WithLabelValues(kind).Inc()
}

// RecordCorruptDocument increments the quarantined document counter.
func RecordCorruptDocument() {
	globalManager.corruptDocuments.Inc()
}

// UpdatePlayersTotal sets the player document count.
func UpdatePlayersTotal(count int) {
	globalManager.playersTotal.Set(float64(count))
}

// UpdateAggregatesTotal sets the aggregate count.
func UpdateAggregatesTotal(count int) {
	globalManager.aggregatesTotal.Set(float64(count))
}

// RecordStageDuration observes how long a pipeline stage took.
func RecordStageDuration(stage string, d time.Duration) error {
	if _, ok := knownStages[stage]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownStage, stage)
	}
	globalManager.stageDuration.WithLabelValues(stage).Observe(float64(d.Milliseconds()))
	return nil
}

// RecordRunCompleted stamps the last completed run.
func RecordRunCompleted(at time.Time) {
	globalManager.lastRunUnix.Set(float64(at.Unix()))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
