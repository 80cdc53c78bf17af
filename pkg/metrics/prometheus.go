// Package metrics provides Prometheus metrics for the podium pick'em
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns every Prometheus collector the service registers.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Business metrics.
	submissionsAccepted  prometheus.Counter
	submissionsDuplicate prometheus.Counter
	picksApplied         prometheus.Counter
	picksRejected        prometheus.Counter
	leaderboardBuilds    prometheus.Counter
	leaderboardBuildTime prometheus.Histogram

	// Feed metrics.
	feedRefreshes prometheus.Counter
	feedErrors    prometheus.Counter
	gamesTracked  prometheus.Gauge

	// Operational health.
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge
	totalPlayers  prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global manager on a custom registry so the default Go collectors stay out
// of the scrape output.
var (
	customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton metrics registry
	globalManager  *Manager                   //nolint:gochecknoglobals // singleton metrics manager
)

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "podium",
		subsystem:        "picks",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	if !m.enabled {
		return
	}
	factory := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
		m.registry.MustRegister(c)
		return c
	}
	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
		m.registry.MustRegister(g)
		return g
	}

	m.submissionsAccepted = factory("submissions_accepted_total", "Pick submissions accepted for processing.")
	m.submissionsDuplicate = factory("submissions_duplicate_total", "Pick submissions rejected as duplicates.")
	m.picksApplied = factory("picks_applied_total", "Picks validated and written to the store.")
	m.picksRejected = factory("picks_rejected_total", "Pick submissions dropped during validation.")
	m.leaderboardBuilds = factory("leaderboard_builds_total", "Full leaderboard recomputations.")
	m.feedRefreshes = factory("feed_refreshes_total", "Successful game feed refreshes.")
	m.feedErrors = factory("feed_errors_total", "Failed game feed refreshes.")

	m.gamesTracked = gauge("games_tracked", "Games in the current feed snapshot.")
	m.queueSize = gauge("queue_size", "Submissions waiting in the queue.")
	m.queueCapacity = gauge("queue_capacity", "Configured submission queue capacity.")
	m.workerCount = gauge("worker_count", "Running submission workers.")
	m.totalPlayers = gauge("total_players", "Players on the current leaderboard.")

	m.leaderboardBuildTime = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "leaderboard_build_duration_ms", Help: "Leaderboard rebuild duration in milliseconds.",
		Buckets: m.histogramBuckets,
	})
	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total", Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_request_duration_ms", Help: "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	m.registry.MustRegister(m.leaderboardBuildTime, m.httpRequests, m.httpRequestDuration)
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level recording helpers delegating to the global manager.

func RecordSubmissionAccepted() {
	if globalManager.enabled {
		globalManager.submissionsAccepted.Inc()
	}
}

func RecordSubmissionDuplicate() {
	if globalManager.enabled {
		globalManager.submissionsDuplicate.Inc()
	}
}

func RecordPickApplied() {
	if globalManager.enabled {
		globalManager.picksApplied.Inc()
	}
}

func RecordPickRejected() {
	if globalManager.enabled {
		globalManager.picksRejected.Inc()
	}
}

func RecordLeaderboardBuild(durationMs float64) {
	if globalManager.enabled {
		globalManager.leaderboardBuilds.Inc()
		globalManager.leaderboardBuildTime.Observe(durationMs)
	}
}

func RecordFeedRefresh() {
	if globalManager.enabled {
		globalManager.feedRefreshes.Inc()
	}
}

func RecordFeedError() {
	if globalManager.enabled {
		globalManager.feedErrors.Inc()
	}
}

func UpdateGamesTracked(n int) {
	if globalManager.enabled {
		globalManager.gamesTracked.Set(float64(n))
	}
}

func UpdateQueueSize(n int) {
	if globalManager.enabled {
		globalManager.queueSize.Set(float64(n))
	}
}

func UpdateQueueCapacity(n int) {
	if globalManager.enabled {
		globalManager.queueCapacity.Set(float64(n))
	}
}

func UpdateWorkerCount(n int) {
	if globalManager.enabled {
		globalManager.workerCount.Set(float64(n))
	}
}

func UpdateTotalPlayers(n int) {
	if globalManager.enabled {
		globalManager.totalPlayers.Set(float64(n))
	}
}

func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

func RecordHTTPRequestDuration(endpoint, method, status string, durationMs float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(durationMs)
	}
}
