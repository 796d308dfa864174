// Package metrics provides Prometheus metrics for the gridiron simulator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every simulator metric.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Simulation
	gamesSimulated prometheus.Counter
	gameErrors     *prometheus.CounterVec
	gameLatency    prometheus.Histogram
	playsPerGame   prometheus.Histogram
	pointsPerGame  prometheus.Histogram
	overtimeGames  prometheus.Counter
	seasons        prometheus.Counter
	seasonLatency  prometheus.Histogram

	// Calibration
	calibrationObserved  *prometheus.GaugeVec
	calibrationOutOfBand *prometheus.GaugeVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerActive prometheus.Gauge

	// Storage
	standingsTeams prometheus.Gauge
	storeLatency   *prometheus.HistogramVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	errorsByComponent *prometheus.CounterVec
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gridiron",
		subsystem:        "sim",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.gamesSimulated = m.counter("games_simulated_total", "Total number of games simulated")
	m.gameErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "game_errors_total",
		Help: "Games that failed, by error kind",
	}, []string{"kind"})
	m.gameLatency = m.histogram("game_duration_milliseconds", "Wall time to simulate one game in milliseconds",
		[]float64{1, 2, 5, 10, 25, 50, 100, 250, 500})
	m.playsPerGame = m.histogram("plays_per_game", "Scrimmage snaps per game",
		prometheus.LinearBuckets(100, 10, 10))
	m.pointsPerGame = m.histogram("points_per_game", "Combined final score per game",
		prometheus.LinearBuckets(10, 10, 8))
	m.overtimeGames = m.counter("overtime_games_total", "Games that went to overtime")
	m.seasons = m.counter("seasons_completed_total", "Seasons simulated to completion")
	m.seasonLatency = m.histogram("season_duration_seconds", "Wall time to simulate a season in seconds",
		m.histogramBuckets)

	m.calibrationObserved = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "calibration_observed",
		Help: "Last observed league value per calibrated metric",
	}, []string{"metric"})
	m.calibrationOutOfBand = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "calibration_out_of_band",
		Help: "1 when the metric missed its realism band in the last run",
	}, []string{"metric"})

	m.queueSize = m.gauge("queue_size", "Games waiting in the job queue")
	m.queueCapacity = m.gauge("queue_capacity", "Job queue capacity")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Jobs handed to workers")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Jobs rejected by the queue")

	m.workerActive = m.gauge("worker_active_count", "Workers currently running")

	m.standingsTeams = m.gauge("standings_teams", "Teams in the standings table")
	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "store_latency_milliseconds",
		Help:    "Result store operation latency in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"op"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "http_requests_total",
		Help: "HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name:    "http_request_duration_milliseconds",
		Help:    "HTTP request duration in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: m.constLabels,
		Name: "errors_total",
		Help: "Errors by component and type",
	}, []string{"component", "type"})
}

// RecordGame records one finished game.
func (m *Manager) RecordGame(plays, points int, overtime bool, latencyMs float64) {
	m.gamesSimulated.Inc()
	m.playsPerGame.Observe(float64(plays))
	m.pointsPerGame.Observe(float64(points))
	m.gameLatency.Observe(latencyMs)
	if overtime {
		m.overtimeGames.Inc()
	}
}

// RecordGameError counts a failed game by kind.
func (m *Manager) RecordGameError(kind string) {
	m.gameErrors.WithLabelValues(kind).Inc()
}

// RecordSeason records a completed season.
func (m *Manager) RecordSeason(seconds float64) {
	m.seasons.Inc()
	m.seasonLatency.Observe(seconds)
}

// UpdateCalibration sets the observed value and band flag for a metric.
func (m *Manager) UpdateCalibration(metric string, observed float64, inBand bool) {
	m.calibrationObserved.WithLabelValues(metric).Set(observed)
	flag := 0.0
	if !inBand {
		flag = 1
	}
	m.calibrationOutOfBand.WithLabelValues(metric).Set(flag)
}

// RecordGame records one finished game.
func RecordGame(plays, points int, overtime bool, latencyMs float64) {
	globalManager.RecordGame(plays, points, overtime, latencyMs)
}

// RecordGameError counts a failed game by kind.
func RecordGameError(kind string) {
	globalManager.RecordGameError(kind)
}

// RecordSeason records a completed season.
func RecordSeason(seconds float64) {
	globalManager.RecordSeason(seconds)
}

// UpdateCalibration sets the observed value and band flag for a metric.
func UpdateCalibration(metric string, observed float64, inBand bool) {
	globalManager.UpdateCalibration(metric, observed, inBand)
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerActiveCount sets the number of running workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// UpdateStandingsTeams sets the size of the standings table.
func UpdateStandingsTeams(count int) {
	globalManager.standingsTeams.Set(float64(count))
}

// RecordStoreLatency records a result store operation.
func RecordStoreLatency(op string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the registry the global manager writes to.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
