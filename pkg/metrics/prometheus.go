package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds every Prometheus metric of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Engine
	transitions      *prometheus.CounterVec
	pointsCommitted  *prometheus.CounterVec
	placementRejects *prometheus.CounterVec
	undoOperations   prometheus.Counter
	attributionAsked prometheus.Counter
	duplicateCmds    prometheus.Counter
	activeMatches    prometheus.Gauge

	// Persistence
	saveQueueSize prometheus.Gauge
	saveQueueDrop prometheus.Counter
	saves         prometheus.Counter
	saveErrors    prometheus.Counter
	saveLatency   prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	liveSubscribers     prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its metrics.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "courtside",
		subsystem:        "engine",
		histogramBuckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: m.histogramBuckets, ConstLabels: m.constLabels}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.transitions = auto.NewCounterVec(m.counterOpts("transitions_total", "Events handled by the match engine by event and outcome"), []string{"event", "outcome"})
	m.pointsCommitted = auto.NewCounterVec(m.counterOpts("points_committed_total", "Points appended to a point log by sport and category"), []string{"sport", "category"})
	m.placementRejects = auto.NewCounterVec(m.counterOpts("placement_rejections_total", "Court placements rejected by the zone policy"), []string{"sport", "action"})
	m.undoOperations = auto.NewCounter(m.counterOpts("undo_total", "Undo operations applied"))
	m.attributionAsked = auto.NewCounter(m.counterOpts("attribution_prompts_total", "Points that waited for a player attribution"))
	m.duplicateCmds = auto.NewCounter(m.counterOpts("commands_duplicate_total", "Commands dropped because their id was already applied"))
	m.activeMatches = auto.NewGauge(m.gaugeOpts("active_matches", "Matches currently loaded in memory"))

	m.saveQueueSize = auto.NewGauge(m.gaugeOpts("save_queue_size", "Snapshot save jobs waiting in the queue"))
	m.saveQueueDrop = auto.NewCounter(m.counterOpts("save_queue_dropped_total", "Save jobs dropped because the queue was full"))
	m.saves = auto.NewCounter(m.counterOpts("saves_total", "Snapshots written to the store"))
	m.saveErrors = auto.NewCounter(m.counterOpts("save_errors_total", "Snapshot writes that failed"))
	m.saveLatency = auto.NewHistogram(m.histogramOpts("save_latency_milliseconds", "Snapshot write latency in milliseconds"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status code"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"), []string{"endpoint", "method", "status_code"})
	m.liveSubscribers = auto.NewGauge(m.gaugeOpts("live_subscribers", "Open live feed connections"))
}

// RecordTransition counts one engine event by its outcome.
func RecordTransition(event, outcome string) {
	globalManager.transitions.WithLabelValues(event, outcome).Inc()
}

// RecordPointCommitted counts a point appended to a log.
func RecordPointCommitted(sport, category string) {
	globalManager.pointsCommitted.WithLabelValues(sport, category).Inc()
}

// RecordPlacementRejected counts a placement outside the permitted zones.
func RecordPlacementRejected(sport, action string) {
	globalManager.placementRejects.WithLabelValues(sport, action).Inc()
}

// RecordUndo counts an applied undo.
func RecordUndo() { globalManager.undoOperations.Inc() }

// RecordAttributionPrompt counts a point waiting for attribution.
func RecordAttributionPrompt() { globalManager.attributionAsked.Inc() }

// RecordDuplicateCommand counts a command dropped by the dedupe set.
func RecordDuplicateCommand() { globalManager.duplicateCmds.Inc() }

// UpdateActiveMatches sets the number of loaded matches.
func UpdateActiveMatches(count int) { globalManager.activeMatches.Set(float64(count)) }

// UpdateSaveQueueSize sets the number of pending save jobs.
func UpdateSaveQueueSize(size int) { globalManager.saveQueueSize.Set(float64(size)) }

// RecordSaveDropped counts a save job the queue refused.
func RecordSaveDropped() { globalManager.saveQueueDrop.Inc() }

// RecordSave records a successful snapshot write and its latency.
func RecordSave(latencyMs float64) {
	globalManager.saves.Inc()
	globalManager.saveLatency.Observe(latencyMs)
}

// RecordSaveError counts a failed snapshot write.
func RecordSaveError() { globalManager.saveErrors.Inc() }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateLiveSubscribers sets the number of open live connections.
func UpdateLiveSubscribers(count int) { globalManager.liveSubscribers.Set(float64(count)) }

// GetRegistry returns the registry the global metrics live on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
