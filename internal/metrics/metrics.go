package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autodelete_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 15},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "autodelete_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Playback session metrics
var (
	PlaybackStartsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_playback_starts_total",
			Help: "Total number of play-start notifications recorded",
		},
		[]string{"media_type"},
	)

	PlaybackStopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_playback_stops_total",
			Help: "Total number of play-stop notifications by session match result",
		},
		[]string{"result"}, // "matched", "unmatched"
	)

	PlaybackIgnoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_playback_ignored_total",
			Help: "Notifications dropped because their media type is disabled",
		},
		[]string{"media_type", "event"},
	)

	PlaybackSessionsPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "autodelete_playback_sessions_pending",
			Help: "Number of playback sessions waiting for a stop notification",
		},
	)

	PlaybackPlayedSeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "autodelete_playback_played_seconds",
			Help:    "Elapsed play time of matched sessions in seconds",
			Buckets: []float64{10, 60, 300, 900, 1800, 3600, 5400, 7200, 10800},
		},
	)
)

// Deletion decision metrics
var (
	DeletionDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_decisions_total",
			Help: "Policy decisions by result",
		},
		[]string{"decision"},
	)

	DeletionAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_delete_attempts_total",
			Help: "Total number of delete attempts, including retries",
		},
		[]string{"method"}, // "trash", "permanent"
	)

	DeletionSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_delete_success_total",
			Help: "Files removed successfully",
		},
		[]string{"method"},
	)

	DeletionFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_delete_failures_total",
			Help: "Files that could not be removed after all attempts",
		},
		[]string{"method"},
	)

	DeletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autodelete_delete_duration_seconds",
			Help:    "Time from first delete attempt to success or give-up",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 15},
		},
		[]string{"method"},
	)
)

// Filesystem metrics
var (
	FilesystemOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autodelete_filesystem_operation_duration_seconds",
			Help:    "Duration of individual filesystem operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"volume", "operation"},
	)

	FilesystemOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_filesystem_operation_errors_total",
			Help: "Failed filesystem operations",
		},
		[]string{"volume", "operation"},
	)

	FilesystemStaleErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_filesystem_stale_errors_total",
			Help: "NFS stale file handle errors seen during filesystem operations",
		},
		[]string{"volume", "operation"},
	)
)

// Settings store metrics
var (
	DBQueryTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autodelete_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autodelete_db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"operation"},
	)

	SettingsLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "autodelete_settings_load_errors_total",
			Help: "Settings loads that failed and fell back to defaults",
		},
	)

	DBSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "autodelete_db_size_bytes",
			Help: "Size of the settings database file, including WAL",
		},
	)

	TrashSupported = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "autodelete_trash_supported",
			Help: "Whether the trash capability is available (1 = yes, 0 = no)",
		},
	)
)

// Application info
var (
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "autodelete_app_info",
			Help: "Application build information",
		},
		[]string{"version", "commit", "go_version"},
	)
)
