// Package startup handles application initialization, configuration loading,
// and startup/shutdown logging.
//
// # Configuration
//
// All configuration is loaded from environment variables via [LoadConfig]:
//
//   - DATA_DIR: directory holding the settings database (default: /data)
//   - PORT: HTTP server port (default: 8080)
//   - METRICS_PORT: Prometheus metrics server port (default: 9090)
//   - METRICS_ENABLED: enable or disable the metrics server (default: true)
//   - TRASH_DIR: trash directory (default: $XDG_DATA_HOME/Trash or ~/.local/share/Trash)
//   - MEDIA_VOLUMES: "name=/path,..." volume labels for filesystem metrics
//   - DELETE_MAX_ATTEMPTS: delete attempts per file (default: 10)
//   - DELETE_RETRY_INTERVAL: wait between attempts as Go duration (default: 1s)
//   - LOG_LEVEL: debug, info, warn, error (default: info)
//   - LOG_HEALTH_CHECKS: log health check requests (default: true)
//
// AUTODELETE_PERCENT, AUTODELETE_FOLDERS, AUTODELETE_RECYCLE,
// AUTODELETE_VIDEO, AUTODELETE_AUDIO and AUTODELETE_IMAGE override the
// built-in settings defaults. Values saved through the settings API take
// precedence over them.
//
// # Build Information
//
// Build-time variables are injected via ldflags and exposed via [GetBuildInfo].
//
// # Lifecycle Logging
//
//   - [LogDatabaseInit], [LogSettingsLoaded], [LogTrashInit]
//   - [LogHTTPRoutes]: registered HTTP routes (debug level)
//   - [LogServerStarted], [LogShutdownInitiated], [LogShutdownComplete]
package startup
