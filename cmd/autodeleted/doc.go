// Package main provides the entry point for the autodelete service.
//
// The service receives play-start and play-stop notifications from a media
// host over HTTP. When a play ends after more than the configured share of
// the file's duration, and the file lies in an allowed folder, the file is
// moved to the trash or deleted permanently.
//
// # Application Lifecycle
//
//  1. Configuration Loading: Reads environment variables and validates DATA_DIR
//  2. Database Initialization: Opens the SQLite settings database in WAL mode
//  3. Settings: Loads stored settings over the AUTODELETE_* defaults
//  4. Component Initialization:
//     - Filesystem: Trash directory, volume labels and NFS stale handle retries
//     - Engine and Listener: Session tracking and the deletion policy
//     - Metrics Collector: Samples pending sessions and database size
//  5. HTTP Server Setup: Configures routes and middleware, starts the servers
//  6. Graceful Shutdown: Handles SIGINT/SIGTERM
//
// # HTTP Server
//
// The application runs two HTTP servers:
//
//  1. Main Server (default port 8080):
//     - POST /api/playback/start and /api/playback/stop
//     - GET /api/playback/sessions
//     - GET and PUT /api/settings
//     - /health, /healthz, /livez, /readyz and /version
//
//  2. Metrics Server (default port 9090, optional):
//     - Prometheus metrics endpoint (/metrics)
//     - Health check endpoint (/health)
//
// # Environment Variables
//
//   - DATA_DIR: Directory for the SQLite database (default: /data)
//   - PORT: Main HTTP server port (default: 8080)
//   - METRICS_PORT: Metrics server port (default: 9090)
//   - METRICS_ENABLED: Enable metrics server (default: true)
//   - LOG_HEALTH_CHECKS: Log requests to health endpoints (default: true)
//   - LOG_LEVEL: Logging level (debug/info/warn/error)
//   - TRASH_DIR: Trash directory (default: $XDG_DATA_HOME/Trash)
//   - MEDIA_VOLUMES: Volume labels for metrics, as name=/path,name=/path
//   - DELETE_MAX_ATTEMPTS: Deletion attempts per file (default: 10)
//   - DELETE_RETRY_INTERVAL: Wait between attempts (default: 1s)
//   - AUTODELETE_PERCENT, AUTODELETE_FOLDERS, AUTODELETE_RECYCLE,
//     AUTODELETE_VIDEO, AUTODELETE_AUDIO, AUTODELETE_IMAGE: settings defaults
//
// # Graceful Shutdown
//
//  1. Cancel deletions that are still retrying
//  2. Stop accepting new HTTP requests (30s timeout)
//  3. Stop metrics collector and metrics server
//  4. Discard pending playback sessions
//  5. Close the database
//
// # Build Requirements
//
// CGO is required for SQLite:
//
//	go build -o autodeleted ./cmd/autodeleted
package main
