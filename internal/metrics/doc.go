// Package metrics provides Prometheus instrumentation for the autodelete
// service. All metrics are prefixed with "autodelete_".
//
// # Metric Categories
//
// ## HTTP Metrics
//
//   - HTTPRequestsTotal: requests by method, path and status
//   - HTTPRequestDuration: request latency by method and path
//   - HTTPRequestsInFlight: requests currently being served
//
// ## Playback Metrics
//
//   - PlaybackStartsTotal: tracked starts by media type
//   - PlaybackStopsTotal: stops by whether a session matched
//   - PlaybackIgnoredTotal: notifications dropped by the media type gate
//   - PlaybackSessionsPending: sessions waiting for their stop
//   - PlaybackPlayedSeconds: elapsed play time of matched sessions
//
// ## Deletion Metrics
//
//   - DeletionDecisionsTotal: evaluations by outcome (deleted, failed,
//     not_played, under_played, folder_not_allowed, not_a_file)
//   - DeletionAttemptsTotal, DeletionSuccessTotal, DeletionFailuresTotal:
//     per method ("trash" or "permanent")
//   - DeletionDuration: time spent in the retry loop, waits included
//
// ## Filesystem and Database Metrics
//
//   - FilesystemOperationDuration, FilesystemOperationErrors and
//     FilesystemStaleErrors by volume and operation
//   - DBQueryTotal, DBQueryDuration, DBSizeBytes
//   - SettingsLoadErrors, TrashSupported
//
// # Observers
//
// The autodelete and filesystem packages define Observer interfaces so that
// they do not depend on Prometheus. [NewAutodeleteObserver] and
// [NewFilesystemObserver] return the implementations backed by this package.
//
// # Initialization
//
// Metrics register themselves through promauto. Call [InitializeMetrics] at
// startup so labelled series exist before the first event.
package metrics
