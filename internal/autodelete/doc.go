// Package autodelete decides whether a file should be removed once its
// playback has finished, and removes it.
//
// # Policy
//
// A finished play leads to a deletion when all of the following hold:
//
//   - a pending session matched the stop, giving a positive elapsed time
//   - elapsed seconds exceed floor(duration * MinPlayedPercent / 100)
//   - the path starts with one of AllowedFolderPaths, or the list is empty
//
// Prefix matching is a plain, case-sensitive string comparison after
// trimming whitespace; it is not aware of path boundaries. [Decide] applies
// these rules without touching the filesystem.
//
// # Deletion
//
// [Engine.EvaluateAndApply] moves the file to the trash when RecycleEnabled
// is set and the [Remover] supports it, and removes it permanently
// otherwise. A failing operation is retried up to 10 times, 1000ms apart.
// Errors are not classified and never propagate; the last one is returned
// in [Outcome.LastError] and logged as a warning.
//
// # Notifications
//
// [Listener] is the entry point for the host. It drops notifications for
// media types disabled in the settings, records starts in a
// playback.Tracker and, on stop, feeds the elapsed time to the engine. The
// delete loop runs outside the tracker's lock.
package autodelete
