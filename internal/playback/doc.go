// Package playback tracks in-progress playback sessions reported by the
// media server.
//
// A [Tracker] records a start timestamp per resource when playback begins
// and, when playback stops, consumes the matching session and reports how
// many whole seconds were played. A consumed session can never be matched
// again. All methods are safe for concurrent use; each call holds the
// tracker's lock for its whole duration.
package playback
