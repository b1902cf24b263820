package autodelete

import (
	"context"
	"path/filepath"
	"time"

	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/mediatypes"
	"autodelete-after-play/internal/playback"
)

// ConfigProvider exposes the current settings to the listener.
type ConfigProvider interface {
	Policy() PolicyConfig
	MediaFlags() mediatypes.Flags
}

// Notification is a play-start or play-stop event from the host.
type Notification struct {
	ResourceID      string
	MediaType       string
	Path            string
	DurationSeconds int64
	// At is when the event happened. Zero means now.
	At time.Time
}

// StopResult describes what a stop notification led to.
type StopResult struct {
	Ignored        bool    `json:"ignored"`
	Matched        bool    `json:"matched"`
	ElapsedSeconds int64   `json:"elapsedSeconds"`
	Outcome        Outcome `json:"outcome"`
}

// Listener receives the host's playback notifications. It filters by media
// type, keeps the session tracker and runs the engine when a play ends.
type Listener struct {
	tracker  *playback.Tracker
	engine   *Engine
	config   ConfigProvider
	log      logging.Sink
	observer Observer
	now      func() time.Time
}

// ListenerOption configures a Listener.
type ListenerOption func(*Listener)

// WithListenerLogger sets the logging sink.
func WithListenerLogger(l logging.Sink) ListenerOption {
	return func(li *Listener) { li.log = l }
}

// WithListenerObserver sets the metrics observer.
func WithListenerObserver(o Observer) ListenerOption {
	return func(li *Listener) { li.observer = o }
}

// WithClock overrides the time source used for zero Notification.At values.
func WithClock(now func() time.Time) ListenerOption {
	return func(li *Listener) { li.now = now }
}

// NewListener wires a tracker, an engine and a settings provider together.
func NewListener(tracker *playback.Tracker, engine *Engine, config ConfigProvider, opts ...ListenerOption) *Listener {
	l := &Listener{
		tracker:  tracker,
		engine:   engine,
		config:   config,
		log:      logging.For("listener"),
		observer: nopObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Listener) timestamp(n Notification) time.Time {
	if n.At.IsZero() {
		return l.now()
	}
	return n.At
}

// OnPlaybackStarted records a session start. It returns false when the
// media type is disabled and the play is not tracked.
func (l *Listener) OnPlaybackStarted(n Notification) bool {
	mt := mediatypes.Resolve(n.MediaType, n.Path)
	if !l.config.MediaFlags().Allows(mt) {
		l.observer.ObserveIgnored(string(mt), "start")
		return false
	}

	l.log.Debug("Started playing %s (%s)", n.ResourceID, describe(n))
	l.tracker.RecordStart(n.ResourceID, l.timestamp(n))
	l.observer.ObserveStart(string(mt))
	l.observer.ObservePending(l.tracker.Len())
	return true
}

// OnPlaybackStopped consumes the matching session and applies the deletion
// policy. Nothing it does is reported back as an error; failures are
// logged and visible in the returned Outcome.
func (l *Listener) OnPlaybackStopped(ctx context.Context, n Notification) StopResult {
	mt := mediatypes.Resolve(n.MediaType, n.Path)
	if !l.config.MediaFlags().Allows(mt) {
		l.observer.ObserveIgnored(string(mt), "stop")
		return StopResult{Ignored: true}
	}

	l.log.Debug("Done playing %s (%s)", n.ResourceID, describe(n))

	elapsed, ok := l.tracker.ConsumeMatchingSession(n.ResourceID, l.timestamp(n))
	l.observer.ObserveStop(ok, elapsed)
	l.observer.ObservePending(l.tracker.Len())

	result := StopResult{Matched: ok, ElapsedSeconds: elapsed}
	if !ok {
		l.log.Debug("No pending session for %s, nothing to delete", n.ResourceID)
		result.Outcome = Outcome{Reason: ReasonNotPlayed}
		return result
	}

	if n.Path == "" || !filepath.IsAbs(n.Path) {
		l.log.Debug("Resource %s isn't a real file and can't be deleted", n.ResourceID)
		l.observer.ObserveDecision(string(ReasonNotAFile))
		result.Outcome = Outcome{Reason: ReasonNotAFile, ElapsedSeconds: elapsed}
		return result
	}

	policy := l.config.Policy()
	l.log.Debug("Stopped playing file '%s' after %d seconds. Min play length for deleting is %d seconds (%d%% of %d seconds)",
		n.Path, elapsed, MinRequiredSeconds(n.DurationSeconds, policy.MinPlayedPercent), policy.MinPlayedPercent, n.DurationSeconds)

	result.Outcome = l.engine.EvaluateAndApply(ctx, n.Path, elapsed, n.DurationSeconds, policy)
	return result
}

// PendingSessions returns a snapshot of the tracked sessions.
func (l *Listener) PendingSessions() []playback.Session {
	return l.tracker.Pending()
}

// TrashSupported reports whether deletions can go to the trash.
func (l *Listener) TrashSupported() bool {
	return l.engine.TrashSupported()
}

// Shutdown drops all pending sessions.
func (l *Listener) Shutdown() {
	l.tracker.Clear()
	l.observer.ObservePending(0)
}

func describe(n Notification) string {
	if n.Path != "" {
		return n.Path
	}
	return "no file"
}
