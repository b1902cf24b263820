package handlers

import (
	"context"
	"time"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/playback"
	"autodelete-after-play/internal/settings"
)

// PlaybackService receives playback notifications.
type PlaybackService interface {
	OnPlaybackStarted(n autodelete.Notification) bool
	OnPlaybackStopped(ctx context.Context, n autodelete.Notification) autodelete.StopResult
	PendingSessions() []playback.Session
	TrashSupported() bool
}

// SettingsService reads and persists the settings.
type SettingsService interface {
	Get() settings.Settings
	Update(ctx context.Context, change func(*settings.Settings) error) (settings.Settings, error)
}

// Pinger reports whether the settings database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handlers struct {
	playback  PlaybackService
	settings  SettingsService
	db        Pinger
	baseCtx   context.Context
	startTime time.Time
}

// Option configures Handlers.
type Option func(*Handlers)

// WithBaseContext sets the context deletions run under. Cancelling it
// stops any retry loop in progress.
func WithBaseContext(ctx context.Context) Option {
	return func(h *Handlers) { h.baseCtx = ctx }
}

func New(pb PlaybackService, st SettingsService, db Pinger, opts ...Option) *Handlers {
	h := &Handlers{
		playback:  pb,
		settings:  st,
		db:        db,
		baseCtx:   context.Background(),
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
