package playback

import (
	"sort"
	"sync"
	"time"
)

// Session is an in-progress playback of one resource.
type Session struct {
	ResourceID string    `json:"resourceId"`
	StartTime  time.Time `json:"startTime"`
}

// Tracker keeps the pending playback sessions reported by the host.
//
// Sessions are keyed by resource ID. Each key holds its sessions in arrival
// order so a stop notification consumes the oldest start for that resource
// and leaves every other resource's sessions untouched.
type Tracker struct {
	mu      sync.Mutex
	pending map[string][]Session
	count   int
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		pending: make(map[string][]Session),
	}
}

// RecordStart appends a session for resourceID. Duplicate IDs are allowed.
func (t *Tracker) RecordStart(resourceID string, start time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending[resourceID] = append(t.pending[resourceID], Session{
		ResourceID: resourceID,
		StartTime:  start,
	})
	t.count++
}

// ConsumeMatchingSession removes the oldest pending session for resourceID
// and returns the whole seconds elapsed between its start and stop,
// truncated toward zero. ok is false when no session matches.
func (t *Tracker) ConsumeMatchingSession(resourceID string, stop time.Time) (elapsedSeconds int64, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	sessions := t.pending[resourceID]
	if len(sessions) == 0 {
		return 0, false
	}

	matched := sessions[0]
	if len(sessions) == 1 {
		delete(t.pending, resourceID)
	} else {
		t.pending[resourceID] = sessions[1:]
	}
	t.count--

	return ElapsedSeconds(matched.StartTime, stop), true
}

// Clear drops every pending session.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending = make(map[string][]Session)
	t.count = 0
}

// Len returns the number of pending sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count
}

// Pending returns a copy of all pending sessions ordered by start time.
func (t *Tracker) Pending() []Session {
	t.mu.Lock()
	out := make([]Session, 0, t.count)
	for _, sessions := range t.pending {
		out = append(out, sessions...)
	}
	t.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// ElapsedSeconds returns stop-start in whole seconds, truncated toward zero.
func ElapsedSeconds(start, stop time.Time) int64 {
	return int64(stop.Sub(start) / time.Second)
}
