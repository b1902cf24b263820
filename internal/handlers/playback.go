package handlers

import (
	"net/http"
	"strings"
	"time"

	"autodelete-after-play/internal/autodelete"
	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/middleware"
	"autodelete-after-play/internal/playback"
)

// PlaybackRequest is the body of a play-start or play-stop notification.
type PlaybackRequest struct {
	ResourceID      string    `json:"resourceId"`
	MediaType       string    `json:"mediaType,omitempty"`
	Path            string    `json:"path,omitempty"`
	DurationSeconds int64     `json:"durationSeconds,omitempty"`
	Timestamp       time.Time `json:"timestamp,omitempty"`
}

func (p PlaybackRequest) notification() autodelete.Notification {
	return autodelete.Notification{
		ResourceID:      p.ResourceID,
		MediaType:       p.MediaType,
		Path:            p.Path,
		DurationSeconds: p.DurationSeconds,
		At:              p.Timestamp,
	}
}

// StartResponse reports whether a start was tracked.
type StartResponse struct {
	Tracked bool `json:"tracked"`
}

// StopResponse flattens autodelete.StopResult for API clients.
type StopResponse struct {
	Ignored            bool              `json:"ignored"`
	Matched            bool              `json:"matched"`
	ElapsedSeconds     int64             `json:"elapsedSeconds"`
	MinRequiredSeconds int64             `json:"minRequiredSeconds"`
	WillDelete         bool              `json:"willDelete"`
	UsedRecycle        bool              `json:"usedRecycle"`
	Succeeded          bool              `json:"succeeded"`
	Attempts           int               `json:"attempts"`
	Reason             autodelete.Reason `json:"reason,omitempty"`
	Error              string            `json:"error,omitempty"`
}

func newStopResponse(res autodelete.StopResult) StopResponse {
	out := res.Outcome
	resp := StopResponse{
		Ignored:            res.Ignored,
		Matched:            res.Matched,
		ElapsedSeconds:     res.ElapsedSeconds,
		MinRequiredSeconds: out.MinRequiredSeconds,
		WillDelete:         out.WillDelete,
		UsedRecycle:        out.UsedRecycle,
		Succeeded:          out.Succeeded,
		Attempts:           out.Attempts,
		Reason:             out.Reason,
	}
	if out.LastError != nil {
		resp.Error = out.LastError.Error()
	}
	return resp
}

// SessionsResponse lists the pending playback sessions.
type SessionsResponse struct {
	Count    int                `json:"count"`
	Sessions []playback.Session `json:"sessions"`
}

func readPlaybackRequest(w http.ResponseWriter, r *http.Request) (PlaybackRequest, bool) {
	var req PlaybackRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return req, false
	}
	req.ResourceID = strings.TrimSpace(req.ResourceID)
	if req.ResourceID == "" {
		writeJSONError(w, "resourceId is required", http.StatusBadRequest)
		return req, false
	}
	if req.DurationSeconds < 0 {
		writeJSONError(w, "durationSeconds must not be negative", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// PlaybackStarted records a play-start notification.
func (h *Handlers) PlaybackStarted(w http.ResponseWriter, r *http.Request) {
	req, ok := readPlaybackRequest(w, r)
	if !ok {
		return
	}

	tracked := h.playback.OnPlaybackStarted(req.notification())
	writeJSONResponse(w, http.StatusAccepted, StartResponse{Tracked: tracked})
}

// PlaybackStopped consumes the matching session and applies the deletion
// policy before responding. Deletion runs under the base context rather
// than the request's.
func (h *Handlers) PlaybackStopped(w http.ResponseWriter, r *http.Request) {
	req, ok := readPlaybackRequest(w, r)
	if !ok {
		return
	}

	res := h.playback.OnPlaybackStopped(h.baseCtx, req.notification())
	if res.Outcome.WillDelete && !res.Outcome.Succeeded {
		logging.Debug("Stop %s for %s did not remove the file [request %s]",
			req.ResourceID, req.Path, middleware.RequestIDFromContext(r.Context()))
	}
	writeJSONResponse(w, http.StatusOK, newStopResponse(res))
}

// ListSessions returns the sessions still waiting for a stop.
func (h *Handlers) ListSessions(w http.ResponseWriter, _ *http.Request) {
	sessions := h.playback.PendingSessions()
	if sessions == nil {
		sessions = []playback.Session{}
	}
	writeJSONResponse(w, http.StatusOK, SessionsResponse{Count: len(sessions), Sessions: sessions})
}
