package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/startup"
)

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

// readyTimeout bounds the database ping made by health probes.
const readyTimeout = 2 * time.Second

// HealthResponse contains the health check response
type HealthResponse struct {
	Status          string `json:"status"`
	Ready           bool   `json:"ready"`
	Version         string `json:"version"`
	Uptime          string `json:"uptime"`
	DatabaseError   string `json:"databaseError,omitempty"`
	PendingSessions int    `json:"pendingSessions"`
	TrashSupported  bool   `json:"trashSupported"`

	// System info
	GoVersion    string `json:"goVersion"`
	NumCPU       int    `json:"numCpu"`
	NumGoroutine int    `json:"numGoroutine"`
}

func (h *Handlers) pingDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()
	return h.db.Ping(ctx)
}

// HealthCheck returns the health status of the service
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := HealthResponse{
		Status:          statusHealthy,
		Ready:           true,
		Version:         startup.Version,
		Uptime:          time.Since(h.startTime).Round(time.Second).String(),
		PendingSessions: len(h.playback.PendingSessions()),
		TrashSupported:  h.playback.TrashSupported(),
		GoVersion:       runtime.Version(),
		NumCPU:          runtime.NumCPU(),
		NumGoroutine:    runtime.NumGoroutine(),
	}

	status := http.StatusOK
	if err := h.pingDatabase(r.Context()); err != nil {
		logging.Warn("Health check: database unavailable: %v", err)
		response.Status = statusDegraded
		response.Ready = false
		response.DatabaseError = err.Error()
		status = http.StatusServiceUnavailable
	}

	writeJSONResponse(w, status, response)
}

// LivenessCheck is a simple liveness probe (always returns 200 if server is running)
func (h *Handlers) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// For HEAD requests, only send headers (no body)
	if r.Method != http.MethodHead {
		writeJSON(w, map[string]string{
			"status": "alive",
		})
	}
}

// ReadinessCheck returns 200 only when the settings database answers
func (h *Handlers) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.pingDatabase(r.Context()); err != nil {
		writeJSONStatus(w, http.StatusServiceUnavailable, "not_ready")
		return
	}
	writeJSONStatus(w, http.StatusOK, "ready")
}
