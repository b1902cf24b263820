package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"autodelete-after-play/internal/logging"
	"autodelete-after-play/internal/settings"
)

// SettingsResponse is the settings plus whether the trash can be used.
type SettingsResponse struct {
	settings.Settings
	TrashSupported bool `json:"trashSupported"`
}

// GetSettings returns the current settings.
func (h *Handlers) GetSettings(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, SettingsResponse{
		Settings:       h.settings.Get(),
		TrashSupported: h.playback.TrashSupported(),
	})
}

// UpdateSettings applies the fields present in the body over the current
// settings and persists the result.
func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var bodyErr error
	updated, err := h.settings.Update(r.Context(), func(s *settings.Settings) error {
		if err := json.Unmarshal(body, s); err != nil {
			bodyErr = fmt.Errorf("invalid request body: %w", err)
			return bodyErr
		}
		return nil
	})
	if err != nil {
		if bodyErr != nil || errors.Is(err, settings.ErrInvalid) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		logging.Error("Failed to save settings: %v", err)
		writeJSONError(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusOK, SettingsResponse{
		Settings:       updated,
		TrashSupported: h.playback.TrashSupported(),
	})
}
