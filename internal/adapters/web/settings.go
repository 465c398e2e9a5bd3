package web

import (
	"encoding/json"
	"net/http"

	"ibms-backend/internal/core"
)

type settingsPayload struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

func toSettingsPayload(s *core.NotificationSetting) settingsPayload {
	return settingsPayload{Email: s.Email, PhoneNumber: s.PhoneNumber}
}

// getSettings handles GET /api/inventory/notification-setting/.
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	set, err := h.settings.Get(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsPayload(set))
}

// updateSettings handles POST /api/inventory/notification-setting/.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	set, err := h.settings.Update(r.Context(), req.Email, req.PhoneNumber)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsPayload(set))
}
