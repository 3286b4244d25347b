package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gymkit/gym-api/internal/application/reminder"
	"github.com/gymkit/gym-api/internal/transport/http/middleware"
)

// ReminderHandler triggers expiry reminder sends.
type ReminderHandler struct {
	svc reminder.Service
}

func NewReminderHandler(svc reminder.Service) *ReminderHandler {
	return &ReminderHandler{svc: svc}
}

func (h *ReminderHandler) SendExpiring(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		WindowDays int `json:"window_days"`
	}
	if r.Body != nil {
		// Body is optional; a missing or empty body means the default window.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	result, err := h.svc.SendExpiring(r.Context(), claims.GymID, req.WindowDays)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
