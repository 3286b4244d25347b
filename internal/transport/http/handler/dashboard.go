package handler

import (
	"net/http"

	"github.com/gymkit/gym-api/internal/application/dashboard"
	"github.com/gymkit/gym-api/internal/transport/http/middleware"
)

// DashboardHandler serves the owner dashboard aggregate.
type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := h.svc.Stats(r.Context(), claims.GymID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
