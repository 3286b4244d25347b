package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gymkit/gym-api/internal/application/gym"
	"github.com/gymkit/gym-api/internal/domain"
	"github.com/gymkit/gym-api/internal/pkg/validate"
	"github.com/gymkit/gym-api/internal/transport/http/middleware"
)

// GymHandler handles the caller's gym profile plus platform-admin listing.
type GymHandler struct {
	svc gym.Service
}

func NewGymHandler(svc gym.Service) *GymHandler { return &GymHandler{svc: svc} }

func (h *GymHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	g, err := h.svc.Get(r.Context(), claims.GymID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GymHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req domain.UpdateGymRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	g, err := h.svc.Update(r.Context(), claims.GymID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// List is admin-only; the router guards it with RequireRole.
func (h *GymHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	cursor := r.URL.Query().Get("cursor")
	gyms, next, err := h.svc.List(r.Context(), limit, cursor)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedEnvelope{Data: gyms, NextCursor: next})
}
