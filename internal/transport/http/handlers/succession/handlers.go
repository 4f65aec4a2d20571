package successionhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/succession"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *succession.Service
}

func NewHandler(service *succession.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/succession", func(r chi.Router) {
		r.Use(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR))
		r.Post("/plans", h.handleCreate)
		r.Get("/plans", h.handleList)
		r.Put("/plans/{planID}/readiness", h.handleReadiness)
		r.Delete("/plans/{planID}", h.handleDelete)
		r.Get("/stats", h.handleStats)
	})
}

type planRequest struct {
	KeyPosition string `json:"keyPosition"`
	IncumbentID string `json:"incumbentId"`
	CandidateID string `json:"candidateId"`
	Readiness   string `json:"readiness"`
	Notes       string `json:"notes"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload planRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("keyPosition", payload.KeyPosition, "key position is required")
	v.Required("candidateId", payload.CandidateID, "candidate id is required")
	v.Required("readiness", payload.Readiness, "readiness level is required")
	if v.Reject(w, reqID) {
		return
	}

	plan, err := h.Service.Create(r.Context(), payload.KeyPosition, payload.IncumbentID, payload.CandidateID, payload.Readiness, payload.Notes)
	if errors.Is(err, succession.ErrBadReadiness) {
		api.Fail(w, http.StatusBadRequest, "invalid_readiness", "unknown readiness level", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_create_failed", "failed to create succession plan", reqID)
		return
	}
	api.Created(w, plan, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	plans, err := h.Service.List(r.Context(), r.URL.Query().Get("keyPosition"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_list_failed", "failed to list succession plans", reqID)
		return
	}
	api.Success(w, plans, reqID)
}

type readinessRequest struct {
	Readiness string `json:"readiness"`
	Notes     string `json:"notes"`
}

func (h *Handler) handleReadiness(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload readinessRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	plan, err := h.Service.UpdateReadiness(r.Context(), chi.URLParam(r, "planID"), payload.Readiness, payload.Notes)
	if errors.Is(err, succession.ErrBadReadiness) {
		api.Fail(w, http.StatusBadRequest, "invalid_readiness", "unknown readiness level", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusNotFound, "plan_not_found", "succession plan not found", reqID)
		return
	}
	api.Success(w, plan, reqID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), chi.URLParam(r, "planID")); err != nil {
		api.Fail(w, http.StatusInternalServerError, "plan_delete_failed", "failed to delete succession plan", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "deleted"}, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "succession_stats_failed", "failed to compute succession stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}
