package performancehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/performance"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *performance.Service
}

func NewHandler(service *performance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/performance/goals", func(r chi.Router) {
		r.With(middleware.RequireRole()).Post("/", h.handleCreate)
		r.With(middleware.RequireRole()).Get("/", h.handleList)
		r.With(middleware.RequireRole()).Get("/{goalID}", h.handleGet)
		r.With(middleware.RequireRole()).Put("/{goalID}/progress", h.handleProgress)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Get("/stats", h.handleStats)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload performance.Goal
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if payload.EmployeeID == "" {
		payload.EmployeeID = user.EmployeeID
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Required("category", payload.Category, "category is required")
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	if v.Reject(w, reqID) {
		return
	}

	goal, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_create_failed", "failed to create goal", reqID)
		return
	}
	api.Created(w, goal, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employeeID := user.EmployeeID
	if requested := r.URL.Query().Get("employeeId"); requested != "" {
		if user.Role == auth.RoleAdmin || user.Role == auth.RoleHR || user.Role == auth.RoleManager {
			employeeID = requested
		}
	}

	goals, err := h.Service.ListByEmployee(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_list_failed", "failed to list goals", reqID)
		return
	}
	api.Success(w, goals, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	goal, err := h.Service.Get(r.Context(), chi.URLParam(r, "goalID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", reqID)
		return
	}
	api.Success(w, goal, reqID)
}

type progressRequest struct {
	Progress int `json:"progress"`
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload progressRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	goal, err := h.Service.UpdateProgress(r.Context(), chi.URLParam(r, "goalID"), payload.Progress)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "goal_not_found", "goal not found", reqID)
		return
	}
	api.Success(w, goal, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "goal_stats_failed", "failed to compute goal stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}
