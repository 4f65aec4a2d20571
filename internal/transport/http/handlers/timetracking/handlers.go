package timetrackinghandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/timetracking"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *timetracking.Service
}

func NewHandler(service *timetracking.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/time-entries", func(r chi.Router) {
		r.With(middleware.RequireRole()).Post("/start", h.handleStart)
		r.With(middleware.RequireRole()).Post("/stop", h.handleStop)
		r.With(middleware.RequireRole()).Post("/{entryID}/pause", h.handlePause)
		r.With(middleware.RequireRole()).Post("/{entryID}/resume", h.handleResume)
		r.With(middleware.RequireRole()).Get("/active", h.handleActive)
		r.With(middleware.RequireRole()).Get("/", h.handleList)
	})
}

type startRequest struct {
	ProjectID string `json:"projectId"`
	TaskID    string `json:"taskId"`
}

func (h *Handler) handleStart(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	var payload startRequest
	if r.Body != nil {
		// body is optional; a bare start is a valid entry
		_ = json.NewDecoder(r.Body).Decode(&payload)
	}

	entry, err := h.Service.Start(r.Context(), user.EmployeeID, payload.ProjectID, payload.TaskID, time.Now().UTC())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "time_entry_start_failed", "failed to start time entry", reqID)
		return
	}
	api.Created(w, entry, reqID)
}

func (h *Handler) handleStop(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	entries, err := h.Service.Stop(r.Context(), user.EmployeeID, time.Now().UTC())
	if errors.Is(err, timetracking.ErrNoActiveEntry) {
		api.Fail(w, http.StatusConflict, "no_active_entry", "no open time entry to stop", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "time_entry_stop_failed", "failed to stop time entry", reqID)
		return
	}
	api.Success(w, entries, reqID)
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Pause)
}

func (h *Handler) handleResume(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.Service.Resume)
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, fn func(context.Context, string) error) {
	reqID := middleware.GetRequestID(r.Context())
	entryID := chi.URLParam(r, "entryID")

	err := fn(r.Context(), entryID)
	if errors.Is(err, timetracking.ErrInvalidState) {
		api.Fail(w, http.StatusConflict, "invalid_state", "entry is not in a state that allows this transition", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "time_entry_update_failed", "failed to update time entry", reqID)
		return
	}
	api.Success(w, map[string]string{"id": entryID}, reqID)
}

func (h *Handler) handleActive(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	entry, err := h.Service.Active(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "time_entry_query_failed", "failed to query active entry", reqID)
		return
	}
	api.Success(w, entry, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	entries, err := h.Service.List(r.Context(), user.EmployeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "time_entry_list_failed", "failed to list time entries", reqID)
		return
	}
	api.Success(w, entries, reqID)
}
