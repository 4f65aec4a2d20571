package recruitmenthandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/recruitment"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *recruitment.Service
}

func NewHandler(service *recruitment.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/recruitment", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/postings", h.handleCreatePosting)
		r.With(middleware.RequireRole()).Get("/postings", h.handleListPostings)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/postings/{postingID}/close", h.handleClosePosting)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/postings/{postingID}/applications", h.handleApply)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/postings/{postingID}/applications", h.handleListApplications)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/postings/{postingID}/pipeline", h.handlePipeline)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/applications/{applicationID}/stage", h.handleMoveStage)
	})
}

type postingRequest struct {
	Title        string `json:"title"`
	DepartmentID string `json:"departmentId"`
	Description  string `json:"description"`
}

func (h *Handler) handleCreatePosting(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload postingRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	if v.Reject(w, reqID) {
		return
	}

	posting, err := h.Service.CreatePosting(r.Context(), payload.Title, payload.DepartmentID, payload.Description)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_create_failed", "failed to create posting", reqID)
		return
	}
	api.Created(w, posting, reqID)
}

func (h *Handler) handleListPostings(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	postings, err := h.Service.ListPostings(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_list_failed", "failed to list postings", reqID)
		return
	}
	api.Success(w, postings, reqID)
}

func (h *Handler) handleClosePosting(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	err := h.Service.ClosePosting(r.Context(), chi.URLParam(r, "postingID"))
	if errors.Is(err, recruitment.ErrPostingClosed) {
		api.Fail(w, http.StatusConflict, "posting_closed", "posting is already closed", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "posting_close_failed", "failed to close posting", reqID)
		return
	}
	api.Success(w, map[string]string{"status": recruitment.PostingStatusClosed}, reqID)
}

type applicationRequest struct {
	CandidateName string `json:"candidateName"`
	Email         string `json:"email"`
	Notes         string `json:"notes"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload applicationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("candidateName", payload.CandidateName, "candidate name is required")
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, reqID) {
		return
	}

	app, err := h.Service.Apply(r.Context(), chi.URLParam(r, "postingID"), payload.CandidateName, payload.Email, payload.Notes)
	if errors.Is(err, recruitment.ErrPostingClosed) {
		api.Fail(w, http.StatusConflict, "posting_closed", "posting is not accepting applications", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "application_create_failed", "failed to record application", reqID)
		return
	}
	api.Created(w, app, reqID)
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	apps, err := h.Service.ListApplications(r.Context(), chi.URLParam(r, "postingID"), r.URL.Query().Get("stage"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "application_list_failed", "failed to list applications", reqID)
		return
	}
	api.Success(w, apps, reqID)
}

type stageRequest struct {
	Stage string `json:"stage"`
}

func (h *Handler) handleMoveStage(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload stageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if !recruitment.IsStage(payload.Stage) {
		api.Fail(w, http.StatusBadRequest, "invalid_stage", "unknown pipeline stage", reqID)
		return
	}

	app, err := h.Service.MoveStage(r.Context(), chi.URLParam(r, "applicationID"), payload.Stage)
	if errors.Is(err, recruitment.ErrInvalidMove) {
		api.Fail(w, http.StatusConflict, "invalid_move", "stage transition not allowed", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "stage_move_failed", "failed to move application", reqID)
		return
	}
	api.Success(w, app, reqID)
}

func (h *Handler) handlePipeline(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.PipelineStats(r.Context(), chi.URLParam(r, "postingID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "pipeline_stats_failed", "failed to compute pipeline stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}
