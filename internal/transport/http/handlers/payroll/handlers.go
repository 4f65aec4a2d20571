package payrollhandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/payroll"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *payroll.Service
}

func NewHandler(service *payroll.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/salaries", h.handleSetSalary)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/salaries/{employeeID}", h.handleGetSalary)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/runs", h.handleRun)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/runs", h.handleListRuns)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/runs/{runID}/finalize", h.handleFinalize)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/runs/{runID}/payslips", h.handlePayslips)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/stats", h.handleStats)
	})
}

type salaryRequest struct {
	EmployeeID string  `json:"employeeId"`
	BaseSalary float64 `json:"baseSalary"`
	Currency   string  `json:"currency"`
}

func (h *Handler) handleSetSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload salaryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	v.Range("baseSalary", payload.BaseSalary, 0.01, 10_000_000, "base salary must be positive")
	if v.Reject(w, reqID) {
		return
	}

	rec, err := h.Service.SetSalary(r.Context(), payload.EmployeeID, payload.BaseSalary, payload.Currency)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_set_failed", "failed to set salary", reqID)
		return
	}
	api.Created(w, rec, reqID)
}

func (h *Handler) handleGetSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	rec, err := h.Service.CurrentSalary(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, payroll.ErrNoSalary) {
		api.Fail(w, http.StatusNotFound, "salary_not_found", "employee has no salary record", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "salary_query_failed", "failed to query salary", reqID)
		return
	}
	api.Success(w, rec, reqID)
}

type runRequest struct {
	Month string `json:"month"`
}

func (h *Handler) handleRun(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload runRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	if _, err := time.Parse("2006-01", payload.Month); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", reqID)
		return
	}

	run, payslips, err := h.Service.RunMonth(r.Context(), payload.Month)
	if errors.Is(err, payroll.ErrRunExists) {
		api.Fail(w, http.StatusConflict, "run_exists", "a run already exists for this month", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_run_failed", "failed to run payroll", reqID)
		return
	}
	api.Created(w, map[string]any{"run": run, "payslips": payslips}, reqID)
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	runs, err := h.Service.ListRuns(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_runs_failed", "failed to list payroll runs", reqID)
		return
	}
	api.Success(w, runs, reqID)
}

func (h *Handler) handleFinalize(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	err := h.Service.FinalizeRun(r.Context(), chi.URLParam(r, "runID"))
	if errors.Is(err, payroll.ErrRunFinalized) {
		api.Fail(w, http.StatusConflict, "already_finalized", "run is already finalized", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_finalize_failed", "failed to finalize run", reqID)
		return
	}
	api.Success(w, map[string]string{"status": payroll.RunStatusFinalized}, reqID)
}

func (h *Handler) handlePayslips(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	payslips, err := h.Service.Payslips(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payslip_list_failed", "failed to list payslips", reqID)
		return
	}
	api.Success(w, payslips, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "payroll_stats_failed", "failed to compute payroll stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}
