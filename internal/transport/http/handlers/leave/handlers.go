package leavehandler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/leave"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
}

func NewHandler(service *leave.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.With(middleware.RequireRole()).Post("/applications", h.handleApply)
		r.With(middleware.RequireRole()).Get("/applications", h.handleList)
		r.With(middleware.RequireRole()).Get("/applications/{applicationID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/applications/{applicationID}/approve", h.handleApprove)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Post("/applications/{applicationID}/reject", h.handleReject)
		r.With(middleware.RequireRole()).Get("/balances", h.handleBalances)
	})
}

type applyRequest struct {
	LeaveType string `json:"leaveType"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	var payload applyRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("leaveType", payload.LeaveType, "leave type is required")
	v.Enum("leaveType", payload.LeaveType, []string{"annual", "sick", "personal", "unpaid"}, "unknown leave type")
	start, _ := v.Date("startDate", payload.StartDate)
	end, _ := v.Date("endDate", payload.EndDate)
	v.DateOrder("startDate", start, "endDate", end)
	if v.Reject(w, reqID) {
		return
	}

	app, err := h.Service.Apply(r.Context(), user.EmployeeID, payload.LeaveType, start, end, payload.Reason)
	if errors.Is(err, leave.ErrInvalidRange) {
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date must not precede start date", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_apply_failed", "failed to submit leave application", reqID)
		return
	}
	api.Created(w, app, reqID)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employeeID := user.EmployeeID
	if user.Role == auth.RoleAdmin || user.Role == auth.RoleHR || user.Role == auth.RoleManager {
		if requested := r.URL.Query().Get("employeeId"); requested != "" {
			employeeID = requested
		} else if r.URL.Query().Get("all") == "true" {
			employeeID = ""
		}
	}

	page := shared.ParsePagination(r, 50, 200)
	apps, err := h.Service.List(r.Context(), employeeID, r.URL.Query().Get("status"), page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_list_failed", "failed to list leave applications", reqID)
		return
	}
	api.Success(w, apps, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	app, err := h.Service.Get(r.Context(), chi.URLParam(r, "applicationID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "leave_not_found", "leave application not found", reqID)
		return
	}
	api.Success(w, app, reqID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Approve)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.Service.Reject)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, applicationID, decidedBy string) (leave.Application, error)) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	app, err := fn(r.Context(), chi.URLParam(r, "applicationID"), user.UserID)
	if errors.Is(err, leave.ErrInvalidState) {
		api.Fail(w, http.StatusConflict, "already_decided", "application is no longer pending", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_decision_failed", "failed to record decision", reqID)
		return
	}
	api.Success(w, app, reqID)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	year := time.Now().UTC().Year()
	if raw := r.URL.Query().Get("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 2000 {
			year = parsed
		}
	}

	balances, err := h.Service.Balances(r.Context(), user.EmployeeID, year)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_balances_failed", "failed to compute balances", reqID)
		return
	}
	api.Success(w, balances, reqID)
}
