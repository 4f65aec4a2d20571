package attendancehandler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/attendance"
	"hrms/internal/domain/auth"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequireRole()).Post("/check-in", h.handleCheckIn)
		r.With(middleware.RequireRole()).Post("/check-out", h.handleCheckOut)
		r.With(middleware.RequireRole()).Get("/records", h.handleRecords)
		r.With(middleware.RequireRole()).Get("/summary", h.handleSummary)
	})
}

func (h *Handler) handleCheckIn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	status, err := h.Service.CheckIn(r.Context(), user.EmployeeID, time.Now().UTC())
	if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
		api.Fail(w, http.StatusConflict, "already_checked_in", "already checked in today", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_in_failed", "failed to check in", reqID)
		return
	}
	api.Created(w, map[string]string{"status": status}, reqID)
}

func (h *Handler) handleCheckOut(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	err := h.Service.CheckOut(r.Context(), user.EmployeeID, time.Now().UTC())
	if errors.Is(err, attendance.ErrNotCheckedIn) {
		api.Fail(w, http.StatusConflict, "not_checked_in", "no open check-in today", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "check_out_failed", "failed to check out", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "checked_out"}, reqID)
}

// employeeFor resolves which employee's records to read. HR and admins may
// pass employeeId; everyone else sees their own.
func employeeFor(r *http.Request) (string, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		return "", false
	}
	requested := r.URL.Query().Get("employeeId")
	if requested != "" && requested != user.EmployeeID {
		if user.Role != auth.RoleAdmin && user.Role != auth.RoleHR && user.Role != auth.RoleManager {
			return "", false
		}
		return requested, true
	}
	return user.EmployeeID, user.EmployeeID != ""
}

func (h *Handler) handleRecords(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := employeeFor(r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot read other employees' attendance", reqID)
		return
	}

	month, err := shared.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", reqID)
		return
	}

	records, err := h.Service.MonthRecords(r.Context(), employeeID, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", reqID)
		return
	}
	api.Success(w, records, reqID)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID, ok := employeeFor(r)
	if !ok {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot read other employees' attendance", reqID)
		return
	}

	month, err := shared.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", reqID)
		return
	}

	summary, err := h.Service.MonthSummary(r.Context(), employeeID, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_summary_failed", "failed to summarize attendance", reqID)
		return
	}
	api.Success(w, summary, reqID)
}
