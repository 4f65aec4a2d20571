package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/reports"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
}

func NewHandler(service *reports.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.With(middleware.RequireRole()).Get("/attendance/{employeeID}", h.handleAttendance)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Get("/payroll/{runID}", h.handlePayroll)
	})
}

func (h *Handler) handleAttendance(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	employeeID := chi.URLParam(r, "employeeID")
	if employeeID != user.EmployeeID && user.Role != auth.RoleAdmin && user.Role != auth.RoleHR && user.Role != auth.RoleManager {
		api.Fail(w, http.StatusForbidden, "forbidden", "cannot read other employees' reports", reqID)
		return
	}

	month, err := shared.ParseMonth(r.URL.Query().Get("month"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must be YYYY-MM", reqID)
		return
	}

	pdf, err := h.Service.AttendancePDF(r.Context(), employeeID, month)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render attendance report", reqID)
		return
	}
	servePDF(w, "attendance-"+month.Format("2006-01")+".pdf", pdf)
}

func (h *Handler) handlePayroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	pdf, err := h.Service.PayrollRunPDF(r.Context(), chi.URLParam(r, "runID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to render payroll report", reqID)
		return
	}
	servePDF(w, "payroll-run.pdf", pdf)
}

func servePDF(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
