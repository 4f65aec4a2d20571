package employeehandler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/employee"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *employee.Service
}

func NewHandler(service *employee.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequireRole()).Get("/", h.handleList)
		r.With(middleware.RequireRole()).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/", h.handleCreate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Delete("/{employeeID}", h.handleTerminate)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Get("/stats/headcount", h.handleHeadcount)
	})
	r.With(middleware.RequireRole()).Get("/departments", h.handleDepartments)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	page := shared.ParsePagination(r, 50, 200)

	filter := employee.ListFilter{
		DepartmentID: r.URL.Query().Get("departmentId"),
		Status:       r.URL.Query().Get("status"),
		Search:       r.URL.Query().Get("search"),
		Limit:        page.Limit,
		Offset:       page.Offset,
	}
	employees, err := h.Service.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_list_failed", "failed to list employees", reqID)
		return
	}
	api.Success(w, employees, reqID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	emp, err := h.Service.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	api.Success(w, emp, reqID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("firstName", payload.FirstName, "first name is required")
	v.Required("lastName", payload.LastName, "last name is required")
	v.Required("email", payload.Email, "email is required")
	if v.Reject(w, reqID) {
		return
	}

	created, err := h.Service.Create(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", reqID)
		return
	}
	api.Created(w, created, reqID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload employee.Employee
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}
	payload.ID = chi.URLParam(r, "employeeID")

	updated, err := h.Service.Update(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	api.Success(w, updated, reqID)
}

func (h *Handler) handleTerminate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if err := h.Service.Terminate(r.Context(), chi.URLParam(r, "employeeID")); err != nil {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "employee not found", reqID)
		return
	}
	api.Success(w, map[string]string{"status": "terminated"}, reqID)
}

func (h *Handler) handleHeadcount(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Headcount(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "headcount_failed", "failed to compute headcount", reqID)
		return
	}
	api.Success(w, stats, reqID)
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	departments, err := h.Service.Departments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "department_list_failed", "failed to list departments", reqID)
		return
	}
	api.Success(w, departments, reqID)
}
