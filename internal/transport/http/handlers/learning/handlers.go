package learninghandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"hrms/internal/domain/auth"
	"hrms/internal/domain/learning"
	"hrms/internal/transport/http/api"
	"hrms/internal/transport/http/middleware"
	"hrms/internal/transport/http/shared"
)

type Handler struct {
	Service *learning.Service
}

func NewHandler(service *learning.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/learning", func(r chi.Router) {
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR)).Post("/courses", h.handleCreateCourse)
		r.With(middleware.RequireRole()).Get("/courses", h.handleListCourses)
		r.With(middleware.RequireRole()).Post("/courses/{courseID}/enroll", h.handleEnroll)
		r.With(middleware.RequireRole()).Post("/enrollments/{enrollmentID}/complete", h.handleComplete)
		r.With(middleware.RequireRole()).Get("/enrollments", h.handleListEnrollments)
		r.With(middleware.RequireRole(auth.RoleAdmin, auth.RoleHR, auth.RoleManager)).Get("/stats", h.handleStats)
	})
}

func (h *Handler) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload learning.Course
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("title", payload.Title, "title is required")
	v.Required("category", payload.Category, "category is required")
	if v.Reject(w, reqID) {
		return
	}

	course, err := h.Service.CreateCourse(r.Context(), payload)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "course_create_failed", "failed to create course", reqID)
		return
	}
	api.Created(w, course, reqID)
}

func (h *Handler) handleListCourses(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	courses, err := h.Service.ListCourses(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "course_list_failed", "failed to list courses", reqID)
		return
	}
	api.Success(w, courses, reqID)
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok || user.EmployeeID == "" {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "employee account required", reqID)
		return
	}

	enrollment, err := h.Service.Enroll(r.Context(), user.EmployeeID, chi.URLParam(r, "courseID"))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enroll_failed", "failed to enroll", reqID)
		return
	}
	api.Created(w, enrollment, reqID)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	enrollment, err := h.Service.Complete(r.Context(), chi.URLParam(r, "enrollmentID"))
	if errors.Is(err, learning.ErrAlreadyCompleted) {
		api.Fail(w, http.StatusConflict, "already_completed", "enrollment is already completed", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "complete_failed", "failed to complete enrollment", reqID)
		return
	}
	api.Success(w, enrollment, reqID)
}

func (h *Handler) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
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

	enrollments, err := h.Service.ListEnrollments(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "enrollment_list_failed", "failed to list enrollments", reqID)
		return
	}
	api.Success(w, enrollments, reqID)
}

func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "learning_stats_failed", "failed to compute learning stats", reqID)
		return
	}
	api.Success(w, stats, reqID)
}
