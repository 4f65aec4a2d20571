package propagation

import (
	"context"
	"log/slog"
)

const maxCourseSuggestions = 3

// CourseRef is a minimal course reference for suggestion logging.
type CourseRef struct {
	ID    string
	Title string
}

// CourseCatalog looks up active courses by category.
type CourseCatalog interface {
	ActiveCoursesByCategory(ctx context.Context, category string, limit int) ([]CourseRef, error)
}

// PerformanceHandler suggests follow-up courses when a goal is completed.
// It is read-only: suggestions are logged, nothing is written.
type PerformanceHandler struct {
	Courses CourseCatalog
}

func NewPerformanceHandler(courses CourseCatalog) *PerformanceHandler {
	return &PerformanceHandler{Courses: courses}
}

func (h *PerformanceHandler) Handle(ctx context.Context, event ChangeEvent) error {
	payload, ok := event.Payload.(GoalPayload)
	if !ok || payload.EmployeeID == "" {
		slog.Info("performance propagation skipped, malformed payload", "changeKind", event.Kind)
		return nil
	}
	if payload.Status != "completed" || payload.Category == "" {
		return nil
	}

	courses, err := h.Courses.ActiveCoursesByCategory(ctx, payload.Category, maxCourseSuggestions)
	if err != nil {
		return err
	}
	if len(courses) == 0 {
		return nil
	}

	titles := make([]string, 0, len(courses))
	for _, course := range courses {
		titles = append(titles, course.Title)
	}
	slog.Info("course suggestions for completed goal",
		"sourceDomain", DomainPerformance,
		"employeeId", payload.EmployeeID,
		"category", payload.Category,
		"courses", titles,
	)
	return nil
}
