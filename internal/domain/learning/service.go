package learning

import (
	"context"

	"hrms/internal/propagation"
)

type Service struct {
	Store *Store
	Feed  propagation.Feed
}

func NewService(store *Store, feed propagation.Feed) *Service {
	return &Service{Store: store, Feed: feed}
}

func (s *Service) CreateCourse(ctx context.Context, course Course) (Course, error) {
	if course.Status == "" {
		course.Status = CourseActive
	}
	return s.Store.CreateCourse(ctx, course)
}

func (s *Service) ListCourses(ctx context.Context, category string) ([]Course, error) {
	return s.Store.ListCourses(ctx, category)
}

func (s *Service) Enroll(ctx context.Context, employeeID, courseID string) (Enrollment, error) {
	return s.Store.Enroll(ctx, employeeID, courseID)
}

// Complete finishes an enrollment and announces it. The store's one-shot
// completion guard keeps a repeated complete call from publishing a second
// event, so goal progress is never double-credited.
func (s *Service) Complete(ctx context.Context, enrollmentID string) (Enrollment, error) {
	enrollment, err := s.Store.Complete(ctx, enrollmentID)
	if err != nil {
		return Enrollment{}, err
	}

	if s.Feed != nil {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain: propagation.DomainLearning,
			Kind:   propagation.KindUpdate,
			Payload: propagation.EnrollmentPayload{
				EmployeeID: enrollment.EmployeeID,
				CourseID:   enrollment.CourseID,
				Status:     enrollment.Status,
			},
		})
	}
	return enrollment, nil
}

func (s *Service) ListEnrollments(ctx context.Context, employeeID string) ([]Enrollment, error) {
	return s.Store.ListEnrollments(ctx, employeeID)
}

func (s *Service) Stats(ctx context.Context) (EnrollmentStats, error) {
	return s.Store.Stats(ctx)
}
