package employee

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

// Create inserts the employee and announces the change. The announcement is
// fire-and-forget: a failed or dropped propagation never rolls back the
// insert.
func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	if emp.Status == "" {
		emp.Status = "active"
	}
	created, err := s.Store.Create(ctx, emp)
	if err != nil {
		return Employee{}, err
	}

	if s.Feed != nil {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain: propagation.DomainEmployee,
			Kind:   propagation.KindCreate,
			Payload: propagation.EmployeePayload{
				EmployeeID: created.ID,
				CreatedAt:  created.CreatedAt,
			},
		})
	}
	return created, nil
}

func (s *Service) Get(ctx context.Context, employeeID string) (Employee, error) {
	return s.Store.Get(ctx, employeeID)
}

func (s *Service) Update(ctx context.Context, emp Employee) (Employee, error) {
	updated, err := s.Store.Update(ctx, emp)
	if err != nil {
		return Employee{}, err
	}
	if s.Feed != nil {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain: propagation.DomainEmployee,
			Kind:   propagation.KindUpdate,
			Payload: propagation.EmployeePayload{
				EmployeeID: updated.ID,
				CreatedAt:  updated.CreatedAt,
			},
		})
	}
	return updated, nil
}

func (s *Service) Terminate(ctx context.Context, employeeID string) error {
	if err := s.Store.Delete(ctx, employeeID); err != nil {
		return err
	}
	if s.Feed != nil {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain:  propagation.DomainEmployee,
			Kind:    propagation.KindDelete,
			Payload: propagation.EmployeePayload{EmployeeID: employeeID},
		})
	}
	return nil
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Employee, error) {
	return s.Store.List(ctx, filter)
}

func (s *Service) Headcount(ctx context.Context) (HeadcountStats, error) {
	return s.Store.Headcount(ctx)
}

func (s *Service) Departments(ctx context.Context) ([]Department, error) {
	return s.Store.ListDepartments(ctx)
}
