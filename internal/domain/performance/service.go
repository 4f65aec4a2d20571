package performance

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

func (s *Service) Create(ctx context.Context, goal Goal) (Goal, error) {
	goal.Progress = ClampProgress(goal.Progress)
	if goal.Status == "" {
		goal.Status = StatusForUpdate(goal.Progress, StatusNotStarted)
	}
	return s.Store.Create(ctx, goal)
}

func (s *Service) Get(ctx context.Context, goalID string) (Goal, error) {
	return s.Store.Get(ctx, goalID)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID string) ([]Goal, error) {
	return s.Store.ListByEmployee(ctx, employeeID)
}

// UpdateProgress clamps and persists a manual progress change. Crossing
// into completed announces the goal completion.
func (s *Service) UpdateProgress(ctx context.Context, goalID string, progress int) (Goal, error) {
	current, err := s.Store.Get(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}

	clamped := ClampProgress(progress)
	status := StatusForUpdate(clamped, current.Status)
	updated, err := s.Store.UpdateProgress(ctx, goalID, clamped, status)
	if err != nil {
		return Goal{}, err
	}

	if s.Feed != nil && current.Status != StatusCompleted && updated.Status == StatusCompleted {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain: propagation.DomainPerformance,
			Kind:   propagation.KindUpdate,
			Payload: propagation.GoalPayload{
				EmployeeID: updated.EmployeeID,
				Category:   updated.Category,
				Status:     updated.Status,
			},
		})
	}
	return updated, nil
}

func (s *Service) Stats(ctx context.Context) (GoalStats, error) {
	return s.Store.Stats(ctx)
}
