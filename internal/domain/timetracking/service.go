package timetracking

import (
	"context"
	"time"

	"hrms/internal/propagation"
)

type Service struct {
	Store *Store
	Feed  propagation.Feed
}

func NewService(store *Store, feed propagation.Feed) *Service {
	return &Service{Store: store, Feed: feed}
}

// Start opens a new active entry. Any entry still open for the employee is
// completed first, which both enforces the single-active-entry invariant
// and credits its hours downstream.
func (s *Service) Start(ctx context.Context, employeeID, projectID, taskID string, at time.Time) (TimeEntry, error) {
	stopped, err := s.Store.StopOpen(ctx, employeeID, at)
	if err != nil {
		return TimeEntry{}, err
	}
	s.publishCompleted(stopped)

	return s.Store.Create(ctx, employeeID, projectID, taskID, at)
}

func (s *Service) Pause(ctx context.Context, entryID string) error {
	return s.Store.SetStatus(ctx, entryID, StatusActive, StatusPaused)
}

func (s *Service) Resume(ctx context.Context, entryID string) error {
	return s.Store.SetStatus(ctx, entryID, StatusPaused, StatusActive)
}

// Stop completes the employee's open entries and announces each completion.
func (s *Service) Stop(ctx context.Context, employeeID string, at time.Time) ([]TimeEntry, error) {
	stopped, err := s.Store.StopOpen(ctx, employeeID, at)
	if err != nil {
		return nil, err
	}
	if len(stopped) == 0 {
		return nil, ErrNoActiveEntry
	}
	s.publishCompleted(stopped)
	return stopped, nil
}

func (s *Service) Active(ctx context.Context, employeeID string) (*TimeEntry, error) {
	return s.Store.ActiveEntry(ctx, employeeID)
}

func (s *Service) List(ctx context.Context, employeeID string, limit, offset int) ([]TimeEntry, error) {
	return s.Store.ListByEmployee(ctx, employeeID, limit, offset)
}

func (s *Service) publishCompleted(entries []TimeEntry) {
	if s.Feed == nil {
		return
	}
	for _, entry := range entries {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain: propagation.DomainTimeTracking,
			Kind:   propagation.KindUpdate,
			Payload: propagation.TimeEntryPayload{
				EmployeeID: entry.EmployeeID,
				StartTime:  entry.StartTime,
				EndTime:    entry.EndTime,
				Status:     entry.Status,
			},
		})
	}
}
