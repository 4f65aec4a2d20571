package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"hrms/internal/propagation"
)

var ErrInvalidRange = errors.New("invalid leave date range")

type Notifier interface {
	Create(ctx context.Context, employeeID, kind, title, body string) error
}

type Service struct {
	Store  *Store
	Feed   propagation.Feed
	Notify Notifier
}

func NewService(store *Store, feed propagation.Feed, notify Notifier) *Service {
	return &Service{Store: store, Feed: feed, Notify: notify}
}

func (s *Service) Apply(ctx context.Context, employeeID, leaveType string, start, end time.Time, reason string) (Application, error) {
	days, err := CalculateDays(start, end)
	if err != nil {
		return Application{}, ErrInvalidRange
	}
	return s.Store.Create(ctx, Application{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		Reason:     reason,
	})
}

// Approve finalizes a pending application and announces the transition.
// The change event carries the previous status so downstream expansion
// fires only on the pending-to-approved edge.
func (s *Service) Approve(ctx context.Context, applicationID, decidedBy string) (Application, error) {
	app, err := s.Store.Decide(ctx, applicationID, StatusApproved, decidedBy)
	if err != nil {
		return Application{}, err
	}

	if s.Feed != nil {
		s.Feed.Publish(propagation.ChangeEvent{
			Domain: propagation.DomainLeave,
			Kind:   propagation.KindUpdate,
			Payload: propagation.LeavePayload{
				EmployeeID:     app.EmployeeID,
				LeaveType:      app.LeaveType,
				StartDate:      app.StartDate,
				EndDate:        app.EndDate,
				Status:         app.Status,
				PreviousStatus: StatusPending,
			},
		})
	}
	s.notifyDecision(ctx, app)
	return app, nil
}

func (s *Service) Reject(ctx context.Context, applicationID, decidedBy string) (Application, error) {
	app, err := s.Store.Decide(ctx, applicationID, StatusRejected, decidedBy)
	if err != nil {
		return Application{}, err
	}
	s.notifyDecision(ctx, app)
	return app, nil
}

func (s *Service) Get(ctx context.Context, applicationID string) (Application, error) {
	return s.Store.Get(ctx, applicationID)
}

func (s *Service) List(ctx context.Context, employeeID, status string, limit, offset int) ([]Application, error) {
	return s.Store.List(ctx, employeeID, status, limit, offset)
}

func (s *Service) Balances(ctx context.Context, employeeID string, year int) ([]Balance, error) {
	used, err := s.Store.UsedDaysByType(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}
	return Balances(used), nil
}

func (s *Service) notifyDecision(ctx context.Context, app Application) {
	if s.Notify == nil {
		return
	}
	title := fmt.Sprintf("Leave request %s", app.Status)
	body := fmt.Sprintf("Your %s leave from %s to %s was %s.",
		app.LeaveType,
		app.StartDate.Format("2006-01-02"),
		app.EndDate.Format("2006-01-02"),
		app.Status,
	)
	if err := s.Notify.Create(ctx, app.EmployeeID, "leave_decision", title, body); err != nil {
		slog.Warn("leave decision notification failed", "applicationId", app.ID, "err", err)
	}
}
