package attendance

import (
	"context"
	"time"
)

type Service struct {
	Store     *Store
	LateAfter string
}

func NewService(store *Store, lateAfter string) *Service {
	return &Service{Store: store, LateAfter: lateAfter}
}

func (s *Service) CheckIn(ctx context.Context, employeeID string, at time.Time) (string, error) {
	status := StatusPresent
	if IsLate(at, s.LateAfter) {
		status = StatusLate
	}
	day := dayOf(at)
	if err := s.Store.CheckIn(ctx, employeeID, day, at, status); err != nil {
		return "", err
	}
	return status, nil
}

func (s *Service) CheckOut(ctx context.Context, employeeID string, at time.Time) error {
	return s.Store.CheckOut(ctx, employeeID, dayOf(at), at)
}

func (s *Service) MonthRecords(ctx context.Context, employeeID string, monthStart time.Time) ([]Record, error) {
	return s.Store.ListByEmployeeMonth(ctx, employeeID, monthStart)
}

func (s *Service) MonthSummary(ctx context.Context, employeeID string, monthStart time.Time) (MonthlySummary, error) {
	records, err := s.Store.ListByEmployeeMonth(ctx, employeeID, monthStart)
	if err != nil {
		return MonthlySummary{}, err
	}
	return Summarize(employeeID, monthStart.Format("2006-01"), records), nil
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
