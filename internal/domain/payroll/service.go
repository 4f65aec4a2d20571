package payroll

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) SetSalary(ctx context.Context, employeeID string, baseSalary float64, currency string) (*SalaryRecord, error) {
	if currency == "" {
		currency = "USD"
	}
	return s.store.SetSalary(ctx, employeeID, baseSalary, currency)
}

func (s *Service) CurrentSalary(ctx context.Context, employeeID string) (*SalaryRecord, error) {
	return s.store.CurrentSalary(ctx, employeeID)
}

func (s *Service) RunMonth(ctx context.Context, month string) (*Run, []Payslip, error) {
	return s.store.CreateRun(ctx, month)
}

func (s *Service) FinalizeRun(ctx context.Context, runID string) error {
	return s.store.FinalizeRun(ctx, runID)
}

func (s *Service) ListRuns(ctx context.Context) ([]Run, error) {
	return s.store.ListRuns(ctx)
}

func (s *Service) Payslips(ctx context.Context, runID string) ([]Payslip, error) {
	return s.store.ListPayslips(ctx, runID)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.store.Stats(ctx)
}
