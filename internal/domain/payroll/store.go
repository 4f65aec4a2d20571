package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNoSalary     = errors.New("payroll: employee has no salary record")
	ErrRunExists    = errors.New("payroll: run already exists for month")
	ErrRunFinalized = errors.New("payroll: run already finalized")
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) SetSalary(ctx context.Context, employeeID string, baseSalary float64, currency string) (*SalaryRecord, error) {
	const query = `
		INSERT INTO salary_records (employee_id, base_salary, currency, effective_from)
		VALUES ($1, $2, $3, CURRENT_DATE)
		RETURNING id, employee_id, base_salary, currency, effective_from, created_at`

	var rec SalaryRecord
	err := s.pool.QueryRow(ctx, query, employeeID, baseSalary, currency).
		Scan(&rec.ID, &rec.EmployeeID, &rec.BaseSalary, &rec.Currency, &rec.Effective, &rec.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert salary record: %w", err)
	}
	return &rec, nil
}

func (s *Store) CurrentSalary(ctx context.Context, employeeID string) (*SalaryRecord, error) {
	const query = `
		SELECT id, employee_id, base_salary, currency, effective_from, created_at
		FROM salary_records
		WHERE employee_id = $1
		ORDER BY effective_from DESC, created_at DESC
		LIMIT 1`

	var rec SalaryRecord
	err := s.pool.QueryRow(ctx, query, employeeID).
		Scan(&rec.ID, &rec.EmployeeID, &rec.BaseSalary, &rec.Currency, &rec.Effective, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoSalary
	}
	if err != nil {
		return nil, fmt.Errorf("query salary record: %w", err)
	}
	return &rec, nil
}

// CreateRun opens a payroll run for the month and generates one payslip per
// active employee with a salary record, all in a single transaction.
func (s *Store) CreateRun(ctx context.Context, month string) (*Run, []Payslip, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin payroll run: %w", err)
	}
	defer tx.Rollback(ctx)

	var run Run
	err = tx.QueryRow(ctx, `
		INSERT INTO payroll_runs (month, status)
		VALUES ($1, $2)
		ON CONFLICT (month) DO NOTHING
		RETURNING id, month, status, created_at`, month, RunStatusDraft).
		Scan(&run.ID, &run.Month, &run.Status, &run.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrRunExists
	}
	if err != nil {
		return nil, nil, fmt.Errorf("insert payroll run: %w", err)
	}

	rows, err := tx.Query(ctx, `
		SELECT DISTINCT ON (sr.employee_id) sr.employee_id, sr.base_salary
		FROM salary_records sr
		JOIN employees e ON e.id = sr.employee_id AND e.status = 'active'
		ORDER BY sr.employee_id, sr.effective_from DESC, sr.created_at DESC`)
	if err != nil {
		return nil, nil, fmt.Errorf("query current salaries: %w", err)
	}

	type salaryRow struct {
		employeeID string
		base       float64
	}
	var salaries []salaryRow
	for rows.Next() {
		var sr salaryRow
		if err := rows.Scan(&sr.employeeID, &sr.base); err != nil {
			rows.Close()
			return nil, nil, fmt.Errorf("scan salary row: %w", err)
		}
		salaries = append(salaries, sr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate salary rows: %w", err)
	}

	payslips := make([]Payslip, 0, len(salaries))
	for _, sr := range salaries {
		gross, allowances, deductions, net := ComputePayslip(sr.base)

		var slip Payslip
		err := tx.QueryRow(ctx, `
			INSERT INTO payslips (run_id, employee_id, gross, allowances, deductions, net)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, run_id, employee_id, gross, allowances, deductions, net, generated_at`,
			run.ID, sr.employeeID, gross, allowances, deductions, net).
			Scan(&slip.ID, &slip.RunID, &slip.EmployeeID, &slip.Gross, &slip.Allowances, &slip.Deductions, &slip.Net, &slip.GeneratedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("insert payslip: %w", err)
		}
		payslips = append(payslips, slip)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit payroll run: %w", err)
	}
	return &run, payslips, nil
}

func (s *Store) FinalizeRun(ctx context.Context, runID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE payroll_runs SET status = $2 WHERE id = $1 AND status = $3`,
		runID, RunStatusFinalized, RunStatusDraft)
	if err != nil {
		return fmt.Errorf("finalize payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRunFinalized
	}
	return nil
}

func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, month, status, created_at
		FROM payroll_runs
		ORDER BY month DESC`)
	if err != nil {
		return nil, fmt.Errorf("query payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Month, &run.Status, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) ListPayslips(ctx context.Context, runID string) ([]Payslip, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, run_id, employee_id, gross, allowances, deductions, net, generated_at
		FROM payslips
		WHERE run_id = $1
		ORDER BY employee_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query payslips: %w", err)
	}
	defer rows.Close()

	var slips []Payslip
	for rows.Next() {
		var slip Payslip
		if err := rows.Scan(&slip.ID, &slip.RunID, &slip.EmployeeID, &slip.Gross, &slip.Allowances, &slip.Deductions, &slip.Net, &slip.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan payslip: %w", err)
		}
		slips = append(slips, slip)
	}
	return slips, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByDepartment: map[string]float64{}}

	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(cs.base_salary), 0), COALESCE(AVG(cs.base_salary), 0), COUNT(*)
		FROM (
			SELECT DISTINCT ON (sr.employee_id) sr.employee_id, sr.base_salary
			FROM salary_records sr
			JOIN employees e ON e.id = sr.employee_id AND e.status = 'active'
			ORDER BY sr.employee_id, sr.effective_from DESC, sr.created_at DESC
		) cs`).Scan(&stats.TotalMonthlyCost, &stats.AverageSalary, &stats.Employees)
	if err != nil {
		return nil, fmt.Errorf("query payroll totals: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT COALESCE(d.name, 'Unassigned'), COALESCE(SUM(cs.base_salary), 0)
		FROM (
			SELECT DISTINCT ON (sr.employee_id) sr.employee_id, sr.base_salary
			FROM salary_records sr
			ORDER BY sr.employee_id, sr.effective_from DESC, sr.created_at DESC
		) cs
		JOIN employees e ON e.id = cs.employee_id AND e.status = 'active'
		LEFT JOIN departments d ON d.id = e.department_id
		GROUP BY d.name`)
	if err != nil {
		return nil, fmt.Errorf("query payroll by department: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dept string
		var total float64
		if err := rows.Scan(&dept, &total); err != nil {
			return nil, fmt.Errorf("scan department total: %w", err)
		}
		stats.ByDepartment[dept] = total
	}
	return stats, rows.Err()
}
