package leave

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidState = errors.New("leave application is not pending")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const applicationColumns = `
  id, employee_id, leave_type, start_date, end_date, days,
  COALESCE(reason, ''), status, COALESCE(decided_by::text, ''), created_at`

func scanApplication(row interface{ Scan(...any) error }) (Application, error) {
	var app Application
	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.LeaveType, &app.StartDate, &app.EndDate,
		&app.Days, &app.Reason, &app.Status, &app.DecidedBy, &app.CreatedAt,
	)
	return app, err
}

func (s *Store) Create(ctx context.Context, app Application) (Application, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO leave_applications (employee_id, leave_type, start_date, end_date, days, reason, status)
    VALUES ($1,$2,$3,$4,$5,$6,'pending')
    RETURNING `+applicationColumns+`
  `, app.EmployeeID, app.LeaveType, app.StartDate, app.EndDate, app.Days, app.Reason)
	return scanApplication(row)
}

// Decide moves a pending application to its final status. The pending
// guard in the WHERE clause makes the transition race-safe: only one
// decision wins, so approval side effects fire exactly once.
func (s *Store) Decide(ctx context.Context, applicationID, status, decidedBy string) (Application, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE leave_applications
    SET status = $2, decided_by = $3, decided_at = now()
    WHERE id = $1 AND status = 'pending'
    RETURNING `+applicationColumns+`
  `, applicationID, status, decidedBy)
	app, err := scanApplication(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Application{}, ErrInvalidState
	}
	return app, err
}

func (s *Store) Get(ctx context.Context, applicationID string) (Application, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+applicationColumns+` FROM leave_applications WHERE id = $1`, applicationID)
	return scanApplication(row)
}

func (s *Store) List(ctx context.Context, employeeID, status string, limit, offset int) ([]Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM leave_applications`
	var clauses []string
	var args []any
	if employeeID != "" {
		args = append(args, employeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if status != "" {
		args = append(args, status)
		clauses = append(clauses, fmt.Sprintf("status = $%d", len(args)))
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// UsedDaysByType sums approved leave days per type for one employee in the
// given year.
func (s *Store) UsedDaysByType(ctx context.Context, employeeID string, year int) (map[string]float64, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)
	rows, err := s.DB.Query(ctx, `
    SELECT leave_type, COALESCE(SUM(days), 0)
    FROM leave_applications
    WHERE employee_id = $1 AND status = 'approved'
      AND start_date >= $2 AND start_date < $3
    GROUP BY leave_type
  `, employeeID, yearStart, yearEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	used := map[string]float64{}
	for rows.Next() {
		var leaveType string
		var days float64
		if err := rows.Scan(&leaveType, &days); err != nil {
			return nil, err
		}
		used[leaveType] = days
	}
	return used, rows.Err()
}
