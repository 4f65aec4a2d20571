package timetracking

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNoActiveEntry = errors.New("no active time entry")
	ErrInvalidState  = errors.New("time entry is not in a valid state for this transition")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const entryColumns = `
  id, employee_id, COALESCE(project_id::text, ''), COALESCE(task_id::text, ''),
  start_time, end_time, total_hours, status, created_at`

func scanEntry(row interface{ Scan(...any) error }) (TimeEntry, error) {
	var entry TimeEntry
	err := row.Scan(
		&entry.ID, &entry.EmployeeID, &entry.ProjectID, &entry.TaskID,
		&entry.StartTime, &entry.EndTime, &entry.TotalHours, &entry.Status, &entry.CreatedAt,
	)
	return entry, err
}

func (s *Store) Create(ctx context.Context, employeeID, projectID, taskID string, start time.Time) (TimeEntry, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO time_entries (employee_id, project_id, task_id, start_time, status)
    VALUES ($1, NULLIF($2,'')::uuid, NULLIF($3,'')::uuid, $4, 'active')
    RETURNING `+entryColumns+`
  `, employeeID, projectID, taskID, start)
	return scanEntry(row)
}

// StopOpen completes every active or paused entry for the employee,
// computing hours from its own start time. Usually at most one row matches
// (the single-active-entry invariant), but a sweep keeps stale ones from
// lingering.
func (s *Store) StopOpen(ctx context.Context, employeeID string, at time.Time) ([]TimeEntry, error) {
	rows, err := s.DB.Query(ctx, `
    UPDATE time_entries
    SET end_time = $2,
        total_hours = GREATEST(EXTRACT(EPOCH FROM ($2 - start_time)) / 3600.0, 0),
        status = 'completed'
    WHERE employee_id = $1 AND status IN ('active', 'paused')
    RETURNING `+entryColumns+`
  `, employeeID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) SetStatus(ctx context.Context, entryID, from, to string) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE time_entries SET status = $3
    WHERE id = $1 AND status = $2
  `, entryID, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}

func (s *Store) ActiveEntry(ctx context.Context, employeeID string) (*TimeEntry, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE employee_id = $1 AND status = 'active'
    ORDER BY start_time DESC
    LIMIT 1
  `, employeeID)
	entry, err := scanEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoActiveEntry
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, limit, offset int) ([]TimeEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+entryColumns+`
    FROM time_entries
    WHERE employee_id = $1
    ORDER BY start_time DESC
    LIMIT $2 OFFSET $3
  `, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TimeEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
