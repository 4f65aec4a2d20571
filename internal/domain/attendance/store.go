package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrAlreadyCheckedIn = errors.New("attendance record already exists for today")
	ErrNotCheckedIn     = errors.New("no open attendance record for today")
)

type Store struct {
	DB           *pgxpool.Pool
	WorkDayHours float64
}

func NewStore(db *pgxpool.Pool, workDayHours float64) *Store {
	return &Store{DB: db, WorkDayHours: workDayHours}
}

// CheckIn creates the day's record. The (employee_id, work_date) unique
// constraint guarantees at most one record per employee per day.
func (s *Store) CheckIn(ctx context.Context, employeeID string, day, at time.Time, status string) error {
	tag, err := s.DB.Exec(ctx, `
    INSERT INTO attendance_records (employee_id, work_date, check_in_time, total_hours, status)
    VALUES ($1, $2, $3, 0, $4)
    ON CONFLICT (employee_id, work_date) DO NOTHING
  `, employeeID, day, at, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAlreadyCheckedIn
	}
	return nil
}

// CheckOut closes the day's record, crediting the hours between check-in
// and check-out in a single statement. A late check-in keeps its late
// status once the day reaches a full total.
func (s *Store) CheckOut(ctx context.Context, employeeID string, day, at time.Time) error {
	tag, err := s.DB.Exec(ctx, `
    UPDATE attendance_records
    SET check_out_time = $3,
        total_hours = total_hours + GREATEST(EXTRACT(EPOCH FROM ($3 - check_in_time)) / 3600.0, 0),
        status = CASE
          WHEN total_hours + GREATEST(EXTRACT(EPOCH FROM ($3 - check_in_time)) / 3600.0, 0) < $4 THEN 'partial'
          WHEN status = 'late' THEN 'late'
          ELSE 'present'
        END,
        updated_at = now()
    WHERE employee_id = $1 AND work_date = $2
      AND check_in_time IS NOT NULL AND check_out_time IS NULL
  `, employeeID, day, at, s.WorkDayHours)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotCheckedIn
	}
	return nil
}

// AccumulateHours adds a completed time entry's hours into the day's
// record. The accumulation happens inside the upsert so concurrent entries
// for the same day never lose an addition.
func (s *Store) AccumulateHours(ctx context.Context, employeeID string, day time.Time, checkIn, checkOut time.Time, hours float64) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO attendance_records (employee_id, work_date, check_in_time, check_out_time, total_hours, status)
    VALUES ($1, $2, $3, $4, $5, CASE WHEN $5 >= $6 THEN 'present' ELSE 'partial' END)
    ON CONFLICT (employee_id, work_date) DO UPDATE SET
      total_hours = attendance_records.total_hours + EXCLUDED.total_hours,
      check_in_time = LEAST(attendance_records.check_in_time, EXCLUDED.check_in_time),
      check_out_time = GREATEST(attendance_records.check_out_time, EXCLUDED.check_out_time),
      status = CASE
        WHEN attendance_records.total_hours + EXCLUDED.total_hours >= $6 THEN 'present'
        ELSE 'partial'
      END,
      updated_at = now()
  `, employeeID, day, checkIn, checkOut, hours, s.WorkDayHours)
	return err
}

// MarkOnLeave upserts one on-leave row per date. Days that already carry a
// record are switched to on-leave instead of duplicated.
func (s *Store) MarkOnLeave(ctx context.Context, employeeID string, dates []time.Time, notes string) error {
	batch := &pgx.Batch{}
	for _, day := range dates {
		batch.Queue(`
      INSERT INTO attendance_records (employee_id, work_date, total_hours, status, notes)
      VALUES ($1, $2, 0, 'on_leave', $3)
      ON CONFLICT (employee_id, work_date) DO UPDATE SET
        status = 'on_leave',
        notes = EXCLUDED.notes,
        updated_at = now()
    `, employeeID, day, notes)
	}
	results := s.DB.SendBatch(ctx, batch)
	defer results.Close()
	for range dates {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) ListByEmployeeMonth(ctx context.Context, employeeID string, monthStart time.Time) ([]Record, error) {
	monthEnd := monthStart.AddDate(0, 1, 0)
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, check_in_time, check_out_time, total_hours, status, COALESCE(notes, ''), created_at, updated_at
    FROM attendance_records
    WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3
    ORDER BY work_date
  `, employeeID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var record Record
		if err := rows.Scan(
			&record.ID, &record.EmployeeID, &record.WorkDate,
			&record.CheckInTime, &record.CheckOutTime, &record.TotalHours,
			&record.Status, &record.Notes, &record.CreatedAt, &record.UpdatedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *Store) Get(ctx context.Context, employeeID string, day time.Time) (*Record, error) {
	var record Record
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, work_date, check_in_time, check_out_time, total_hours, status, COALESCE(notes, ''), created_at, updated_at
    FROM attendance_records
    WHERE employee_id = $1 AND work_date = $2
  `, employeeID, day).Scan(
		&record.ID, &record.EmployeeID, &record.WorkDate,
		&record.CheckInTime, &record.CheckOutTime, &record.TotalHours,
		&record.Status, &record.Notes, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
