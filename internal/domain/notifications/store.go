package notifications

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, employeeID, ntype, title, body string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO notifications (employee_id, type, title, body)
		VALUES ($1, $2, $3, $4)`, employeeID, ntype, title, body)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	query := `
		SELECT id, employee_id, type, title, body, read_at, created_at
		FROM notifications
		WHERE employee_id = $1`
	if unreadOnly {
		query += " AND read_at IS NULL"
	}
	query += " ORDER BY created_at DESC LIMIT $2 OFFSET $3"

	rows, err := s.pool.Query(ctx, query, employeeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.EmployeeID, &n.Type, &n.Title, &n.Body, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) UnreadCount(ctx context.Context, employeeID string) (int, error) {
	var total int
	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(1) FROM notifications WHERE employee_id = $1 AND read_at IS NULL",
		employeeID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return total, nil
}

func (s *Store) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read_at = now()
		WHERE employee_id = $1 AND id = $2 AND read_at IS NULL`, employeeID, notificationID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	return nil
}

func (s *Store) MarkAllRead(ctx context.Context, employeeID string) error {
	_, err := s.pool.Exec(ctx, `
		UPDATE notifications SET read_at = now()
		WHERE employee_id = $1 AND read_at IS NULL`, employeeID)
	if err != nil {
		return fmt.Errorf("mark notifications read: %w", err)
	}
	return nil
}
