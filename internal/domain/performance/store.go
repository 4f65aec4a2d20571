package performance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/propagation"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

const goalColumns = `
  id, employee_id, title, COALESCE(description, ''), category,
  status, progress, target_date, created_at, updated_at`

func scanGoal(row interface{ Scan(...any) error }) (Goal, error) {
	var goal Goal
	err := row.Scan(
		&goal.ID, &goal.EmployeeID, &goal.Title, &goal.Description, &goal.Category,
		&goal.Status, &goal.Progress, &goal.TargetDate, &goal.CreatedAt, &goal.UpdatedAt,
	)
	return goal, err
}

func (s *Store) Create(ctx context.Context, goal Goal) (Goal, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO performance_goals (employee_id, title, description, category, status, progress, target_date)
    VALUES ($1,$2,$3,$4,$5,$6,$7)
    RETURNING `+goalColumns+`
  `, goal.EmployeeID, goal.Title, goal.Description, goal.Category, goal.Status, goal.Progress, goal.TargetDate)
	return scanGoal(row)
}

// CreateOnboardingGoal seeds the fixed goal every new hire starts with.
func (s *Store) CreateOnboardingGoal(ctx context.Context, employeeID, title, category string, targetDate time.Time) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO performance_goals (employee_id, title, category, status, progress, target_date)
    VALUES ($1, $2, $3, 'not_started', 0, $4)
  `, employeeID, title, category, targetDate)
	return err
}

func (s *Store) Get(ctx context.Context, goalID string) (Goal, error) {
	row := s.DB.QueryRow(ctx, `SELECT `+goalColumns+` FROM performance_goals WHERE id = $1`, goalID)
	return scanGoal(row)
}

func (s *Store) UpdateProgress(ctx context.Context, goalID string, progress int, status string) (Goal, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE performance_goals
    SET progress = $2, status = $3, updated_at = now()
    WHERE id = $1
    RETURNING `+goalColumns+`
  `, goalID, progress, status)
	return scanGoal(row)
}

func (s *Store) ListByEmployee(ctx context.Context, employeeID string) ([]Goal, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT `+goalColumns+`
    FROM performance_goals
    WHERE employee_id = $1
    ORDER BY created_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// AdvanceLearningGoals credits an increment onto every open learning goal
// of one employee. Each update is an independent statement and the clamp
// happens in SQL, so concurrent credits never push progress past 100 or
// lose an increment.
func (s *Store) AdvanceLearningGoals(ctx context.Context, employeeID string, increment int) ([]propagation.GoalProgress, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id FROM performance_goals
    WHERE employee_id = $1 AND category = 'learning' AND status <> 'completed'
  `, employeeID)
	if err != nil {
		return nil, err
	}
	goalIDs := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		goalIDs = append(goalIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var advanced []propagation.GoalProgress
	for _, goalID := range goalIDs {
		var progress propagation.GoalProgress
		err := s.DB.QueryRow(ctx, `
      UPDATE performance_goals
      SET progress = LEAST(progress + $2, 100),
          status = CASE WHEN LEAST(progress + $2, 100) >= 100 THEN 'completed' ELSE 'in_progress' END,
          updated_at = now()
      WHERE id = $1 AND status <> 'completed'
      RETURNING id, progress, status
    `, goalID, increment).Scan(&progress.GoalID, &progress.Progress, &progress.Status)
		if errors.Is(err, pgx.ErrNoRows) {
			// Completed concurrently between the listing and the update.
			continue
		}
		if err != nil {
			return advanced, err
		}
		advanced = append(advanced, progress)
	}
	return advanced, nil
}

func (s *Store) Stats(ctx context.Context) (GoalStats, error) {
	stats := GoalStats{ByCategory: map[string]int{}, ByStatus: map[string]int{}}

	rows, err := s.DB.Query(ctx, "SELECT category, status, COUNT(1) FROM performance_goals GROUP BY category, status")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var category, status string
		var count int
		if err := rows.Scan(&category, &status, &count); err != nil {
			return stats, err
		}
		stats.Total += count
		stats.ByCategory[category] += count
		stats.ByStatus[status] += count
		if status == StatusCompleted {
			stats.Completed += count
		}
	}
	if err := rows.Err(); err != nil {
		return stats, err
	}
	if stats.Total > 0 {
		stats.CompletionRate = float64(stats.Completed) / float64(stats.Total)
	}
	return stats, nil
}
