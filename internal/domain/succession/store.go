package succession

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const planColumns = `id, key_position, COALESCE(incumbent_id::text, ''), candidate_id, readiness, COALESCE(notes, ''), created_at, updated_at`

func IsReadiness(level string) bool {
	switch level {
	case ReadinessReady, ReadinessOneYear, ReadinessTwoYears, ReadinessDevelop:
		return true
	}
	return false
}

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Create(ctx context.Context, keyPosition, incumbentID, candidateID, readiness, notes string) (*Plan, error) {
	query := fmt.Sprintf(`
		INSERT INTO succession_plans (key_position, incumbent_id, candidate_id, readiness, notes)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, NULLIF($5, ''))
		RETURNING %s`, planColumns)

	var p Plan
	err := s.pool.QueryRow(ctx, query, keyPosition, incumbentID, candidateID, readiness, notes).
		Scan(&p.ID, &p.KeyPosition, &p.IncumbentID, &p.CandidateID, &p.Readiness, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert succession plan: %w", err)
	}
	return &p, nil
}

func (s *Store) UpdateReadiness(ctx context.Context, planID, readiness, notes string) (*Plan, error) {
	query := fmt.Sprintf(`
		UPDATE succession_plans
		SET readiness = $2, notes = COALESCE(NULLIF($3, ''), notes), updated_at = now()
		WHERE id = $1
		RETURNING %s`, planColumns)

	var p Plan
	err := s.pool.QueryRow(ctx, query, planID, readiness, notes).
		Scan(&p.ID, &p.KeyPosition, &p.IncumbentID, &p.CandidateID, &p.Readiness, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("update succession plan: %w", err)
	}
	return &p, nil
}

func (s *Store) Delete(ctx context.Context, planID string) error {
	_, err := s.pool.Exec(ctx, "DELETE FROM succession_plans WHERE id = $1", planID)
	if err != nil {
		return fmt.Errorf("delete succession plan: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, keyPosition string) ([]Plan, error) {
	query := fmt.Sprintf("SELECT %s FROM succession_plans", planColumns)
	var args []any
	if keyPosition != "" {
		query += " WHERE key_position = $1"
		args = append(args, keyPosition)
	}
	query += " ORDER BY key_position, readiness"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query succession plans: %w", err)
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.KeyPosition, &p.IncumbentID, &p.CandidateID, &p.Readiness, &p.Notes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan succession plan: %w", err)
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ByReadiness: map[string]int{}}

	err := s.pool.QueryRow(ctx,
		"SELECT COUNT(*), COUNT(DISTINCT key_position) FROM succession_plans").
		Scan(&stats.Plans, &stats.KeyPositions)
	if err != nil {
		return nil, fmt.Errorf("query succession totals: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		"SELECT readiness, COUNT(*) FROM succession_plans GROUP BY readiness")
	if err != nil {
		return nil, fmt.Errorf("query readiness breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var level string
		var count int
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("scan readiness row: %w", err)
		}
		stats.ByReadiness[level] = count
	}
	return stats, rows.Err()
}
