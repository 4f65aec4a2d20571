package recruitment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPostingClosed = errors.New("recruitment: posting is closed")
	ErrInvalidMove   = errors.New("recruitment: invalid stage transition")
)

const applicationColumns = `id, posting_id, candidate_name, email, stage, COALESCE(notes, ''), applied_at, updated_at`

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) CreatePosting(ctx context.Context, title, departmentID, description string) (*Posting, error) {
	const query = `
		INSERT INTO job_postings (title, department_id, description, status)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4)
		RETURNING id, title, COALESCE(department_id::text, ''), COALESCE(description, ''), status, opened_at, closed_at`

	var p Posting
	err := s.pool.QueryRow(ctx, query, title, departmentID, description, PostingStatusOpen).
		Scan(&p.ID, &p.Title, &p.DepartmentID, &p.Description, &p.Status, &p.OpenedAt, &p.ClosedAt)
	if err != nil {
		return nil, fmt.Errorf("insert job posting: %w", err)
	}
	return &p, nil
}

func (s *Store) ClosePosting(ctx context.Context, postingID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE job_postings SET status = $2, closed_at = now()
		WHERE id = $1 AND status = $3`, postingID, PostingStatusClosed, PostingStatusOpen)
	if err != nil {
		return fmt.Errorf("close job posting: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPostingClosed
	}
	return nil
}

func (s *Store) ListPostings(ctx context.Context, status string) ([]Posting, error) {
	query := `
		SELECT id, title, COALESCE(department_id::text, ''), COALESCE(description, ''), status, opened_at, closed_at
		FROM job_postings`
	var args []any
	if status != "" {
		query += " WHERE status = $1"
		args = append(args, status)
	}
	query += " ORDER BY opened_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query job postings: %w", err)
	}
	defer rows.Close()

	var postings []Posting
	for rows.Next() {
		var p Posting
		if err := rows.Scan(&p.ID, &p.Title, &p.DepartmentID, &p.Description, &p.Status, &p.OpenedAt, &p.ClosedAt); err != nil {
			return nil, fmt.Errorf("scan job posting: %w", err)
		}
		postings = append(postings, p)
	}
	return postings, rows.Err()
}

// Apply inserts a new application in the applied stage. The posting must
// still be open.
func (s *Store) Apply(ctx context.Context, postingID, candidateName, email, notes string) (*Application, error) {
	query := fmt.Sprintf(`
		INSERT INTO job_applications (posting_id, candidate_name, email, stage, notes)
		SELECT id, $2, $3, $4, NULLIF($5, '')
		FROM job_postings WHERE id = $1 AND status = 'open'
		RETURNING %s`, applicationColumns)

	var app Application
	err := s.pool.QueryRow(ctx, query, postingID, candidateName, email, StageApplied, notes).
		Scan(&app.ID, &app.PostingID, &app.CandidateName, &app.Email, &app.Stage, &app.Notes, &app.AppliedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPostingClosed
	}
	if err != nil {
		return nil, fmt.Errorf("insert job application: %w", err)
	}
	return &app, nil
}

func (s *Store) GetApplication(ctx context.Context, applicationID string) (*Application, error) {
	query := fmt.Sprintf("SELECT %s FROM job_applications WHERE id = $1", applicationColumns)

	var app Application
	err := s.pool.QueryRow(ctx, query, applicationID).
		Scan(&app.ID, &app.PostingID, &app.CandidateName, &app.Email, &app.Stage, &app.Notes, &app.AppliedAt, &app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("query job application: %w", err)
	}
	return &app, nil
}

// MoveStage advances an application, guarding the current stage in the
// WHERE clause so a concurrent move cannot skip a step.
func (s *Store) MoveStage(ctx context.Context, applicationID, from, to string) (*Application, error) {
	query := fmt.Sprintf(`
		UPDATE job_applications
		SET stage = $3, updated_at = now()
		WHERE id = $1 AND stage = $2
		RETURNING %s`, applicationColumns)

	var app Application
	err := s.pool.QueryRow(ctx, query, applicationID, from, to).
		Scan(&app.ID, &app.PostingID, &app.CandidateName, &app.Email, &app.Stage, &app.Notes, &app.AppliedAt, &app.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInvalidMove
	}
	if err != nil {
		return nil, fmt.Errorf("update application stage: %w", err)
	}
	return &app, nil
}

func (s *Store) ListApplications(ctx context.Context, postingID, stage string) ([]Application, error) {
	query := fmt.Sprintf("SELECT %s FROM job_applications WHERE posting_id = $1", applicationColumns)
	args := []any{postingID}
	if stage != "" {
		query += " AND stage = $2"
		args = append(args, stage)
	}
	query += " ORDER BY applied_at"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query job applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.PostingID, &app.CandidateName, &app.Email, &app.Stage, &app.Notes, &app.AppliedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan job application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func (s *Store) PipelineStats(ctx context.Context, postingID string) (*PipelineStats, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT stage, COUNT(*)
		FROM job_applications
		WHERE posting_id = $1
		GROUP BY stage`, postingID)
	if err != nil {
		return nil, fmt.Errorf("query pipeline stats: %w", err)
	}
	defer rows.Close()

	stats := &PipelineStats{PostingID: postingID, ByStage: map[string]int{}}
	for rows.Next() {
		var stage string
		var count int
		if err := rows.Scan(&stage, &count); err != nil {
			return nil, fmt.Errorf("scan pipeline stage: %w", err)
		}
		stats.ByStage[stage] = count
		stats.Total += count
	}
	return stats, rows.Err()
}
