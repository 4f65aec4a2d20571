package learning

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrms/internal/propagation"
)

var ErrAlreadyCompleted = errors.New("enrollment already completed")

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateCourse(ctx context.Context, course Course) (Course, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO courses (title, description, category, duration_hours, status)
    VALUES ($1,$2,$3,$4,$5)
    RETURNING id, title, COALESCE(description, ''), category, duration_hours, status, created_at
  `, course.Title, course.Description, course.Category, course.DurationHours, course.Status)
	var created Course
	err := row.Scan(&created.ID, &created.Title, &created.Description, &created.Category,
		&created.DurationHours, &created.Status, &created.CreatedAt)
	return created, err
}

func (s *Store) ListCourses(ctx context.Context, category string) ([]Course, error) {
	query := `
    SELECT id, title, COALESCE(description, ''), category, duration_hours, status, created_at
    FROM courses`
	var args []any
	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY title"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var course Course
		if err := rows.Scan(&course.ID, &course.Title, &course.Description, &course.Category,
			&course.DurationHours, &course.Status, &course.CreatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// ActiveCoursesByCategory backs the course-suggestion lookup after a goal
// completes.
func (s *Store) ActiveCoursesByCategory(ctx context.Context, category string, limit int) ([]propagation.CourseRef, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, title
    FROM courses
    WHERE category = $1 AND status = 'active'
    ORDER BY created_at DESC
    LIMIT $2
  `, category, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []propagation.CourseRef
	for rows.Next() {
		var ref propagation.CourseRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (s *Store) Enroll(ctx context.Context, employeeID, courseID string) (Enrollment, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO course_enrollments (employee_id, course_id, status)
    VALUES ($1, $2, 'enrolled')
    ON CONFLICT (employee_id, course_id) DO UPDATE SET status = course_enrollments.status
    RETURNING id, employee_id, course_id, status, enrolled_at, completed_at
  `, employeeID, courseID)
	var enrollment Enrollment
	err := row.Scan(&enrollment.ID, &enrollment.EmployeeID, &enrollment.CourseID,
		&enrollment.Status, &enrollment.EnrolledAt, &enrollment.CompletedAt)
	return enrollment, err
}

// Complete marks an enrollment finished. The status guard makes completion
// fire once: a second complete call reports ErrAlreadyCompleted and no
// event should be published for it.
func (s *Store) Complete(ctx context.Context, enrollmentID string) (Enrollment, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE course_enrollments
    SET status = 'completed', completed_at = now()
    WHERE id = $1 AND status <> 'completed'
    RETURNING id, employee_id, course_id, status, enrolled_at, completed_at
  `, enrollmentID)
	var enrollment Enrollment
	err := row.Scan(&enrollment.ID, &enrollment.EmployeeID, &enrollment.CourseID,
		&enrollment.Status, &enrollment.EnrolledAt, &enrollment.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Enrollment{}, ErrAlreadyCompleted
	}
	return enrollment, err
}

func (s *Store) ListEnrollments(ctx context.Context, employeeID string) ([]Enrollment, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, course_id, status, enrolled_at, completed_at
    FROM course_enrollments
    WHERE employee_id = $1
    ORDER BY enrolled_at DESC
  `, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		var enrollment Enrollment
		if err := rows.Scan(&enrollment.ID, &enrollment.EmployeeID, &enrollment.CourseID,
			&enrollment.Status, &enrollment.EnrolledAt, &enrollment.CompletedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}

func (s *Store) Stats(ctx context.Context) (EnrollmentStats, error) {
	var stats EnrollmentStats
	rows, err := s.DB.Query(ctx, "SELECT status, COUNT(1) FROM course_enrollments GROUP BY status")
	if err != nil {
		return stats, err
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return stats, err
		}
		stats.Total += count
		switch status {
		case EnrollmentCompleted:
			stats.Completed += count
		case EnrollmentInProgress:
			stats.InProgress += count
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
