package learning

import "time"

const (
	CourseActive   = "active"
	CourseArchived = "archived"

	EnrollmentEnrolled   = "enrolled"
	EnrollmentInProgress = "in_progress"
	EnrollmentCompleted  = "completed"
)

type Course struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category"`
	DurationHours float64   `json:"durationHours"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Enrollment struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	CourseID    string     `json:"courseId"`
	Status      string     `json:"status"`
	EnrolledAt  time.Time  `json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

type EnrollmentStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	CompletionRate float64 `json:"completionRate"`
}
