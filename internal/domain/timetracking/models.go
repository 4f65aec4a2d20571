package timetracking

import "time"

const (
	StatusActive    = "active"
	StatusPaused    = "paused"
	StatusCompleted = "completed"
)

type TimeEntry struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	ProjectID  string     `json:"projectId,omitempty"`
	TaskID     string     `json:"taskId,omitempty"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	TotalHours *float64   `json:"totalHours,omitempty"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
}
