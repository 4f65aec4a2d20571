package performance

import "time"

const (
	StatusNotStarted = "not_started"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusOverdue    = "overdue"
)

const CategoryLearning = "learning"

type Goal struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employeeId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	TargetDate  *time.Time `json:"targetDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type GoalStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	CompletionRate float64        `json:"completionRate"`
	ByCategory     map[string]int `json:"byCategory"`
	ByStatus       map[string]int `json:"byStatus"`
}
