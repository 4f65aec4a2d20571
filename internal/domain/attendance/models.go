package attendance

import "time"

const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
	StatusPartial = "partial"
	StatusOnLeave = "on_leave"
)

type Record struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employeeId"`
	WorkDate     time.Time  `json:"workDate"`
	CheckInTime  *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime *time.Time `json:"checkOutTime,omitempty"`
	TotalHours   float64    `json:"totalHours"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type MonthlySummary struct {
	EmployeeID   string  `json:"employeeId"`
	Month        string  `json:"month"`
	PresentDays  int     `json:"presentDays"`
	LateDays     int     `json:"lateDays"`
	PartialDays  int     `json:"partialDays"`
	OnLeaveDays  int     `json:"onLeaveDays"`
	TotalHours   float64 `json:"totalHours"`
	AverageHours float64 `json:"averageHours"`
}
