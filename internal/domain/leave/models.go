package leave

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DefaultEntitlements maps each leave type onto its yearly day allowance.
var DefaultEntitlements = map[string]float64{
	"annual":   25,
	"sick":     10,
	"personal": 5,
	"unpaid":   0,
}

type Application struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	LeaveType  string    `json:"leaveType"`
	StartDate  time.Time `json:"startDate"`
	EndDate    time.Time `json:"endDate"`
	Days       float64   `json:"days"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decidedBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Balance struct {
	LeaveType   string  `json:"leaveType"`
	Entitlement float64 `json:"entitlement"`
	Used        float64 `json:"used"`
	Remaining   float64 `json:"remaining"`
}
