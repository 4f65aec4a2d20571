// Package propagation reacts to row changes in one business domain by
// applying derived writes in related domains. Propagation is best-effort:
// handler failures are logged and absorbed, never surfaced to the writer
// that produced the originating change, and derived writes never feed back
// into the change stream.
package propagation

import "time"

// Domain identifies the source table family a change originated from.
type Domain string

const (
	DomainEmployee     Domain = "employee"
	DomainTimeTracking Domain = "time_tracking"
	DomainLeave        Domain = "leave"
	DomainPerformance  Domain = "performance"
	DomainLearning     Domain = "learning"
)

// Domains lists every watched source domain in subscription order.
func Domains() []Domain {
	return []Domain{
		DomainEmployee,
		DomainTimeTracking,
		DomainLeave,
		DomainPerformance,
		DomainLearning,
	}
}

type Kind string

const (
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// ChangeEvent is the ephemeral notification for a single row change.
// Payload holds the typed per-domain payload struct below.
type ChangeEvent struct {
	Domain  Domain
	Kind    Kind
	Payload any
}

type EmployeePayload struct {
	EmployeeID string
	CreatedAt  time.Time
}

type TimeEntryPayload struct {
	EmployeeID string
	StartTime  time.Time
	EndTime    *time.Time
	Status     string
}

type LeavePayload struct {
	EmployeeID     string
	LeaveType      string
	StartDate      time.Time
	EndDate        time.Time
	Status         string
	PreviousStatus string
}

type GoalPayload struct {
	EmployeeID string
	Category   string
	Status     string
}

type EnrollmentPayload struct {
	EmployeeID string
	CourseID   string
	Status     string
}
