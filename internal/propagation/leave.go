package propagation

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const leaveStatusApproved = "approved"

// LeaveCalendarStore writes on-leave attendance rows for a set of dates.
// The write is an upsert keyed on (employee_id, date): a day that already
// carries a partial attendance record is switched to on-leave rather than
// duplicated.
type LeaveCalendarStore interface {
	MarkOnLeave(ctx context.Context, employeeID string, dates []time.Time, notes string) error
}

// LeaveHandler expands an approved leave application into one attendance
// record per calendar day of the leave range. Only the transition into the
// approved status triggers the expansion; re-saving an already approved
// application does not.
type LeaveHandler struct {
	Attendance LeaveCalendarStore
}

func NewLeaveHandler(attendance LeaveCalendarStore) *LeaveHandler {
	return &LeaveHandler{Attendance: attendance}
}

func (h *LeaveHandler) Handle(ctx context.Context, event ChangeEvent) error {
	payload, ok := event.Payload.(LeavePayload)
	if !ok || payload.EmployeeID == "" {
		slog.Info("leave propagation skipped, malformed payload", "changeKind", event.Kind)
		return nil
	}
	if payload.Status != leaveStatusApproved || payload.PreviousStatus == leaveStatusApproved {
		return nil
	}
	if payload.StartDate.IsZero() || payload.EndDate.IsZero() {
		slog.Info("leave propagation skipped, missing date range", "employeeId", payload.EmployeeID)
		return nil
	}

	dates := DatesInRange(payload.StartDate, payload.EndDate)
	if len(dates) == 0 {
		slog.Info("leave propagation skipped, reversed date range",
			"employeeId", payload.EmployeeID,
			"startDate", payload.StartDate.Format("2006-01-02"),
			"endDate", payload.EndDate.Format("2006-01-02"),
		)
		return nil
	}

	notes := fmt.Sprintf("On %s leave", payload.LeaveType)
	if err := h.Attendance.MarkOnLeave(ctx, payload.EmployeeID, dates, notes); err != nil {
		return err
	}
	slog.Info("leave expanded into attendance",
		"sourceDomain", DomainLeave,
		"employeeId", payload.EmployeeID,
		"days", len(dates),
		"targetTable", "attendance_records",
	)
	return nil
}
