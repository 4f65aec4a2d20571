package propagation

import (
	"context"
	"log/slog"
	"time"
)

// AttendanceAccumulator applies worked hours into the daily attendance
// record for one employee. The write must be atomic (insert-or-accumulate),
// never a read-then-overwrite, so concurrent completions on the same day
// cannot lose hours.
type AttendanceAccumulator interface {
	AccumulateHours(ctx context.Context, employeeID string, day time.Time, checkIn, checkOut time.Time, hours float64) error
}

// TimeTrackingHandler folds completed time entries into attendance records.
// Entries without an end time (active or paused) are ignored.
type TimeTrackingHandler struct {
	Attendance AttendanceAccumulator
}

func NewTimeTrackingHandler(attendance AttendanceAccumulator) *TimeTrackingHandler {
	return &TimeTrackingHandler{Attendance: attendance}
}

func (h *TimeTrackingHandler) Handle(ctx context.Context, event ChangeEvent) error {
	payload, ok := event.Payload.(TimeEntryPayload)
	if !ok || payload.EmployeeID == "" {
		slog.Info("time tracking propagation skipped, malformed payload", "changeKind", event.Kind)
		return nil
	}
	if payload.StartTime.IsZero() || payload.EndTime == nil {
		return nil
	}

	hours := payload.EndTime.Sub(payload.StartTime).Hours()
	if hours <= 0 {
		slog.Info("time tracking propagation skipped, non-positive duration",
			"employeeId", payload.EmployeeID,
			"startTime", payload.StartTime,
		)
		return nil
	}

	day := DayOf(payload.StartTime)
	if err := h.Attendance.AccumulateHours(ctx, payload.EmployeeID, day, payload.StartTime, *payload.EndTime, hours); err != nil {
		return err
	}
	slog.Info("attendance hours accumulated",
		"sourceDomain", DomainTimeTracking,
		"employeeId", payload.EmployeeID,
		"date", day.Format("2006-01-02"),
		"hours", hours,
		"targetTable", "attendance_records",
	)
	return nil
}
