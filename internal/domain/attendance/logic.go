package attendance

import "time"

// StatusForHours maps an accumulated daily total onto present or partial.
func StatusForHours(totalHours, workDayHours float64) string {
	if totalHours >= workDayHours {
		return StatusPresent
	}
	return StatusPartial
}

// IsLate reports whether a check-in time falls after the configured
// late-after clock time (HH:MM) on its own day.
func IsLate(checkIn time.Time, lateAfter string) bool {
	cutoff, err := time.Parse("15:04", lateAfter)
	if err != nil {
		return false
	}
	threshold := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(),
		cutoff.Hour(), cutoff.Minute(), 0, 0, checkIn.Location())
	return checkIn.After(threshold)
}

// Summarize aggregates one month of records into per-status counts and
// hour totals. Days with zero hours are excluded from the hours average.
func Summarize(employeeID, month string, records []Record) MonthlySummary {
	summary := MonthlySummary{EmployeeID: employeeID, Month: month}
	workedDays := 0
	for _, record := range records {
		switch record.Status {
		case StatusPresent:
			summary.PresentDays++
		case StatusLate:
			summary.LateDays++
		case StatusPartial:
			summary.PartialDays++
		case StatusOnLeave:
			summary.OnLeaveDays++
		}
		if record.TotalHours > 0 {
			summary.TotalHours += record.TotalHours
			workedDays++
		}
	}
	if workedDays > 0 {
		summary.AverageHours = summary.TotalHours / float64(workedDays)
	}
	return summary
}
