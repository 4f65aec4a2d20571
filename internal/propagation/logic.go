package propagation

import "time"

// DayOf normalizes a timestamp to midnight of its calendar date.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DatesInRange returns every calendar date from start to end inclusive.
// A reversed range yields nil.
func DatesInRange(start, end time.Time) []time.Time {
	first := DayOf(start)
	last := DayOf(end)
	if last.Before(first) {
		return nil
	}

	var dates []time.Time
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		dates = append(dates, day)
	}
	return dates
}
