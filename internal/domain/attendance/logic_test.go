package attendance

import (
	"testing"
	"time"
)

func TestStatusForHours(t *testing.T) {
	if got := StatusForHours(8.5, 8); got != StatusPresent {
		t.Fatalf("expected present for 8.5h, got %s", got)
	}
	if got := StatusForHours(8, 8); got != StatusPresent {
		t.Fatalf("expected present at exact threshold, got %s", got)
	}
	if got := StatusForHours(5, 8); got != StatusPartial {
		t.Fatalf("expected partial for 5h, got %s", got)
	}
}

func TestIsLate(t *testing.T) {
	onTime := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	if IsLate(onTime, "09:15") {
		t.Fatal("09:00 should not be late with 09:15 cutoff")
	}

	late := time.Date(2024, 6, 3, 9, 16, 0, 0, time.UTC)
	if !IsLate(late, "09:15") {
		t.Fatal("09:16 should be late with 09:15 cutoff")
	}

	if IsLate(late, "not-a-time") {
		t.Fatal("unparseable cutoff should never mark late")
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{Status: StatusPresent, TotalHours: 8},
		{Status: StatusLate, TotalHours: 7.5},
		{Status: StatusPartial, TotalHours: 4},
		{Status: StatusOnLeave, TotalHours: 0},
		{Status: StatusOnLeave, TotalHours: 0},
	}

	summary := Summarize("emp-1", "2024-06", records)
	if summary.PresentDays != 1 || summary.LateDays != 1 || summary.PartialDays != 1 {
		t.Fatalf("unexpected day counts: %+v", summary)
	}
	if summary.OnLeaveDays != 2 {
		t.Fatalf("expected 2 on-leave days, got %d", summary.OnLeaveDays)
	}
	if summary.TotalHours != 19.5 {
		t.Fatalf("expected 19.5 total hours, got %v", summary.TotalHours)
	}
	if summary.AverageHours != 6.5 {
		t.Fatalf("expected average over worked days only, got %v", summary.AverageHours)
	}
}
