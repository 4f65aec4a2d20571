package propagation

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	ts := time.Date(2026, 3, 14, 17, 45, 12, 999, time.UTC)
	day := DayOf(ts)
	want := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	if !day.Equal(want) {
		t.Fatalf("expected %v, got %v", want, day)
	}
}

func TestDatesInRangeInclusive(t *testing.T) {
	start := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 3, 18, 0, 0, 0, time.UTC)

	dates := DatesInRange(start, end)
	if len(dates) != 3 {
		t.Fatalf("expected 3 dates, got %d", len(dates))
	}
	for i, day := range dates {
		want := time.Date(2026, 6, 1+i, 0, 0, 0, 0, time.UTC)
		if !day.Equal(want) {
			t.Fatalf("date %d: expected %v, got %v", i, want, day)
		}
	}
}

func TestDatesInRangeSingleDay(t *testing.T) {
	day := time.Date(2026, 6, 5, 8, 0, 0, 0, time.UTC)
	dates := DatesInRange(day, day.Add(8*time.Hour))
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
}

func TestDatesInRangeReversed(t *testing.T) {
	start := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)
	if dates := DatesInRange(start, start.AddDate(0, 0, -1)); dates != nil {
		t.Fatalf("expected nil for reversed range, got %v", dates)
	}
}
