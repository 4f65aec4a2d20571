package leave

import (
	"testing"
	"time"
)

func TestCalculateDays(t *testing.T) {
	start := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)

	days, err := CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 1 {
		t.Fatalf("expected 1 day, got %v", days)
	}

	end = time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
	days, err = CalculateDays(start, end)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %v", days)
	}
}

func TestCalculateDaysInvalid(t *testing.T) {
	start := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)

	if _, err := CalculateDays(start, end); err == nil {
		t.Fatal("expected error for reversed range")
	}
}

func TestBalances(t *testing.T) {
	balances := Balances(map[string]float64{"annual": 10, "sick": 2})

	byType := map[string]Balance{}
	for _, b := range balances {
		byType[b.LeaveType] = b
	}

	if byType["annual"].Remaining != 15 {
		t.Fatalf("expected 15 annual days remaining, got %v", byType["annual"].Remaining)
	}
	if byType["sick"].Used != 2 {
		t.Fatalf("expected 2 sick days used, got %v", byType["sick"].Used)
	}
	if byType["personal"].Remaining != 5 {
		t.Fatalf("expected untouched personal entitlement, got %v", byType["personal"].Remaining)
	}
}
