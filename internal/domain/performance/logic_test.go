package performance

import "testing"

func TestAdvanceProgressClamps(t *testing.T) {
	progress, status := AdvanceProgress(90, 25, StatusInProgress)
	if progress != 100 {
		t.Fatalf("expected progress clamped to 100, got %d", progress)
	}
	if status != StatusCompleted {
		t.Fatalf("expected completed at full progress, got %s", status)
	}
}

func TestAdvanceProgressPartial(t *testing.T) {
	progress, status := AdvanceProgress(60, 25, StatusInProgress)
	if progress != 85 {
		t.Fatalf("expected 85, got %d", progress)
	}
	if status != StatusInProgress {
		t.Fatalf("expected in_progress below full, got %s", status)
	}
}

func TestAdvanceProgressNeverRegressesCompleted(t *testing.T) {
	_, status := AdvanceProgress(100, 0, StatusCompleted)
	if status != StatusCompleted {
		t.Fatalf("completed goal must stay completed, got %s", status)
	}
}

func TestClampProgressBounds(t *testing.T) {
	if got := ClampProgress(-5); got != 0 {
		t.Fatalf("expected 0 for negative input, got %d", got)
	}
	if got := ClampProgress(115); got != 100 {
		t.Fatalf("expected 100 for overflow, got %d", got)
	}
	if got := ClampProgress(42); got != 42 {
		t.Fatalf("expected passthrough, got %d", got)
	}
}

func TestStatusForUpdate(t *testing.T) {
	if got := StatusForUpdate(0, StatusNotStarted); got != StatusNotStarted {
		t.Fatalf("expected not_started at zero, got %s", got)
	}
	if got := StatusForUpdate(40, StatusNotStarted); got != StatusInProgress {
		t.Fatalf("expected in_progress, got %s", got)
	}
	if got := StatusForUpdate(100, StatusInProgress); got != StatusCompleted {
		t.Fatalf("expected completed, got %s", got)
	}
	if got := StatusForUpdate(10, StatusCompleted); got != StatusCompleted {
		t.Fatalf("completed must not regress, got %s", got)
	}
}
