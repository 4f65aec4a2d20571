package performance

// ClampProgress bounds a progress percentage to [0, 100].
func ClampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// AdvanceProgress applies an increment to a goal's progress and derives the
// resulting status. Progress is clamped to 100; status becomes completed
// only at full progress and never regresses from completed.
func AdvanceProgress(progress, increment int, currentStatus string) (int, string) {
	next := ClampProgress(progress + increment)
	if currentStatus == StatusCompleted {
		return next, StatusCompleted
	}
	if next >= 100 {
		return 100, StatusCompleted
	}
	return next, StatusInProgress
}

// StatusForUpdate derives the status for a manual progress update. A goal
// already marked completed stays completed regardless of the new value.
func StatusForUpdate(progress int, currentStatus string) string {
	if currentStatus == StatusCompleted {
		return StatusCompleted
	}
	switch {
	case progress >= 100:
		return StatusCompleted
	case progress > 0:
		return StatusInProgress
	default:
		return StatusNotStarted
	}
}
