package recruitment

// pipeline order for forward moves; rejected is reachable from any
// non-terminal stage.
var stageOrder = map[string]int{
	StageApplied:   0,
	StageScreening: 1,
	StageInterview: 2,
	StageOffer:     3,
	StageHired:     4,
}

func IsStage(stage string) bool {
	if stage == StageRejected {
		return true
	}
	_, ok := stageOrder[stage]
	return ok
}

// CanMove reports whether an application may move from one stage to
// another. Moves go forward one step at a time; hired and rejected are
// terminal.
func CanMove(from, to string) bool {
	if from == StageHired || from == StageRejected {
		return false
	}
	if to == StageRejected {
		return true
	}
	fromIdx, ok := stageOrder[from]
	if !ok {
		return false
	}
	toIdx, ok := stageOrder[to]
	if !ok {
		return false
	}
	return toIdx == fromIdx+1
}
