package recruitment

import "testing"

func TestCanMoveForward(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{StageApplied, StageScreening, true},
		{StageScreening, StageInterview, true},
		{StageInterview, StageOffer, true},
		{StageOffer, StageHired, true},
		{StageApplied, StageInterview, false},
		{StageApplied, StageOffer, false},
		{StageScreening, StageApplied, false},
		{StageOffer, StageScreening, false},
	}
	for _, tc := range cases {
		if got := CanMove(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanMove(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanMoveRejection(t *testing.T) {
	for _, from := range []string{StageApplied, StageScreening, StageInterview, StageOffer} {
		if !CanMove(from, StageRejected) {
			t.Fatalf("expected rejection allowed from %s", from)
		}
	}
}

func TestTerminalStages(t *testing.T) {
	if CanMove(StageHired, StageRejected) {
		t.Fatal("hired must be terminal")
	}
	if CanMove(StageRejected, StageScreening) {
		t.Fatal("rejected must be terminal")
	}
	if CanMove(StageRejected, StageRejected) {
		t.Fatal("rejected must not move again")
	}
}

func TestCanMoveUnknownStages(t *testing.T) {
	if CanMove("withdrawn", StageScreening) {
		t.Fatal("unknown source stage must not move")
	}
	if CanMove(StageApplied, "shortlist") {
		t.Fatal("unknown target stage must not move")
	}
}
