package succession

import "time"

const (
	ReadinessReady    = "ready_now"
	ReadinessOneYear  = "ready_1_year"
	ReadinessTwoYears = "ready_2_years"
	ReadinessDevelop  = "develop"
)

type Plan struct {
	ID          string    `json:"id"`
	KeyPosition string    `json:"keyPosition"`
	IncumbentID string    `json:"incumbentId,omitempty"`
	CandidateID string    `json:"candidateId"`
	Readiness   string    `json:"readiness"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Stats struct {
	Plans        int            `json:"plans"`
	KeyPositions int            `json:"keyPositions"`
	ByReadiness  map[string]int `json:"byReadiness"`
}
