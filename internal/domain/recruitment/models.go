package recruitment

import "time"

const (
	PostingStatusOpen   = "open"
	PostingStatusClosed = "closed"

	StageApplied   = "applied"
	StageScreening = "screening"
	StageInterview = "interview"
	StageOffer     = "offer"
	StageHired     = "hired"
	StageRejected  = "rejected"
)

type Posting struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	DepartmentID string     `json:"departmentId,omitempty"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	OpenedAt     time.Time  `json:"openedAt"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
}

type Application struct {
	ID            string    `json:"id"`
	PostingID     string    `json:"postingId"`
	CandidateName string    `json:"candidateName"`
	Email         string    `json:"email"`
	Stage         string    `json:"stage"`
	Notes         string    `json:"notes,omitempty"`
	AppliedAt     time.Time `json:"appliedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PipelineStats counts applications per stage for one posting.
type PipelineStats struct {
	PostingID string         `json:"postingId"`
	Total     int            `json:"total"`
	ByStage   map[string]int `json:"byStage"`
}
