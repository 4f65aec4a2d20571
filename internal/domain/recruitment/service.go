package recruitment

import "context"

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) CreatePosting(ctx context.Context, title, departmentID, description string) (*Posting, error) {
	return s.store.CreatePosting(ctx, title, departmentID, description)
}

func (s *Service) ClosePosting(ctx context.Context, postingID string) error {
	return s.store.ClosePosting(ctx, postingID)
}

func (s *Service) ListPostings(ctx context.Context, status string) ([]Posting, error) {
	return s.store.ListPostings(ctx, status)
}

func (s *Service) Apply(ctx context.Context, postingID, candidateName, email, notes string) (*Application, error) {
	return s.store.Apply(ctx, postingID, candidateName, email, notes)
}

// MoveStage validates the transition against the pipeline rules before
// touching the database.
func (s *Service) MoveStage(ctx context.Context, applicationID, to string) (*Application, error) {
	app, err := s.store.GetApplication(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !CanMove(app.Stage, to) {
		return nil, ErrInvalidMove
	}
	return s.store.MoveStage(ctx, applicationID, app.Stage, to)
}

func (s *Service) ListApplications(ctx context.Context, postingID, stage string) ([]Application, error) {
	return s.store.ListApplications(ctx, postingID, stage)
}

func (s *Service) PipelineStats(ctx context.Context, postingID string) (*PipelineStats, error) {
	return s.store.PipelineStats(ctx, postingID)
}
