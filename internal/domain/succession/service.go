package succession

import (
	"context"
	"errors"
)

var ErrBadReadiness = errors.New("succession: unknown readiness level")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, keyPosition, incumbentID, candidateID, readiness, notes string) (*Plan, error) {
	if !IsReadiness(readiness) {
		return nil, ErrBadReadiness
	}
	return s.store.Create(ctx, keyPosition, incumbentID, candidateID, readiness, notes)
}

func (s *Service) UpdateReadiness(ctx context.Context, planID, readiness, notes string) (*Plan, error) {
	if !IsReadiness(readiness) {
		return nil, ErrBadReadiness
	}
	return s.store.UpdateReadiness(ctx, planID, readiness, notes)
}

func (s *Service) Delete(ctx context.Context, planID string) error {
	return s.store.Delete(ctx, planID)
}

func (s *Service) List(ctx context.Context, keyPosition string) ([]Plan, error) {
	return s.store.List(ctx, keyPosition)
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	return s.store.Stats(ctx)
}
