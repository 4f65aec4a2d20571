package notifications

import "context"

// Service satisfies the notifier interfaces the other domains declare.
type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(ctx context.Context, employeeID, ntype, title, body string) error {
	return s.store.Create(ctx, employeeID, ntype, title, body)
}

func (s *Service) List(ctx context.Context, employeeID string, unreadOnly bool, limit, offset int) ([]Notification, error) {
	return s.store.ListByEmployee(ctx, employeeID, unreadOnly, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, employeeID string) (int, error) {
	return s.store.UnreadCount(ctx, employeeID)
}

func (s *Service) MarkRead(ctx context.Context, employeeID, notificationID string) error {
	return s.store.MarkRead(ctx, employeeID, notificationID)
}

func (s *Service) MarkAllRead(ctx context.Context, employeeID string) error {
	return s.store.MarkAllRead(ctx, employeeID)
}
