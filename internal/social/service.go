package social

import "context"

// GraphStore is the persistence surface the service depends on
type GraphStore interface {
	FollowingNames(ctx context.Context, userID int64) ([]string, error)
	FollowerNames(ctx context.Context, userID int64) ([]string, error)
}

// Service handles social graph queries
type Service struct {
	store GraphStore
}

// NewService creates a new social service
func NewService(store GraphStore) *Service {
	return &Service{store: store}
}

// Following returns the display names the user follows
func (s *Service) Following(ctx context.Context, userID int64) ([]string, error) {
	return s.store.FollowingNames(ctx, userID)
}

// Followers returns the display names following the user
func (s *Service) Followers(ctx context.Context, userID int64) ([]string, error) {
	return s.store.FollowerNames(ctx, userID)
}
