package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/warbler/internal/cache"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
)

var ErrCannotFollowSelf = errors.New("cannot follow yourself")

// FollowService manages the directed follow graph.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	cache      *cache.Store
}

// NewFollowService creates a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository, store *cache.Store) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		cache:      store,
	}
}

// Follow makes actor follow followeeID. Following twice is a no-op.
func (s *FollowService) Follow(ctx context.Context, actor *models.User, followeeID uint64) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if actor.ID == followeeID {
		return ErrCannotFollowSelf
	}
	if _, err := findUser(ctx, s.userRepo, followeeID); err != nil {
		return err
	}

	if err := s.followRepo.Create(ctx, actor.ID, followeeID); err != nil {
		return fmt.Errorf("failed to follow user: %w", err)
	}

	s.cache.InvalidateProfileStats(ctx, actor.ID, followeeID)
	return nil
}

// Unfollow removes the edge actor -> followeeID if it exists.
func (s *FollowService) Unfollow(ctx context.Context, actor *models.User, followeeID uint64) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if _, err := findUser(ctx, s.userRepo, followeeID); err != nil {
		return err
	}

	if err := s.followRepo.Delete(ctx, actor.ID, followeeID); err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}

	s.cache.InvalidateProfileStats(ctx, actor.ID, followeeID)
	return nil
}

// IsFollowing reports whether a follows b.
func (s *FollowService) IsFollowing(ctx context.Context, a, b uint64) (bool, error) {
	return s.followRepo.Exists(ctx, a, b)
}

// IsFollowedBy reports whether b follows a.
func (s *FollowService) IsFollowedBy(ctx context.Context, a, b uint64) (bool, error) {
	return s.followRepo.Exists(ctx, b, a)
}

// Following lists who userID follows. Only signed-in users may browse it.
func (s *FollowService) Following(ctx context.Context, actor *models.User, userID uint64) ([]models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if _, err := findUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list following: %w", err)
	}
	return users, nil
}

// Followers lists who follows userID. Only signed-in users may browse it.
func (s *FollowService) Followers(ctx context.Context, actor *models.User, userID uint64) ([]models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if _, err := findUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	users, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list followers: %w", err)
	}
	return users, nil
}
