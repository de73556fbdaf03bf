package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/warbler/internal/cache"
	"github.com/yukikurage/warbler/internal/metrics"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
	"gorm.io/gorm"
)

// LikeResult is the state a toggle left behind.
type LikeResult string

const (
	LikeResultLiked   LikeResult = "liked"
	LikeResultUnliked LikeResult = "unliked"
)

// LikeService manages user likes on messages.
type LikeService struct {
	likeRepo    repository.LikeRepository
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	cache       *cache.Store
}

// NewLikeService creates a new LikeService.
func NewLikeService(likeRepo repository.LikeRepository, messageRepo repository.MessageRepository, userRepo repository.UserRepository, store *cache.Store) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		cache:       store,
	}
}

// ToggleLike likes the message if actor has not liked it yet, otherwise removes the like.
func (s *LikeService) ToggleLike(ctx context.Context, actor *models.User, messageID uint64) (LikeResult, error) {
	if actor == nil {
		return "", ErrNotAuthenticated
	}

	if _, err := s.messageRepo.FindByID(ctx, messageID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrMessageNotFound
		}
		return "", fmt.Errorf("failed to find message: %w", err)
	}

	liked, err := s.likeRepo.Toggle(ctx, actor.ID, messageID)
	if err != nil {
		return "", fmt.Errorf("failed to toggle like: %w", err)
	}

	result := LikeResultUnliked
	if liked {
		result = LikeResultLiked
	}

	metrics.LikesToggled.WithLabelValues(string(result)).Inc()
	s.cache.InvalidateProfileStats(ctx, actor.ID)
	return result, nil
}

// LikesOf lists the messages userID has liked, oldest like first.
func (s *LikeService) LikesOf(ctx context.Context, userID uint64) ([]models.Message, error) {
	if _, err := findUser(ctx, s.userRepo, userID); err != nil {
		return nil, err
	}

	messages, err := s.likeRepo.ListLikedMessages(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list likes: %w", err)
	}
	return messages, nil
}

// IsLiked reports whether userID likes messageID.
func (s *LikeService) IsLiked(ctx context.Context, userID, messageID uint64) (bool, error) {
	return s.likeRepo.Exists(ctx, userID, messageID)
}
