package services

import (
	"context"
	"fmt"

	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
)

// Timeline is the home feed of a visitor.
type Timeline struct {
	// Anonymous is set when there is no signed-in user; Messages is then empty.
	Anonymous bool
	Messages  []models.Message
}

// FeedService assembles timelines and per-user message lists.
type FeedService struct {
	messageRepo repository.MessageRepository
	followRepo  repository.FollowRepository
}

// NewFeedService creates a new FeedService.
func NewFeedService(messageRepo repository.MessageRepository, followRepo repository.FollowRepository) *FeedService {
	return &FeedService{
		messageRepo: messageRepo,
		followRepo:  followRepo,
	}
}

// TimelineFor returns the newest messages written by actor or anyone actor follows.
func (s *FeedService) TimelineFor(ctx context.Context, actor *models.User, limit int) (*Timeline, error) {
	if actor == nil {
		return &Timeline{Anonymous: true, Messages: []models.Message{}}, nil
	}

	following, err := s.followRepo.FollowingIDs(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load following: %w", err)
	}

	owners := append([]uint64{actor.ID}, following...)
	messages, err := s.messageRepo.ListByUserIDs(ctx, owners, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}

	return &Timeline{Messages: messages}, nil
}

// MessagesOf returns the newest messages of one author. Unknown users have none.
func (s *FeedService) MessagesOf(ctx context.Context, userID uint64, limit int) ([]models.Message, error) {
	messages, err := s.messageRepo.ListByUserIDs(ctx, []uint64{userID}, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return messages, nil
}
