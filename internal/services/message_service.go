package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/yukikurage/warbler/internal/cache"
	"github.com/yukikurage/warbler/internal/constants"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageTooLong  = errors.New("message too long")
	ErrEmptyMessage    = errors.New("message text is required")
	ErrNotMessageOwner = errors.New("message belongs to another user")
)

// MessageService handles posting and removing warbles.
type MessageService struct {
	messageRepo repository.MessageRepository
	cache       *cache.Store
	now         func() time.Time
}

// NewMessageService creates a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, store *cache.Store) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		cache:       store,
		now:         time.Now,
	}
}

// Create posts a message as actor.
func (s *MessageService) Create(ctx context.Context, actor *models.User, text string) (*models.Message, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > constants.MaxMessageLength {
		return nil, ErrMessageTooLong
	}

	message := &models.Message{
		Text:      text,
		Timestamp: s.now().UTC(),
		UserID:    actor.ID,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	message.User = *actor

	s.cache.InvalidateProfileStats(ctx, actor.ID)
	return message, nil
}

// Get returns a message with its author.
func (s *MessageService) Get(ctx context.Context, id uint64) (*models.Message, error) {
	message, err := s.messageRepo.FindByID(ctx, id, "User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to find message: %w", err)
	}
	return message, nil
}

// Delete removes a message owned by actor.
func (s *MessageService) Delete(ctx context.Context, actor *models.User, id uint64) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	message, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.Remove(ctx, actor, message)
}

// Remove deletes an already loaded message, checking ownership but not reloading it.
func (s *MessageService) Remove(ctx context.Context, actor *models.User, message *models.Message) error {
	if actor == nil {
		return ErrNotAuthenticated
	}
	if message.UserID != actor.ID {
		return ErrNotMessageOwner
	}

	likers, err := s.messageRepo.Delete(ctx, message.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to delete message: %w", err)
	}

	s.cache.InvalidateProfileStats(ctx, append(likers, actor.ID)...)
	return nil
}
