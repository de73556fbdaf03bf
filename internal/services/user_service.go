package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/warbler/internal/cache"
	"github.com/yukikurage/warbler/internal/constants"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrIncorrectPassword = errors.New("incorrect password")

// ProfileStats are the counters shown next to a profile.
type ProfileStats = repository.UserStats

// Profile is a user together with its counters.
type Profile struct {
	User  *models.User
	Stats ProfileStats
}

// UserService provides profile management and user listing.
type UserService struct {
	userRepo repository.UserRepository
	cache    *cache.Store
}

// NewUserService creates a new UserService. store may be nil.
func NewUserService(userRepo repository.UserRepository, store *cache.Store) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    store,
	}
}

// UpdateProfileInput holds the fields to change. Nil fields are kept.
type UpdateProfileInput struct {
	Username       *string
	Email          *string
	ImageURL       *string
	HeaderImageURL *string
	Bio            *string
	Location       *string
}

type profileFields struct {
	Username       string `json:"username" validate:"required,max=50"`
	Email          string `json:"email" validate:"required,email,max=255"`
	ImageURL       string `json:"image_url" validate:"max=2048"`
	HeaderImageURL string `json:"header_image_url" validate:"max=2048"`
	Bio            string `json:"bio" validate:"max=140"`
	Location       string `json:"location" validate:"max=140"`
}

// UpdateProfile applies input to the actor after re-checking their password.
// The actor value itself is never modified; the saved copy is returned.
func (s *UserService) UpdateProfile(ctx context.Context, actor *models.User, input UpdateProfileInput, confirmationPassword string) (*models.User, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	current, err := findUser(ctx, s.userRepo, actor.ID)
	if err != nil {
		return nil, err
	}

	if !VerifyPassword(confirmationPassword, current.PasswordHash) {
		return nil, ErrIncorrectPassword
	}

	updated := *current
	applyTrimmed(&updated.Username, input.Username)
	applyTrimmed(&updated.Email, input.Email)
	applyTrimmed(&updated.ImageURL, input.ImageURL)
	applyTrimmed(&updated.HeaderImageURL, input.HeaderImageURL)
	applyTrimmed(&updated.Bio, input.Bio)
	applyTrimmed(&updated.Location, input.Location)

	updated.ImageURL = valueOr(updated.ImageURL, constants.DefaultImageURL)
	updated.HeaderImageURL = valueOr(updated.HeaderImageURL, constants.DefaultHeaderImageURL)

	if err := validateStruct(profileFields{
		Username:       updated.Username,
		Email:          updated.Email,
		ImageURL:       updated.ImageURL,
		HeaderImageURL: updated.HeaderImageURL,
		Bio:            updated.Bio,
		Location:       updated.Location,
	}); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, &updated); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrUsernameOrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &updated, nil
}

func applyTrimmed(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}

// DeleteAccount removes the actor together with their messages, likes and follow edges.
func (s *UserService) DeleteAccount(ctx context.Context, actor *models.User) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	affected, err := s.userRepo.Delete(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.cache.InvalidateProfileStats(ctx, append(affected, actor.ID)...)
	logger.Info("user deleted", zap.Uint64("user_id", actor.ID), zap.Int("affected_users", len(affected)))
	return nil
}

// ListUsers returns every user, or those whose username contains q.
func (s *UserService) ListUsers(ctx context.Context, q string) ([]models.User, error) {
	users, err := s.userRepo.Search(ctx, strings.TrimSpace(q))
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetProfile returns the user and its counters. Counters are cached.
func (s *UserService) GetProfile(ctx context.Context, id uint64) (*Profile, error) {
	user, err := findUser(ctx, s.userRepo, id)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: user}
	err = s.cache.Aside(ctx, cache.ProfileStatsKey(id), &profile.Stats, constants.ProfileStatsTTL, func() error {
		stats, err := s.userRepo.Stats(ctx, id)
		if err != nil {
			return err
		}
		profile.Stats = *stats
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count profile stats: %w", err)
	}

	return profile, nil
}
