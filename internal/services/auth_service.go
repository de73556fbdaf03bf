package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/warbler/internal/constants"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/metrics"
	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrUsernameOrEmailTaken = errors.New("username or email already taken")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotAuthenticated     = errors.New("not authenticated")
)

// AuthService handles signup, credential checks and user lookup.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the information required to create a user.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"-"`
	ImageURL string `json:"image_url" validate:"max=2048"`
}

// NewUser validates input and builds an unsaved user with a hashed password.
func NewUser(input SignupInput) (*models.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	input.ImageURL = strings.TrimSpace(input.ImageURL)

	if err := validateStruct(input); err != nil {
		return nil, err
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Username:       input.Username,
		Email:          input.Email,
		ImageURL:       valueOr(input.ImageURL, constants.DefaultImageURL),
		HeaderImageURL: constants.DefaultHeaderImageURL,
		PasswordHash:   hashed,
	}, nil
}

// Signup creates a user. Uniqueness of username and email is enforced by the store.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*models.User, error) {
	user, err := NewUser(input)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrUsernameOrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	metrics.Signups.Inc()
	logger.Info("user signed up", zap.Uint64("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Authenticate returns the user when username and password match.
// A nil user with a nil error means the credentials were rejected.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.Logins.WithLabelValues("failure").Inc()
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Some collations compare case-insensitively
	if user.Username != username || !VerifyPassword(password, user.PasswordHash) {
		metrics.Logins.WithLabelValues("failure").Inc()
		return nil, nil
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id uint64) (*models.User, error) {
	return findUser(ctx, s.userRepo, id)
}
