package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yukikurage/warbler/internal/models"
	"github.com/yukikurage/warbler/internal/repository"
	"gorm.io/gorm"
)

// findUser maps a missing row to ErrUserNotFound.
func findUser(ctx context.Context, repo repository.UserRepository, id uint64) (*models.User, error) {
	user, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// valueOr returns fallback when s is empty.
func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
