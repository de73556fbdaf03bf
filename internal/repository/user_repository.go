package repository

import (
	"context"
	"fmt"

	"github.com/yukikurage/warbler/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateEntry
		}
		return fmt.Errorf("update user %d: %w", user.ID, err)
	}
	return nil
}

// Search lists users by username substring
func (r *GormUserRepository) Search(ctx context.Context, query string) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Order("id")
	if query != "" {
		q = q.Where("username LIKE ?", "%"+query+"%")
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete deletes a user and everything that references it in a transaction
func (r *GormUserRepository) Delete(ctx context.Context, id uint64) ([]uint64, error) {
	var affected []uint64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var followed, followers, likers []uint64

		if err := tx.Model(&models.Follow{}).
			Where("user_following_id = ?", id).
			Pluck("user_being_followed_id", &followed).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Follow{}).
			Where("user_being_followed_id = ?", id).
			Pluck("user_following_id", &followers).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Like{}).
			Joins("JOIN messages ON messages.id = likes.message_id").
			Where("messages.user_id = ? AND likes.user_id <> ?", id, id).
			Distinct().
			Pluck("likes.user_id", &likers).Error; err != nil {
			return err
		}

		// Likes made by the user
		if err := tx.Where("user_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		// Likes on the user's messages
		ownMessages := tx.Model(&models.Message{}).Select("id").Where("user_id = ?", id)
		if err := tx.Where("message_id IN (?)", ownMessages).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_following_id = ? OR user_being_followed_id = ?", id, id).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		affected = uniqueIDs(id, followed, followers, likers)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return affected, nil
}

// Stats counts profile counters for a user
func (r *GormUserRepository) Stats(ctx context.Context, id uint64) (*UserStats, error) {
	db := r.db.WithContext(ctx)
	var stats UserStats

	if err := db.Model(&models.Message{}).Where("user_id = ?", id).Count(&stats.Messages).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Follow{}).Where("user_following_id = ?", id).Count(&stats.Following).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Follow{}).Where("user_being_followed_id = ?", id).Count(&stats.Followers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Like{}).Where("user_id = ?", id).Count(&stats.Likes).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// uniqueIDs merges id lists, dropping duplicates and the excluded id
func uniqueIDs(exclude uint64, lists ...[]uint64) []uint64 {
	seen := map[uint64]struct{}{exclude: {}}
	result := make([]uint64, 0)

	for _, list := range lists {
		for _, v := range list {
			if _, exists := seen[v]; exists {
				continue
			}
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}

	return result
}
