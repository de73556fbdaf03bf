package repository

import (
	"context"

	"github.com/yukikurage/warbler/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFollowRepository is a GORM implementation of FollowRepository
type GormFollowRepository struct {
	db *gorm.DB
}

// NewFollowRepository creates a new FollowRepository
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &GormFollowRepository{db: db}
}

// Create inserts a follow edge; an existing edge is left untouched
func (r *GormFollowRepository) Create(ctx context.Context, followerID, followeeID uint64) error {
	follow := &models.Follow{
		UserBeingFollowedID: followeeID,
		UserFollowingID:     followerID,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(follow).Error
}

// Delete removes a follow edge
func (r *GormFollowRepository) Delete(ctx context.Context, followerID, followeeID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

// Exists checks for a follow edge
func (r *GormFollowRepository) Exists(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_following_id = ? AND user_being_followed_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListFollowing lists followed users ordered by ID
func (r *GormFollowRepository) ListFollowing(ctx context.Context, userID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.user_being_followed_id = users.id").
		Where("follows.user_following_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListFollowers lists following users ordered by ID
func (r *GormFollowRepository) ListFollowers(ctx context.Context, userID uint64) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN follows ON follows.user_following_id = users.id").
		Where("follows.user_being_followed_id = ?", userID).
		Order("users.id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// FollowingIDs returns the IDs of followed users
func (r *GormFollowRepository) FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error) {
	var ids []uint64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("user_following_id = ?", userID).
		Pluck("user_being_followed_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
