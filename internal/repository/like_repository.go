package repository

import (
	"context"

	"github.com/yukikurage/warbler/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLikeRepository is a GORM implementation of LikeRepository
type GormLikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new LikeRepository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &GormLikeRepository{db: db}
}

// Toggle flips the like state in a single transaction.
// If the insert conflicts, a concurrent toggle already created the like,
// which leaves the same state this call would have produced.
func (r *GormLikeRepository) Toggle(ctx context.Context, userID, messageID uint64) (bool, error) {
	liked := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND message_id = ?", userID, messageID).Delete(&models.Like{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected > 0 {
			return nil
		}

		like := &models.Like{
			UserID:    userID,
			MessageID: messageID,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like).Error; err != nil {
			return err
		}

		liked = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return liked, nil
}

// Exists checks whether a like exists
func (r *GormLikeRepository) Exists(ctx context.Context, userID, messageID uint64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND message_id = ?", userID, messageID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListLikedMessages lists liked messages with their authors
func (r *GormLikeRepository) ListLikedMessages(ctx context.Context, userID uint64) ([]models.Message, error) {
	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN likes ON likes.message_id = messages.id").
		Where("likes.user_id = ?", userID).
		Order("likes.id").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
