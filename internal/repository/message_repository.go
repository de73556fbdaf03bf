package repository

import (
	"context"

	"github.com/yukikurage/warbler/internal/database"
	"github.com/yukikurage/warbler/internal/models"
	"gorm.io/gorm"
)

// GormMessageRepository is a GORM implementation of MessageRepository
type GormMessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &GormMessageRepository{db: db}
}

// Create creates a new message
func (r *GormMessageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID finds a message by ID with optional preloading
func (r *GormMessageRepository) FindByID(ctx context.Context, id uint64, preload ...string) (*models.Message, error) {
	var message models.Message
	query := r.db.WithContext(ctx)

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&message, id).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// ListByUserIDs returns the newest messages of the given authors
func (r *GormMessageRepository) ListByUserIDs(ctx context.Context, userIDs []uint64, limit int) ([]models.Message, error) {
	if len(userIDs) == 0 {
		return []models.Message{}, nil
	}

	var messages []models.Message
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("messages.user_id IN ?", userIDs).
		Scopes(database.Recent(limit)).
		Find(&messages).Error; err != nil {
		return nil, err
	}

	return messages, nil
}

// Delete removes a message and its likes
func (r *GormMessageRepository) Delete(ctx context.Context, id uint64) ([]uint64, error) {
	var likers []uint64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Like{}).
			Where("message_id = ?", id).
			Pluck("user_id", &likers).Error; err != nil {
			return err
		}

		if err := tx.Where("message_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Message{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return likers, nil
}
