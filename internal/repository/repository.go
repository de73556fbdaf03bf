package repository

import (
	"context"

	"github.com/yukikurage/warbler/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a user; unique violations return ErrDuplicateEntry
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByUsername finds a user by exact, case-sensitive username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update saves all user columns; unique violations return ErrDuplicateEntry
	Update(ctx context.Context, user *models.User) error

	// Search lists users whose username contains query, or all users when query is empty
	Search(ctx context.Context, query string) ([]models.User, error)

	// Delete removes a user with its messages, likes and follow edges.
	// It returns the IDs of other users whose counters changed.
	Delete(ctx context.Context, id uint64) ([]uint64, error)

	// Stats counts the user's messages, follow edges and likes
	Stats(ctx context.Context, id uint64) (*UserStats, error)
}

// UserStats holds the counters shown on a profile page
type UserStats struct {
	Messages  int64 `json:"messages"`
	Following int64 `json:"following"`
	Followers int64 `json:"followers"`
	Likes     int64 `json:"likes"`
}

// MessageRepository defines the interface for message data access
type MessageRepository interface {
	// Create creates a new message
	Create(ctx context.Context, message *models.Message) error

	// FindByID finds a message by ID with optional preloading
	FindByID(ctx context.Context, id uint64, preload ...string) (*models.Message, error)

	// ListByUserIDs returns messages authored by any of userIDs, newest first
	ListByUserIDs(ctx context.Context, userIDs []uint64, limit int) ([]models.Message, error)

	// Delete removes a message and the likes that reference it.
	// It returns the IDs of the users whose likes were removed.
	Delete(ctx context.Context, id uint64) ([]uint64, error)
}

// FollowRepository defines the interface for the follow graph
type FollowRepository interface {
	// Create inserts the edge follower -> followee, doing nothing if it exists
	Create(ctx context.Context, followerID, followeeID uint64) error

	// Delete removes the edge follower -> followee if present
	Delete(ctx context.Context, followerID, followeeID uint64) error

	// Exists reports whether follower -> followee exists
	Exists(ctx context.Context, followerID, followeeID uint64) (bool, error)

	// ListFollowing lists the users userID follows
	ListFollowing(ctx context.Context, userID uint64) ([]models.User, error)

	// ListFollowers lists the users following userID
	ListFollowers(ctx context.Context, userID uint64) ([]models.User, error)

	// FollowingIDs returns the IDs of the users userID follows
	FollowingIDs(ctx context.Context, userID uint64) ([]uint64, error)
}

// LikeRepository defines the interface for user/message likes
type LikeRepository interface {
	// Toggle removes the like if present, otherwise adds it. It reports whether
	// the like exists afterwards.
	Toggle(ctx context.Context, userID, messageID uint64) (bool, error)

	// Exists reports whether userID likes messageID
	Exists(ctx context.Context, userID, messageID uint64) (bool, error)

	// ListLikedMessages lists messages liked by userID in like order
	ListLikedMessages(ctx context.Context, userID uint64) ([]models.Message, error)
}
