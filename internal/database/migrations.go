package database

import (
	"fmt"

	"github.com/yukikurage/warbler/internal/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type indexDef struct {
	table   string
	name    string
	columns string
}

// Composite indexes that struct tags do not express.
var extraIndexes = []indexDef{
	// Timeline and profile pages filter by author and sort by time
	{"messages", "idx_messages_user_timestamp", "user_id, timestamp"},
	// Followers page
	{"follows", "idx_follows_followed_created", "user_being_followed_id, created_at"},
}

// AddIndexes creates the composite indexes that are missing.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range extraIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logger.Debug("Index already exists, skipping", zap.String("index", idx.name))
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logger.Info("Created index",
			zap.String("index", idx.name),
			zap.String("table", idx.table),
			zap.String("columns", idx.columns),
		)
	}

	return nil
}
