package database

import (
	"gorm.io/gorm"

	"github.com/yukikurage/warbler/internal/constants"
)

// Recent orders messages newest first and caps the result size.
// Out-of-range limits fall back to the default timeline size.
func Recent(limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("messages.timestamp DESC").
			Order("messages.id DESC").
			Limit(NormalizeLimit(limit))
	}
}

// NormalizeLimit clamps a requested feed size.
func NormalizeLimit(limit int) int {
	if limit <= 0 || limit > constants.MaxTimelineLimit {
		return constants.DefaultTimelineLimit
	}
	return limit
}
