package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrDuplicateEntry is returned when a write violates a unique constraint.
var ErrDuplicateEntry = errors.New("repository: duplicate entry")

// isDuplicateEntryError recognises unique-constraint failures from the supported drivers.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || // SQLite
		strings.Contains(msg, "duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value") || // PostgreSQL
		strings.Contains(msg, "23505")
}
