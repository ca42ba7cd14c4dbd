// Package store is the persistence layer for users, lists and games.
package store

import (
	"errors"
	"fmt"

	"gamelist/backend/internal/logger"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a lookup by key matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when registering an email that is already taken.
	ErrDuplicateEmail = errors.New("email already in use")
)

// Store executes queries against the application database.
type Store struct {
	db     *gorm.DB
	logger logger.Logger
}

// New creates a Store over an open connection.
func New(db *gorm.DB, logger logger.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return fmt.Errorf("failed to fetch %s %d: %w", what, id, err)
}

// deleted maps a zero-row delete to ErrNotFound.
func deleted(result *gorm.DB, what string, id uint) error {
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s %d: %w", what, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
	}
	return nil
}
