package store

import (
	"context"
	"errors"
	"fmt"

	"gamelist/backend/internal/models"

	"gorm.io/gorm"
)

// CreateUser inserts a new user. The email must not be registered yet.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := s.UserByEmail(ctx, user.Email); err == nil {
		return ErrDuplicateEmail
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("Created user with id ", user.ID)
	return nil
}

// UserByID fetches a user without associations.
func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// UserByEmail fetches a user by login email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// UserWithLists fetches a user and the lists it authored, oldest first.
func (s *Store) UserWithLists(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Preload("Lists", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return &user, nil
}

// DeleteUser removes a user. Its lists and their games go with it.
func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	if err := deleted(s.db.WithContext(ctx).Delete(&models.User{}, id), "user", id); err != nil {
		return err
	}
	s.logger.Info("Deleted user with id ", id)
	return nil
}
