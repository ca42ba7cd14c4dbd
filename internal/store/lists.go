package store

import (
	"context"
	"fmt"

	"gamelist/backend/internal/models"

	"gorm.io/gorm"
)

// CreateList inserts a list for list.AuthorID.
func (s *Store) CreateList(ctx context.Context, list *models.List) error {
	if err := s.db.WithContext(ctx).Create(list).Error; err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	s.logger.Info("Created list with id ", list.ID)
	return nil
}

// ListByID fetches a list without its games.
func (s *Store) ListByID(ctx context.Context, id uint) (*models.List, error) {
	var list models.List
	if err := s.db.WithContext(ctx).First(&list, id).Error; err != nil {
		return nil, notFound(err, "list", id)
	}
	return &list, nil
}

// ListWithGames fetches a list with its games in creation order.
func (s *Store) ListWithGames(ctx context.Context, id uint) (*models.List, error) {
	var list models.List
	err := s.db.WithContext(ctx).
		Preload("Games", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&list, id).Error
	if err != nil {
		return nil, notFound(err, "list", id)
	}
	return &list, nil
}

// UpdateList overwrites the editable fields of a list.
func (s *Store) UpdateList(ctx context.Context, list *models.List) error {
	err := s.db.WithContext(ctx).Model(list).Select("Name", "Description", "ImgURL").Updates(models.List{
		Name:        list.Name,
		Description: list.Description,
		ImgURL:      list.ImgURL,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to update list %d: %w", list.ID, err)
	}
	return nil
}

// SetListSorted stores the display flag of a list.
func (s *Store) SetListSorted(ctx context.Context, id uint, sorted bool) error {
	result := s.db.WithContext(ctx).Model(&models.List{}).Where("id = ?", id).Update("sorted", sorted)
	if result.Error != nil {
		return fmt.Errorf("failed to update list %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("list %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteList removes a list and its games.
func (s *Store) DeleteList(ctx context.Context, id uint) error {
	if err := deleted(s.db.WithContext(ctx).Delete(&models.List{}, id), "list", id); err != nil {
		return err
	}
	s.logger.Info("Deleted list with id ", id)
	return nil
}
