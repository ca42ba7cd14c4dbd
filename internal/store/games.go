package store

import (
	"context"
	"fmt"

	"gamelist/backend/internal/models"
)

// CreateGame inserts a game into game.ListID.
func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	if err := s.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	s.logger.Info("Created game with id ", game.ID, " in list ", game.ListID)
	return nil
}

// GameByID fetches a single game.
func (s *Store) GameByID(ctx context.Context, id uint) (*models.Game, error) {
	var game models.Game
	if err := s.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, notFound(err, "game", id)
	}
	return &game, nil
}

// UpdateGameReview stores the owner's rating and review.
func (s *Store) UpdateGameReview(ctx context.Context, id uint, rating int, review string) error {
	result := s.db.WithContext(ctx).Model(&models.Game{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating": rating,
		"review": review,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update game %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("game %d: %w", id, ErrNotFound)
	}
	return nil
}

// DeleteGame removes a game from its list.
func (s *Store) DeleteGame(ctx context.Context, id uint) error {
	return deleted(s.db.WithContext(ctx).Delete(&models.Game{}, id), "game", id)
}
