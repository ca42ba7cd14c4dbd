package models

import (
	"slices"
	"time"
)

// Rating bounds for a game review.
const (
	MinRating = 0
	MaxRating = 100
)

// Game is a catalog entry saved into a list, with the owner's rating and review.
type Game struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string  `gorm:"size:250;not null"`
	Year        int     `gorm:"not null"`
	Description string  `gorm:"size:250;not null"`
	Rating      *int    `gorm:"check:rating IS NULL OR (rating >= 0 AND rating <= 100)"`
	Review      *string `gorm:"size:250"`
	ImgURL      string  `gorm:"size:250;not null"`
	ListID      uint    `gorm:"not null;index"`
}

// SortByRating orders games by rating, highest first. Unrated games go last.
// Ties keep their relative order.
func SortByRating(games []Game) {
	slices.SortStableFunc(games, func(a, b Game) int {
		return ratingOf(b) - ratingOf(a)
	})
}

func ratingOf(g Game) int {
	if g.Rating == nil {
		return MinRating - 1
	}
	return *g.Rating
}
