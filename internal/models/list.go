package models

import "time"

// List is a named, user-owned collection of games.
type List struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:250;not null"`
	Description string `gorm:"size:250;not null"`
	ImgURL      string `gorm:"size:250;not null"`
	Sorted      bool   `gorm:"not null;default:false"`
	AuthorID    uint   `gorm:"not null;index"`

	Games []Game `gorm:"foreignKey:ListID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// TableName specifies the table name for GORM
func (List) TableName() string {
	return "game_lists"
}

// OwnedBy reports whether userID authored the list.
func (l *List) OwnedBy(userID uint) bool {
	return l.AuthorID == userID
}

// DisplayGames returns the games in the order the list page shows them:
// by rating descending when Sorted is set, otherwise in creation order.
func (l *List) DisplayGames() []Game {
	games := make([]Game, len(l.Games))
	copy(games, l.Games)
	if l.Sorted {
		SortByRating(games)
	}
	return games
}
