package models

import "time"

// User represents a registered account that owns game lists.
type User struct {
	ID           uint `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Email        string `gorm:"size:100;unique;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:1000;not null"`

	// Deleting a user removes every list it authored.
	Lists []List `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
