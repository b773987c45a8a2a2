package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a registered learner
type User struct {
	gorm.Model
	Nickname     string `gorm:"unique;not null;size:100"`
	PasswordHash string `gorm:"not null" json:"-"`

	FlashcardSets []FlashcardSet `gorm:"foreignKey:UserID"`

	// Aggregate study stats, reconciled when a session finishes
	TotalStudySessions int        `gorm:"default:0"`
	TotalCardsStudied  int        `gorm:"default:0"`
	LastStudiedAt      *time.Time `gorm:"default:null"`
}
