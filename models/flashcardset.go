package models

import (
	"time"

	"gorm.io/gorm"
)

// FlashcardSet represents a collection of flashcards
type FlashcardSet struct {
	gorm.Model
	Title       string `gorm:"not null;size:100"`
	Description string `gorm:"size:500"`
	UserID      uint   `gorm:"not null"`
	PublicID    string `gorm:"size:100;uniqueIndex"`
	User        User   `gorm:"foreignKey:UserID" json:"-"`

	Flashcards []Flashcard `gorm:"foreignKey:SetID"`

	// Difficulty 1-5 doubles as the day interval for next-review scheduling
	Difficulty int `gorm:"default:1"`

	IsPublic      bool       `gorm:"default:false"`
	StudySessions int        `gorm:"default:0"`
	LastStudied   *time.Time `gorm:"default:null"`
}
