package models

import (
	"time"

	"gorm.io/gorm"
)

// Performance holds a card's review-scheduling record. Embedded in Flashcard
// with a column prefix; all fields are null until the card is first reviewed.
type Performance struct {
	LastReviewed *time.Time `gorm:"default:null"`
	NextReview   *time.Time `gorm:"default:null"`
	Repetitions  int        `gorm:"default:0"`
	EaseFactor   float64    `gorm:"default:0"`
	IntervalDays int        `gorm:"default:0"`
}

// Flashcard represents an individual flashcard
type Flashcard struct {
	gorm.Model
	Front    string `gorm:"not null;size:1000"`
	Back     string `gorm:"not null;size:1000"`
	PublicID string `gorm:"size:100;uniqueIndex"`

	SetID        uint         `gorm:"not null"`
	FlashcardSet FlashcardSet `gorm:"foreignKey:SetID" json:"-"`

	Starred     bool        `gorm:"default:false"`
	ReviewCount int         `gorm:"default:0"`
	Performance Performance `gorm:"embedded;embeddedPrefix:perf_"`
}
