package study

import "time"

// DefaultEaseFactor is the fixed ease factor stamped onto a card's
// performance record the first time it is reviewed. Nothing in the app
// adapts it afterwards.
const DefaultEaseFactor = 2.5

// Performance is a card's review-scheduling record. A card that has never
// been reviewed has a nil Performance.
type Performance struct {
	LastReviewed *time.Time `json:"lastReviewed,omitempty"`
	NextReview   *time.Time `json:"nextReview,omitempty"`
	Repetitions  int        `json:"repetitions"`
	EaseFactor   float64    `json:"easeFactor"`
	IntervalDays int        `json:"intervalDays"`
}

// Card is the session-local view of a flashcard. ID is the card's stable
// public id, unique within its set.
type Card struct {
	ID          string       `json:"id"`
	Front       string       `json:"front"`
	Back        string       `json:"back"`
	Starred     bool         `json:"starred"`
	ReviewCount int          `json:"reviewCount"`
	Performance *Performance `json:"performance,omitempty"`
}
