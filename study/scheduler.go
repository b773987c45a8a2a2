package study

import "time"

type nower interface {
	Now() time.Time
}

type realNower struct{}

func (realNower) Now() time.Time { return time.Now() }

// Review returns the post-review copy of card for a learner who advanced
// past it face-up. difficultyDays is the owning set's difficulty rating,
// used directly as the day count until the next review. Only the review
// metadata changes; front/back/starred/id are untouched.
func Review(card Card, difficultyDays int, now time.Time) Card {
	perf := Performance{EaseFactor: DefaultEaseFactor}
	if card.Performance != nil {
		perf = *card.Performance
		if perf.EaseFactor == 0 {
			perf.EaseFactor = DefaultEaseFactor
		}
	}

	last := now
	next := now.AddDate(0, 0, difficultyDays)
	perf.LastReviewed = &last
	perf.NextReview = &next
	perf.Repetitions++
	perf.IntervalDays = difficultyDays

	card.ReviewCount++
	card.Performance = &perf
	return card
}
