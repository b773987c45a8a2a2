package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mstudy/recall-api/models"
	"github.com/mstudy/recall-api/study"
	"gorm.io/gorm"
)

type DBHandler struct {
	*gorm.DB
	Sessions *study.Manager
	Stores   study.Stores
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// toStudyCard converts a stored flashcard into the session-local value type.
// Cards that have never been reviewed keep a nil performance record.
func toStudyCard(fc models.Flashcard) study.Card {
	card := study.Card{
		ID:          fc.PublicID,
		Front:       fc.Front,
		Back:        fc.Back,
		Starred:     fc.Starred,
		ReviewCount: fc.ReviewCount,
	}
	if fc.Performance.LastReviewed != nil || fc.Performance.Repetitions > 0 {
		perf := study.Performance(fc.Performance)
		card.Performance = &perf
	}
	return card
}
