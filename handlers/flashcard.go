package handlers

import (
	"encoding/json"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/mstudy/recall-api/models"
)

func (db *DBHandler) GetFlashcardsForSet(w http.ResponseWriter, r *http.Request) {
	set, _, ok := db.loadSet(w, r, false)
	if !ok {
		return
	}

	cards := set.Flashcards
	if len(cards) == 0 {
		cards = []models.Flashcard{}
	}
	writeJSON(w, http.StatusOK, cards)
}

func (db *DBHandler) GetFlashcardByID(w http.ResponseWriter, r *http.Request) {
	set, _, ok := db.loadSet(w, r, false)
	if !ok {
		return
	}

	flashcardID := r.PathValue("flashcardID")
	var flashcard models.Flashcard
	if err := db.Where("public_id = ? AND set_id = ?", flashcardID, set.ID).First(&flashcard).Error; err != nil {
		http.Error(w, "Flashcard not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, flashcard)
}

func (db *DBHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	set, _, ok := db.loadSet(w, r, true)
	if !ok {
		return
	}

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	type FlashcardRequest struct {
		Front   string `json:"front"`
		Back    string `json:"back"`
		Starred bool   `json:"starred"`
	}
	var req FlashcardRequest
	if err := decoder.Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}
	if req.Front == "" || req.Back == "" {
		http.Error(w, "Front and back are required", http.StatusBadRequest)
		return
	}

	publicID, err := gonanoid.New()
	if err != nil {
		http.Error(w, "Failed to generate ID", http.StatusInternalServerError)
		return
	}

	flashcard := models.Flashcard{
		Front:    req.Front,
		Back:     req.Back,
		Starred:  req.Starred,
		PublicID: publicID,
		SetID:    set.ID,
	}
	if err := db.Create(&flashcard).Error; err != nil {
		log.Error().Err(err).Msg("CreateFlashcard: failed to create flashcard")
		http.Error(w, "Failed to create flashcard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, flashcard)
}

func (db *DBHandler) UpdateFlashcardByID(w http.ResponseWriter, r *http.Request) {
	set, _, ok := db.loadSet(w, r, true)
	if !ok {
		return
	}

	flashcardID := r.PathValue("flashcardID")
	var flashcard models.Flashcard
	if err := db.Where("public_id = ? AND set_id = ?", flashcardID, set.ID).First(&flashcard).Error; err != nil {
		http.Error(w, "Flashcard not found", http.StatusNotFound)
		return
	}

	type UpdateRequest struct {
		Front   *string `json:"front"`
		Back    *string `json:"back"`
		Starred *bool   `json:"starred"`
	}
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Could not decode request", http.StatusBadRequest)
		return
	}

	if req.Front != nil {
		flashcard.Front = *req.Front
	}
	if req.Back != nil {
		flashcard.Back = *req.Back
	}
	if req.Starred != nil {
		flashcard.Starred = *req.Starred
	}

	if err := db.Save(&flashcard).Error; err != nil {
		log.Error().Err(err).Msg("UpdateFlashcardByID: failed to save flashcard")
		http.Error(w, "Failed to update flashcard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, flashcard)
}

func (db *DBHandler) DeleteFlashcardByID(w http.ResponseWriter, r *http.Request) {
	set, _, ok := db.loadSet(w, r, true)
	if !ok {
		return
	}

	flashcardID := r.PathValue("flashcardID")
	var flashcard models.Flashcard
	if err := db.Where("public_id = ? AND set_id = ?", flashcardID, set.ID).First(&flashcard).Error; err != nil {
		http.Error(w, "Flashcard not found", http.StatusNotFound)
		return
	}

	if err := db.Delete(&flashcard).Error; err != nil {
		http.Error(w, "Failed to delete flashcard", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}
