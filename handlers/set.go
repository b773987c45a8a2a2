package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"

	"github.com/mstudy/recall-api/middleware"
	"github.com/mstudy/recall-api/models"
)

// loadSet fetches a set by public id. When mustOwn is set the caller has to
// be the owner; otherwise public sets are readable by anyone.
func (db *DBHandler) loadSet(w http.ResponseWriter, r *http.Request, mustOwn bool) (*models.FlashcardSet, *models.User, bool) {
	setID := r.PathValue("setID")
	var set models.FlashcardSet
	if err := db.Preload("User").Preload("Flashcards").Where("public_id = ?", setID).First(&set).Error; err != nil {
		log.Debug().Str("setID", setID).Err(err).Msg("set not found")
		http.Error(w, fmt.Sprintf("Set with ID %s not found", setID), http.StatusNotFound)
		return nil, nil, false
	}

	user := middleware.UserFromContext(r.Context())
	isOwner := user != nil && set.UserID == user.ID
	if mustOwn && !isOwner {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, nil, false
	}
	if !mustOwn && !set.IsPublic && !isOwner {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return nil, nil, false
	}
	return &set, user, true
}

func (db *DBHandler) GetSetByID(w http.ResponseWriter, r *http.Request) {
	set, user, ok := db.loadSet(w, r, false)
	if !ok {
		return
	}

	type SetResponse struct {
		models.FlashcardSet
		IsOwner bool `json:"IsOwner"`
	}
	writeJSON(w, http.StatusOK, SetResponse{
		FlashcardSet: *set,
		IsOwner:      user != nil && set.UserID == user.ID,
	})
}

func (db *DBHandler) CreateFlashcardSet(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	type CreateSetRequest struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Difficulty  int    `json:"difficulty"`
		IsPublic    bool   `json:"isPublic"`
	}
	var req CreateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}
	if req.Difficulty < 1 || req.Difficulty > 5 {
		req.Difficulty = 1
	}

	publicID, err := gonanoid.New()
	if err != nil {
		log.Error().Err(err).Msg("CreateFlashcardSet: failed to generate publicID")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	set := models.FlashcardSet{
		Title:       req.Title,
		Description: req.Description,
		Difficulty:  req.Difficulty,
		UserID:      user.ID,
		IsPublic:    req.IsPublic,
		PublicID:    publicID,
	}
	if err := db.Create(&set).Error; err != nil {
		log.Error().Err(err).Msg("CreateFlashcardSet: failed to create set")
		http.Error(w, "Failed to create set", http.StatusInternalServerError)
		return
	}

	log.Info().Str("publicID", publicID).Uint("userID", user.ID).Msg("set created")
	writeJSON(w, http.StatusCreated, set)
}

func (db *DBHandler) UpdateSetByID(w http.ResponseWriter, r *http.Request) {
	set, _, ok := db.loadSet(w, r, true)
	if !ok {
		return
	}

	type UpdateSetRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Difficulty  *int    `json:"difficulty"`
		IsPublic    *bool   `json:"isPublic"`
	}
	var req UpdateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title != nil {
		set.Title = *req.Title
	}
	if req.Description != nil {
		set.Description = *req.Description
	}
	if req.Difficulty != nil && *req.Difficulty >= 1 && *req.Difficulty <= 5 {
		set.Difficulty = *req.Difficulty
	}
	if req.IsPublic != nil {
		set.IsPublic = *req.IsPublic
	}

	if err := db.Save(set).Error; err != nil {
		log.Error().Err(err).Msg("UpdateSetByID: failed to save set")
		http.Error(w, "Failed to update set", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (db *DBHandler) DeleteSetByID(w http.ResponseWriter, r *http.Request) {
	set, user, ok := db.loadSet(w, r, true)
	if !ok {
		return
	}

	if err := db.Where("set_id = ?", set.ID).Delete(&models.Flashcard{}).Error; err != nil {
		http.Error(w, "Failed to delete flashcards", http.StatusInternalServerError)
		return
	}
	// Per-set study state goes with the set.
	db.Unscoped().Where("set_id = ?", set.ID).Delete(&models.CardOrder{})
	db.Unscoped().Where("set_id = ?", set.ID).Delete(&models.StudyProgress{})
	db.Sessions.Remove(user.ID, set.ID)

	if err := db.Delete(set).Error; err != nil {
		http.Error(w, "Failed to delete set", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

func (db *DBHandler) GetSetsForUser(w http.ResponseWriter, r *http.Request) {
	nickname := r.PathValue("nickname")
	if nickname == "" {
		http.Error(w, "Nickname is required", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.Where("nickname = ?", nickname).First(&user).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	caller := middleware.UserFromContext(r.Context())
	query := db.Where("user_id = ?", user.ID)
	if caller == nil || caller.ID != user.ID {
		query = query.Where("is_public = ?", true)
	}

	var sets []models.FlashcardSet
	if err := query.Preload("Flashcards").Find(&sets).Error; err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if len(sets) == 0 {
		sets = []models.FlashcardSet{}
	}
	writeJSON(w, http.StatusOK, sets)
}
