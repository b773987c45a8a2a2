package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mstudy/recall-api/study"
)

// Study session endpoints. The session itself lives in memory in the
// Sessions manager; these handlers only translate requests into session
// operations. Every endpoint requires an authenticated user.

func (db *DBHandler) StartStudySession(w http.ResponseWriter, r *http.Request) {
	set, user, ok := db.loadSet(w, r, false)
	if !ok {
		return
	}
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	cards := make([]study.Card, len(set.Flashcards))
	for i, fc := range set.Flashcards {
		cards[i] = toStudyCard(fc)
	}

	session := db.Sessions.Start(study.Config{
		UserID:     user.ID,
		SetID:      set.ID,
		Difficulty: set.Difficulty,
		Cards:      cards,
		Stores:     db.Stores,
	})
	writeJSON(w, http.StatusCreated, session.State())
}

// withSession looks up the caller's active session for the set.
func (db *DBHandler) withSession(w http.ResponseWriter, r *http.Request) (*study.Session, bool) {
	set, user, ok := db.loadSet(w, r, false)
	if !ok {
		return nil, false
	}
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return nil, false
	}
	session, ok := db.Sessions.Get(user.ID, set.ID)
	if !ok {
		http.Error(w, "No active study session for this set", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func (db *DBHandler) GetStudyState(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyNext(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	session.Next()
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyPrevious(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	session.Previous()
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyFlip(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	session.Flip()
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyJump(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	session.JumpToCard(req.Index)
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyShuffle(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	session.Shuffle()
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyToggleStarred(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	session.ToggleStarredFilter()
	writeJSON(w, http.StatusOK, session.State())
}

func (db *DBHandler) StudyResetProgress(w http.ResponseWriter, r *http.Request) {
	session, ok := db.withSession(w, r)
	if !ok {
		return
	}
	session.ResetProgress()
	writeJSON(w, http.StatusOK, session.State())
}

// StudyFinish credits the current card if face-up, reconciles profile and
// set stats, clears the resume position, and ends the session.
func (db *DBHandler) StudyFinish(w http.ResponseWriter, r *http.Request) {
	set, user, ok := db.loadSet(w, r, false)
	if !ok {
		return
	}
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	session, found := db.Sessions.Get(user.ID, set.ID)
	if !found {
		http.Error(w, "No active study session for this set", http.StatusNotFound)
		return
	}

	summary := session.Finish(r.Context())
	db.Sessions.Remove(user.ID, set.ID)
	writeJSON(w, http.StatusOK, summary)
}

// StudyExit abandons the session, keeping the resume position.
func (db *DBHandler) StudyExit(w http.ResponseWriter, r *http.Request) {
	set, user, ok := db.loadSet(w, r, false)
	if !ok {
		return
	}
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	session, found := db.Sessions.Get(user.ID, set.ID)
	if !found {
		http.Error(w, "No active study session for this set", http.StatusNotFound)
		return
	}

	session.Exit()
	db.Sessions.Remove(user.ID, set.ID)
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}
