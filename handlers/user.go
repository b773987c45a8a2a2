package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mstudy/recall-api/auth"
	"github.com/mstudy/recall-api/config"
	"github.com/mstudy/recall-api/middleware"
	"github.com/mstudy/recall-api/models"
)

type credentials struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

func setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Domain:   config.Env.Domain,
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400, // 24 hours
	})
}

func (db *DBHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if creds.Nickname == "" || creds.Password == "" {
		http.Error(w, "Nickname and password are required", http.StatusBadRequest)
		return
	}

	var existing models.User
	if err := db.Where("nickname = ?", creds.Nickname).First(&existing).Error; err == nil {
		http.Error(w, "Nickname already taken", http.StatusConflict)
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		log.Error().Err(err).Msg("Signup: failed to hash password")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := models.User{Nickname: creds.Nickname, PasswordHash: hash}
	if err := db.Create(&user).Error; err != nil {
		log.Error().Err(err).Msg("Signup: failed to create user")
		http.Error(w, "Failed to create user", http.StatusInternalServerError)
		return
	}

	token, err := auth.CreateToken(user.Nickname)
	if err != nil {
		log.Error().Err(err).Msg("Signup: failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	setAuthCookie(w, token)

	log.Info().Str("nickname", user.Nickname).Msg("user created")
	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

func (db *DBHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var user models.User
	if err := db.Where("nickname = ?", creds.Nickname).First(&user).Error; err != nil {
		http.Error(w, "Invalid nickname or password", http.StatusUnauthorized)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, creds.Password) {
		http.Error(w, "Invalid nickname or password", http.StatusUnauthorized)
		return
	}

	token, err := auth.CreateToken(user.Nickname)
	if err != nil {
		log.Error().Err(err).Msg("Login: failed to generate token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}
	setAuthCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (db *DBHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    "",
		Path:     "/",
		Domain:   config.Env.Domain,
		HttpOnly: true,
		Secure:   config.Env.CookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	writeJSON(w, http.StatusOK, map[string]string{"message": "success"})
}

// GetProfile returns the authenticated user with their study totals.
func (db *DBHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	if user == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	// Re-read so totals reconciled after a finished session are fresh.
	var fresh models.User
	if err := db.First(&fresh, user.ID).Error; err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fresh)
}
