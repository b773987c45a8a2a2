package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mstudy/recall-api/config"
	"github.com/mstudy/recall-api/handlers"
	"github.com/mstudy/recall-api/jobs"
	"github.com/mstudy/recall-api/middleware"
	"github.com/mstudy/recall-api/stores"
	"github.com/mstudy/recall-api/study"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Warn().Err(err).Msg(".env file not found, environment variables might not be loaded")
		}
	}
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if config.Env.IsDevelopment {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	config.Connect()
	pruner := jobs.StartPruner(config.Database)
	defer pruner.Stop()

	DBHandler := &handlers.DBHandler{
		DB:       config.Database,
		Sessions: study.NewManager(),
		Stores:   stores.New(config.Database),
	}
	mux := http.NewServeMux()

	// Users
	mux.HandleFunc("POST /api/signup", DBHandler.Signup)
	mux.HandleFunc("POST /api/login", DBHandler.Login)
	mux.HandleFunc("POST /api/logout", DBHandler.Logout)
	mux.HandleFunc("GET /api/profile", middleware.RequireUser(DBHandler.GetProfile))

	// Sets
	mux.HandleFunc("GET /api/sets/{setID}", DBHandler.GetSetByID)
	mux.HandleFunc("POST /api/sets", middleware.RequireUser(DBHandler.CreateFlashcardSet))
	mux.HandleFunc("PUT /api/sets/{setID}", middleware.RequireUser(DBHandler.UpdateSetByID))
	mux.HandleFunc("DELETE /api/sets/{setID}", middleware.RequireUser(DBHandler.DeleteSetByID))

	// User sets
	mux.HandleFunc("GET /api/users/{nickname}/sets", DBHandler.GetSetsForUser)

	// Flashcards
	mux.HandleFunc("GET /api/sets/{setID}/flashcards", DBHandler.GetFlashcardsForSet)
	mux.HandleFunc("POST /api/sets/{setID}/flashcards", middleware.RequireUser(DBHandler.CreateFlashcard))
	mux.HandleFunc("GET /api/sets/{setID}/flashcards/{flashcardID}", DBHandler.GetFlashcardByID)
	mux.HandleFunc("PUT /api/sets/{setID}/flashcards/{flashcardID}", middleware.RequireUser(DBHandler.UpdateFlashcardByID))
	mux.HandleFunc("DELETE /api/sets/{setID}/flashcards/{flashcardID}", middleware.RequireUser(DBHandler.DeleteFlashcardByID))

	// Study sessions
	mux.HandleFunc("POST /api/sets/{setID}/study/start", middleware.RequireUser(DBHandler.StartStudySession))
	mux.HandleFunc("GET /api/sets/{setID}/study", middleware.RequireUser(DBHandler.GetStudyState))
	mux.HandleFunc("POST /api/sets/{setID}/study/next", middleware.RequireUser(DBHandler.StudyNext))
	mux.HandleFunc("POST /api/sets/{setID}/study/previous", middleware.RequireUser(DBHandler.StudyPrevious))
	mux.HandleFunc("POST /api/sets/{setID}/study/flip", middleware.RequireUser(DBHandler.StudyFlip))
	mux.HandleFunc("POST /api/sets/{setID}/study/jump", middleware.RequireUser(DBHandler.StudyJump))
	mux.HandleFunc("POST /api/sets/{setID}/study/shuffle", middleware.RequireUser(DBHandler.StudyShuffle))
	mux.HandleFunc("POST /api/sets/{setID}/study/filter", middleware.RequireUser(DBHandler.StudyToggleStarred))
	mux.HandleFunc("POST /api/sets/{setID}/study/reset", middleware.RequireUser(DBHandler.StudyResetProgress))
	mux.HandleFunc("POST /api/sets/{setID}/study/finish", middleware.RequireUser(DBHandler.StudyFinish))
	mux.HandleFunc("POST /api/sets/{setID}/study/exit", middleware.RequireUser(DBHandler.StudyExit))

	// Configure CORS with specific options
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(mux)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // fallback port for local development
	}
	serverAddr := "0.0.0.0:" + port

	log.Info().Str("addr", serverAddr).Msg("listening")
	if err := http.ListenAndServe(serverAddr, corsHandler); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
