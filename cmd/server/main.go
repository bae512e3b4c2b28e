package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mathquest/backend/internal/attempts"
	"github.com/mathquest/backend/internal/auth"
	"github.com/mathquest/backend/internal/config"
	"github.com/mathquest/backend/internal/database"
	"github.com/mathquest/backend/internal/middleware"
	"github.com/mathquest/backend/internal/questions"
	"github.com/rs/cors"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize stores, services and handlers
	questionStore := questions.NewStore(db)
	attemptStore := attempts.NewStore(db)

	questionService := questions.NewService(questionStore)
	attemptService := attempts.NewService(questionStore, attemptStore, attemptStore)
	attemptService.SetLocation(cfg.StatsLocation)

	authHandler := auth.NewHandler(db, cfg.JWTSecret, cfg.JWTTTL)
	questionHandler := questions.NewHandler(questionService)
	attemptHandler := attempts.NewHandler(attemptService)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.JWTSecret))

	authHandler.RegisterRoutes(api, protected)
	questionHandler.RegisterRoutes(api, protected)
	attemptHandler.RegisterRoutes(protected)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.PingContext(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
