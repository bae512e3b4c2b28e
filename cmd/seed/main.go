package main

import (
	"context"
	"log"

	"github.com/mathquest/backend/internal/config"
	"github.com/mathquest/backend/internal/database"
	"github.com/mathquest/backend/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if _, err := seed.Apply(context.Background(), db, seed.Build()); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
}
