package main

import (
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/crewscore/crewscore/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("CREWSCORE_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.Persistence.Database.URL == "" {
		log.Fatal("persistence.database.url is required to run migrations")
	}

	m, err := migrate.New("file://migrations", cfg.Persistence.Database.URL)
	if err != nil {
		log.Fatalf("failed to create migration instance: %v", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatalf("migration failed: %v", err)
	}

	fmt.Println("Migrations completed successfully.")
}
