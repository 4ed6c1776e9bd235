package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/topdog-adp/internal/adp"
	"github.com/jstittsworth/topdog-adp/internal/models"
	"github.com/jstittsworth/topdog-adp/internal/providers"
	"github.com/jstittsworth/topdog-adp/internal/services"
	"github.com/jstittsworth/topdog-adp/pkg/config"
	"github.com/jstittsworth/topdog-adp/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedPrior(db, cfg); err != nil {
			logrus.Fatalf("Failed to seed prior: %v", err)
		}
		logrus.Info("Seed prior loaded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	return db.AutoMigrate(
		&models.PickEvent{},
		&models.SeedPrior{},
		&models.Snapshot{},
	)
}

func dropTables(db *database.DB) error {
	return db.Migrator().DropTable(
		&models.Snapshot{},
		&models.SeedPrior{},
		&models.PickEvent{},
	)
}

// seedPrior loads the season's baseline ranking, either from a local JSON
// file (migrate seed path/to/prior.json) or from the configured projections
// feed.
func seedPrior(db *database.DB, cfg *config.Config) error {
	logger := logrus.StandardLogger()
	store := services.NewSeedStore(db, logger)

	if len(os.Args) >= 3 {
		return seedFromFile(store, cfg.Season, os.Args[2])
	}

	if cfg.ProjectionsBaseURL == "" {
		return fmt.Errorf("no seed file given and PROJECTIONS_BASE_URL is not set")
	}

	client := providers.NewProjectionsClient(cfg.ProjectionsBaseURL, cfg.ProjectionsTimeout, noopCache{}, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	projections, err := client.GetProjections(ctx, cfg.Season)
	if err != nil {
		return err
	}

	prior := services.BuildFromProjections(cfg.Season, "preseason projections feed", projections)
	return store.Save(prior)
}

func seedFromFile(store *services.SeedStore, season, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read seed file: %w", err)
	}

	var prior adp.SeedPrior
	if err := json.Unmarshal(data, &prior); err != nil {
		return fmt.Errorf("failed to parse seed file: %w", err)
	}
	if prior.Season == "" {
		prior.Season = season
	}
	if len(prior.Values) == 0 {
		return fmt.Errorf("seed file contains no player values")
	}
	return store.Save(prior)
}

// noopCache satisfies the projections client without a Redis connection;
// a one-shot CLI run has nothing to warm.
type noopCache struct{}

func (noopCache) SetSimple(string, interface{}, time.Duration) error { return nil }
func (noopCache) GetSimple(string, interface{}) error {
	return fmt.Errorf("cache miss")
}
