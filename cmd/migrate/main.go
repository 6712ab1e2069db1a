package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"ledgerline/internal/config"
	"ledgerline/internal/database"
	"ledgerline/internal/logger"

	"github.com/golang-migrate/migrate/v4"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: migrate <up|down|version> [N]")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	dbConfig := database.NewConfig(cfg)
	if dbConfig.Driver == database.DriverSQLite {
		return fmt.Errorf("SQL migrations target postgres; sqlite schemas are auto-migrated by the api")
	}

	m, err := database.NewMigrate(dbConfig)
	if err != nil {
		return err
	}
	defer database.CloseMigrate(m)

	switch command := args[0]; command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration up failed: %w", err)
		}
		logger.Get().Info("Migrations applied successfully")

	case "down":
		steps, err := parseSteps(args[1:])
		if err != nil {
			return err
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration down failed: %w", err)
		}
		logger.Get().Infof("Rolled back %d migration(s)", steps)

	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		logger.Get().Infof("Version: %d, Dirty: %v", version, dirty)

	default:
		return fmt.Errorf("unknown command: %s (use up, down, or version)", command)
	}

	return nil
}

// parseSteps reads the optional rollback count, defaulting to one.
func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid step count: %w", err)
	}
	if steps < 1 {
		return 0, fmt.Errorf("step count must be at least 1, got %d", steps)
	}
	return steps, nil
}
