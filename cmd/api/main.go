package main

import (
	"fmt"
	"os"

	"ledgerline/internal/config"
	"ledgerline/internal/database"
	"ledgerline/internal/logger"
	"ledgerline/internal/router"
)

// @title           Ledgerline API
// @version         1.0
// @description     Ledgerline is a personal double-entry ledger: accounts, transactions, recurring schedules, budgets, and net worth history.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey PipelineKey
// @in header
// @name X-API-Key

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	engine := router.New(appConfig, router.NewServices(dbManager.DB(), appConfig))

	if appConfig.PipelineAPIKey == "" {
		log.Warn("PIPELINE_API_KEY is not set; pipeline endpoints will answer 503")
	}
	log.Infof("Starting Ledgerline server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return engine.Run(":" + appConfig.Port)
}
