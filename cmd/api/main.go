package main

import (
	"fmt"
	"os"

	"finledger/internal/config"
	"finledger/internal/database"
	"finledger/internal/logger"
	"finledger/internal/router"
	"finledger/internal/validator"

	_ "finledger/internal/docs" // Import swagger docs
)

// @title           finledger API
// @version         1.0
// @description     finledger is a household ledger: income, expenses, card repayments, savings, goals and the reports derived from them.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
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

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return err
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}
	if err := database.Seed(dbManager.DB(), appConfig.DefaultCards, appConfig.DefaultCategories); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize services
	svc, err := router.NewServices(dbManager.DB(), appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	validator.Register()
	r := router.New(svc, appConfig.BackupAPIKey)

	if appConfig.BackupAPIKey == "" {
		log.Info("BACKUP_API_KEY not set, backup endpoint disabled")
	}
	log.Infof("Starting finledger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return r.Run(":" + appConfig.Port)
}
