// File: /main.go
package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"triptracker-api/activeslot"
	"triptracker-api/config"
	"triptracker-api/database"
	"triptracker-api/jobs"
	"triptracker-api/logger"
	"triptracker-api/middleware"
	"triptracker-api/routes"
	"triptracker-api/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logger.New(cfg.LogLevel)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Open the datastore at the current schema version
	db, err := database.Open(cfg.DatabasePath(), database.SchemaVersion)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close(db)

	slot := activeslot.New(cfg.SlotPath())

	emailService := services.NewEmailService(cfg, log)

	// Background reminder sweep
	reminderJob := jobs.NewReminderJob(db, slot, emailService, log, cfg.ReminderSweepInterval)
	reminderJob.Start()
	defer reminderJob.Stop()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	// Setup CORS middleware
	router.Use(routes.SetupCORS())

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.ValidateJSON())
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	router.Use(middleware.ErrorHandler())

	// Setup routes
	routes.SetupRoutes(router, db, slot, cfg, log)

	log.Infof("Starting TripTracker API server on port %s", cfg.Port)
	log.Infof("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
