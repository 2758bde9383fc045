package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"pnp-asset-tracker/internal/adapters/http/middleware"
	"pnp-asset-tracker/internal/adapters/http/routes"
	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"
	"pnp-asset-tracker/internal/config"
	"pnp-asset-tracker/internal/core/services"
	"pnp-asset-tracker/internal/pkg/signature"

	"github.com/gofiber/fiber/v2"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer config.CloseDatabase()

	// Auto migrate (creates tables if not exist)
	if err := models.AutoMigrate(db); err != nil {
		log.Fatalf("❌ Failed to auto migrate: %v", err)
	}
	log.Println("✅ Database migration completed")

	// Signature store
	signatures, err := signature.NewStore(cfg.SignatureDir)
	if err != nil {
		log.Fatalf("❌ Failed to prepare signature store: %v", err)
	}

	// Check for a newer release once at startup; the scheduler repeats it daily
	releaseService := services.NewReleaseService()
	go releaseService.CheckForUpdates(context.Background())

	// Start maintenance scheduler (token purge 03:00, release check 08:30)
	maintenanceService := services.NewMaintenanceService(repositories.NewRefreshTokenRepository(db), releaseService)
	if err := maintenanceService.Start(); err != nil {
		log.Fatalf("❌ Failed to start maintenance scheduler: %v", err)
	}
	defer maintenanceService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "PNP Asset Tracker API v" + services.AppVersion,
		ErrorHandler: middleware.CustomErrorHandler,
	})

	// Setup middlewares
	middleware.Setup(app, cfg)

	// Setup routes (pass db and cfg for dependency injection)
	routes.Setup(app, db, signatures, releaseService, cfg)

	// Graceful shutdown
	go gracefulShutdown(app)

	// Start server
	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
