package routes

import (
	"pnp-asset-tracker/internal/adapters/http/handlers"
	"pnp-asset-tracker/internal/adapters/http/middleware"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"
	"pnp-asset-tracker/internal/config"
	"pnp-asset-tracker/internal/core/services"
	"pnp-asset-tracker/internal/pkg/signature"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, signatures *signature.Store, releaseService *services.ReleaseService, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	assetRepo := repositories.NewAssetRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, signatures, cfg)
	userService := services.NewUserService(userRepo, signatures)
	assetService := services.NewAssetService(assetRepo, userRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(releaseService)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	userHandler := handlers.NewUserHandler(userService)
	assetHandler := handlers.NewAssetHandler(assetService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/version", healthHandler.Version)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	setupAPIV1Routes(apiV1, authHandler, userHandler, assetHandler, cfg)
}

// setupAPIV1Routes configures API v1 routes
func setupAPIV1Routes(
	router fiber.Router,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	assetHandler *handlers.AssetHandler,
	cfg *config.Config,
) {
	// Auth routes (public, rate limited)
	authRoutes := router.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, userHandler, cfg)

	// Profile routes (authenticated users)
	profileRoutes := router.Group("/profile")
	profileRoutes.Use(middleware.AuthMiddleware(cfg))
	setupProfileRoutes(profileRoutes, userHandler)

	// Asset routes (authenticated users)
	assetRoutes := router.Group("/assets")
	assetRoutes.Use(middleware.AuthMiddleware(cfg))
	setupAssetRoutes(assetRoutes, assetHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, userHandler *handlers.UserHandler, cfg *config.Config) {
	// Public routes
	router.Post("/register", middleware.AuthRateLimiter(), handler.Register)
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(cfg), userHandler.GetProfile)
	router.Post("/logout-all", middleware.AuthMiddleware(cfg), handler.LogoutAll)
}

// setupProfileRoutes configures profile routes (authenticated)
func setupProfileRoutes(router fiber.Router, handler *handlers.UserHandler) {
	router.Get("/", handler.GetProfile)
	router.Put("/", handler.UpdateProfile)
	router.Get("/signature", handler.GetSignature)
}

// setupAssetRoutes configures asset lifecycle routes (authenticated)
func setupAssetRoutes(router fiber.Router, handler *handlers.AssetHandler) {
	// Listing & search come before the tracking ID wildcard
	router.Get("/active", handler.ListActive)
	router.Get("/dispatched", handler.ListDispatched)
	router.Get("/search", handler.Search)

	router.Post("/", handler.Create)
	router.Get("/:tracking_id", handler.GetByTrackingID)
	router.Put("/:tracking_id", handler.Edit)
	router.Post("/:tracking_id/dispatch", handler.Dispatch)
	router.Delete("/:tracking_id", handler.Delete)
}
