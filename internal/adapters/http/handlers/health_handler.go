package handlers

import (
	"pnp-asset-tracker/internal/config"
	"pnp-asset-tracker/internal/core/services"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler handles health and version endpoints
type HealthHandler struct {
	releaseService *services.ReleaseService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(releaseService *services.ReleaseService) *HealthHandler {
	return &HealthHandler{
		releaseService: releaseService,
	}
}

// Root handles root endpoint
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "PNP Asset Tracker API is running",
		"mode":    config.AppConfig.AppMode,
	})
}

// HealthCheck handles health check
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	// Check database
	dbStatus := "healthy"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}

// Version reports the running version and the latest published release
func (h *HealthHandler) Version(c *fiber.Ctx) error {
	info := fiber.Map{
		"version": services.AppVersion,
	}

	if latest := h.releaseService.Latest(); latest != nil {
		info["latest_version"] = latest.Version
		info["update_available"] = latest.Newer
		if latest.Newer {
			info["download_url"] = latest.DownloadURL
		}
	}

	return c.JSON(info)
}
