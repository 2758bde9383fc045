package services

import (
	"context"
	"fmt"
	"log"

	"pnp-asset-tracker/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// MaintenanceService runs scheduled housekeeping jobs
type MaintenanceService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	releaseService   *ReleaseService
	cron             *cron.Cron
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(refreshTokenRepo repositories.RefreshTokenRepository, releaseService *ReleaseService) *MaintenanceService {
	return &MaintenanceService{
		refreshTokenRepo: refreshTokenRepo,
		releaseService:   releaseService,
		cron:             cron.New(),
	}
}

// Start registers and launches the scheduled jobs
func (s *MaintenanceService) Start() error {
	// Purge expired refresh tokens nightly at 03:00
	_, err := s.cron.AddFunc("0 3 * * *", func() {
		if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
			log.Printf("Failed to purge expired refresh tokens: %v", err)
			return
		}
		log.Println("Expired refresh tokens purged")
	})
	if err != nil {
		return fmt.Errorf("failed to schedule token purge: %w", err)
	}

	// Refresh the cached latest-release info daily at 08:30
	_, err = s.cron.AddFunc("30 8 * * *", func() {
		s.releaseService.CheckForUpdates(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule release check: %w", err)
	}

	s.cron.Start()
	log.Println("MaintenanceService started")
	return nil
}

// Stop gracefully stops the scheduler
func (s *MaintenanceService) Stop() {
	s.cron.Stop()
	log.Println("MaintenanceService stopped")
}
