package services

import (
	"context"
	"testing"
	"time"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceServiceStart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewMaintenanceService(repositories.NewRefreshTokenRepository(db), NewReleaseService())

	require.NoError(t, svc.Start())
	defer svc.Stop()

	// Both jobs made it onto the schedule
	assert.Len(t, svc.cron.Entries(), 2)
}

func TestRefreshTokenPurge(t *testing.T) {
	db := setupTestDB(t)
	repo := repositories.NewRefreshTokenRepository(db)
	user := seedUser(t, db, "officer", "signatures/officer.png")

	expired := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: "expired-hash",
		ExpiresAt: time.Now().Add(-24 * time.Hour),
	}
	live := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: "live-hash",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, db.Create(live).Error)

	require.NoError(t, repo.DeleteExpired(context.Background()))

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "live-hash", remaining[0].TokenHash)
}
