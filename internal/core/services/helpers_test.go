package services

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"
	"pnp-asset-tracker/internal/config"
	"pnp-asset-tracker/internal/pkg/signature"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory database with the schema migrated.
// A single connection keeps every query on the same in-memory instance.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// seedUser inserts a user directly, bypassing the sign-up flow
func seedUser(t *testing.T, db *gorm.DB, username, signaturePath string) *models.User {
	t.Helper()
	user := &models.User{
		Username:      username,
		Password:      "$2a$12$not.a.real.hash.for.tests",
		SignaturePath: signaturePath,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newTestAssetService(t *testing.T, db *gorm.DB) *AssetService {
	t.Helper()
	return NewAssetService(
		repositories.NewAssetRepository(db),
		repositories.NewUserRepository(db),
	)
}

func newTestSignatureStore(t *testing.T) *signature.Store {
	t.Helper()
	store, err := signature.NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 30,
		},
	}
}

// drawnSignaturePNG renders a white canvas with a stroke, the minimum a
// capture pad accepts.
func drawnSignaturePNG(t *testing.T) []byte {
	t.Helper()
	return signaturePNG(t, true)
}

// blankSignaturePNG renders the untouched white canvas
func blankSignaturePNG(t *testing.T) []byte {
	t.Helper()
	return signaturePNG(t, false)
}

func signaturePNG(t *testing.T, drawn bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.White)
		}
	}
	if drawn {
		img.Set(2, 2, color.Black)
		img.Set(3, 3, color.Black)
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
