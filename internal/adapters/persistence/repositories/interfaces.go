package repositories

import (
	"context"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/core/domain"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByUsernameExcept(ctx context.Context, username string, exceptID uint) (bool, error)
}

// AssetRepository defines asset repository interface
type AssetRepository interface {
	// Create persists the asset and its freshly generated tracking ID as one
	// transaction; generate is called with the collision check bound to the
	// same transaction so no concurrent insert can slip between check and use.
	Create(ctx context.Context, asset *models.Asset, generate func(exists func(trackingID string) (bool, error)) (string, error)) error
	GetByTrackingID(ctx context.Context, trackingID string) (*models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error
	UpdateFields(ctx context.Context, trackingID string, fields map[string]interface{}) (int64, error)
	MarkDispatched(ctx context.Context, trackingID string, dispatchedAt string, dispatcherID uint, signaturePath string) (int64, error)
	Delete(ctx context.Context, trackingID string) (int64, error)
	ListActive(ctx context.Context, offset, limit int) ([]*models.Asset, int64, error)
	ListDispatched(ctx context.Context, offset, limit int) ([]*models.Asset, int64, error)
	Search(ctx context.Context, term string, field domain.SearchField, scope domain.SearchScope) ([]*models.Asset, error)
	ExistsByTrackingID(ctx context.Context, trackingID string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}
