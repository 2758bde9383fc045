package services

import (
	"context"
	"errors"
	"time"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/adapters/persistence/repositories"
	"pnp-asset-tracker/internal/core/domain"

	"gorm.io/gorm"
)

const (
	dateLayout     = "2006-01-02"
	dispatchLayout = "2006-01-02 15:04:05"
)

// AssetService handles the asset lifecycle business logic
type AssetService struct {
	assetRepo repositories.AssetRepository
	userRepo  repositories.UserRepository
	now       func() time.Time
}

// NewAssetService creates a new asset service
func NewAssetService(assetRepo repositories.AssetRepository, userRepo repositories.UserRepository) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		userRepo:  userRepo,
		now:       time.Now,
	}
}

// CreateAssetInput represents receive-asset input
type CreateAssetInput struct {
	AssetName    string `json:"asset_name"`
	AssetCode    string `json:"asset_code"`
	SerialNumber string `json:"serial_number"`
	BranchName   string `json:"branch_name"`
	DateReceived string `json:"date_received"` // YYYY-MM-DD, defaults to today
}

// EditAssetInput represents edit-asset input. All four fields are
// required; partial edits are rejected, not merged.
type EditAssetInput struct {
	AssetName    string `json:"asset_name"`
	AssetCode    string `json:"asset_code"`
	BranchName   string `json:"branch_name"`
	SerialNumber string `json:"serial_number"`
}

// ListAssetsOutput represents a page of assets
type ListAssetsOutput struct {
	Assets     []*models.AssetResponse `json:"assets"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"total_pages"`
}

// Create records a newly received asset and returns its tracking ID.
// The receiving user must have a signature on file; the tracking ID is
// generated and persisted in one transaction.
func (s *AssetService) Create(ctx context.Context, input *CreateAssetInput, receivingUserID uint) (string, error) {
	if input.AssetName == "" || input.BranchName == "" {
		return "", domain.ErrValidation
	}

	dateReceived := input.DateReceived
	if dateReceived == "" {
		dateReceived = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, dateReceived); err != nil {
		return "", domain.ErrValidation
	}

	user, err := s.userRepo.GetByID(ctx, receivingUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	if user.SignaturePath == "" {
		return "", domain.ErrSignatureMissing
	}

	asset := &models.Asset{
		AssetName:               input.AssetName,
		AssetCode:               input.AssetCode,
		SerialNumber:            input.SerialNumber,
		BranchName:              input.BranchName,
		DateReceived:            dateReceived,
		CurrentStatus:           string(domain.StatusReceived),
		ReceivedByUserID:        user.ID,
		ReceivedBySignaturePath: user.SignaturePath,
	}

	if err := s.assetRepo.Create(ctx, asset, GenerateTrackingID); err != nil {
		return "", err
	}

	return asset.TrackingID, nil
}

// Edit replaces the four editable fields of an Active asset. The tracking
// ID itself is never editable, and dispatched assets are frozen.
func (s *AssetService) Edit(ctx context.Context, trackingID string, input *EditAssetInput) error {
	if input.AssetName == "" || input.AssetCode == "" || input.BranchName == "" || input.SerialNumber == "" {
		return domain.ErrValidation
	}

	asset, err := s.assetRepo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrAssetNotFound
		}
		return err
	}
	if asset.IsDispatched() {
		return domain.ErrAssetDispatched
	}

	rows, err := s.assetRepo.UpdateFields(ctx, trackingID, map[string]interface{}{
		"asset_name":    input.AssetName,
		"asset_code":    input.AssetCode,
		"branch_name":   input.BranchName,
		"serial_number": input.SerialNumber,
	})
	if err != nil {
		return err
	}
	if rows == 0 {
		// Dispatched or deleted between read and write
		return domain.ErrAssetDispatched
	}
	return nil
}

// Dispatch moves an Active asset to Dispatched exactly once, stamping the
// dispatch time, the dispatching user and that user's signature together.
func (s *AssetService) Dispatch(ctx context.Context, trackingID string, dispatcherID uint) error {
	dispatcher, err := s.userRepo.GetByID(ctx, dispatcherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if dispatcher.SignaturePath == "" {
		return domain.ErrSignatureMissing
	}

	dispatchedAt := s.now().Format(dispatchLayout)
	rows, err := s.assetRepo.MarkDispatched(ctx, trackingID, dispatchedAt, dispatcher.ID, dispatcher.SignaturePath)
	if err != nil {
		return err
	}
	if rows == 0 {
		exists, err := s.assetRepo.ExistsByTrackingID(ctx, trackingID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAssetDispatched
		}
		return domain.ErrAssetNotFound
	}
	return nil
}

// Delete removes an asset from either lifecycle state. Deleting a code
// that does not exist reports ErrAssetNotFound rather than the silent
// success of earlier releases.
func (s *AssetService) Delete(ctx context.Context, trackingID string) error {
	rows, err := s.assetRepo.Delete(ctx, trackingID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

// GetByTrackingID returns the full detail view of one asset
func (s *AssetService) GetByTrackingID(ctx context.Context, trackingID string) (*models.AssetDetailResponse, error) {
	asset, err := s.assetRepo.GetByTrackingID(ctx, trackingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, err
	}
	return asset.ToDetailResponse(), nil
}

// ListActive lists assets still at HQ, newest received first
func (s *AssetService) ListActive(ctx context.Context, page, limit int) (*ListAssetsOutput, error) {
	page, limit = normalizePage(page, limit)
	assets, total, err := s.assetRepo.ListActive(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return buildListOutput(assets, total, page, limit), nil
}

// ListDispatched lists dispatched assets, newest dispatched first
func (s *AssetService) ListDispatched(ctx context.Context, page, limit int) (*ListAssetsOutput, error) {
	page, limit = normalizePage(page, limit)
	assets, total, err := s.assetRepo.ListDispatched(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}
	return buildListOutput(assets, total, page, limit), nil
}

// Search filters one lifecycle scope by an allow-listed field. Empty terms
// and unknown fields are rejected at this boundary.
func (s *AssetService) Search(ctx context.Context, term, fieldLabel, scopeValue string) ([]*models.AssetResponse, error) {
	if term == "" {
		return nil, domain.ErrValidation
	}
	scope, err := domain.ParseSearchScope(scopeValue)
	if err != nil {
		return nil, err
	}
	field, err := domain.ParseSearchField(fieldLabel, scope)
	if err != nil {
		return nil, err
	}

	assets, err := s.assetRepo.Search(ctx, term, field, scope)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = asset.ToResponse()
	}
	return responses, nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func buildListOutput(assets []*models.Asset, total int64, page, limit int) *ListAssetsOutput {
	responses := make([]*models.AssetResponse, len(assets))
	for i, asset := range assets {
		responses[i] = asset.ToResponse()
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	return &ListAssetsOutput{
		Assets:     responses,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
