package repositories

import (
	"context"
	"strings"

	"pnp-asset-tracker/internal/adapters/persistence/models"
	"pnp-asset-tracker/internal/core/domain"

	"gorm.io/gorm"
)

// searchColumns maps the allow-listed search fields to their columns.
// Anything not in this map was already rejected by domain.ParseSearchField.
var searchColumns = map[domain.SearchField]string{
	domain.FieldTrackingID:     "tracking_id",
	domain.FieldAssetName:      "asset_name",
	domain.FieldAssetCode:      "asset_code",
	domain.FieldBranchName:     "branch_name",
	domain.FieldDateReceived:   "date_received",
	domain.FieldDateDispatched: "date_dispatched",
}

// assetRepository implements AssetRepository interface
type assetRepository struct {
	db *gorm.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *gorm.DB) AssetRepository {
	return &assetRepository{db: db}
}

// Create generates a tracking ID and inserts the asset in one transaction,
// so the uniqueness check and the insert cannot be interleaved by another
// writer.
func (r *assetRepository) Create(ctx context.Context, asset *models.Asset, generate func(exists func(trackingID string) (bool, error)) (string, error)) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists := func(trackingID string) (bool, error) {
			var count int64
			err := tx.Model(&models.Asset{}).Where("tracking_id = ?", trackingID).Count(&count).Error
			return count > 0, err
		}

		trackingID, err := generate(exists)
		if err != nil {
			return err
		}

		asset.TrackingID = trackingID
		return tx.Create(asset).Error
	})
}

// GetByTrackingID gets an asset by tracking ID with user relations
func (r *assetRepository) GetByTrackingID(ctx context.Context, trackingID string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.WithContext(ctx).
		Preload("ReceivedBy").
		Preload("DispatchedBy").
		Where("tracking_id = ?", trackingID).
		First(&asset).Error
	if err != nil {
		return nil, err
	}
	return &asset, nil
}

// Update saves an asset
func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	return r.db.WithContext(ctx).Save(asset).Error
}

// UpdateFields updates the editable columns of an Active asset and returns
// the number of rows touched. The dispatch guard keeps a record that was
// dispatched after the caller's read from being rewritten.
func (r *assetRepository) UpdateFields(ctx context.Context, trackingID string, fields map[string]interface{}) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("tracking_id = ?", trackingID).
		Where("dispatched_by_user_id IS NULL").
		Updates(fields)
	return res.RowsAffected, res.Error
}

// MarkDispatched performs the Active -> Dispatched transition as a single
// guarded update. Zero rows affected means the asset was missing or already
// dispatched; the service tells those apart.
func (r *assetRepository) MarkDispatched(ctx context.Context, trackingID string, dispatchedAt string, dispatcherID uint, signaturePath string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("tracking_id = ?", trackingID).
		Where("dispatched_by_user_id IS NULL").
		Updates(map[string]interface{}{
			"current_status":               string(domain.StatusDispatched),
			"date_dispatched":              dispatchedAt,
			"dispatched_by_user_id":        dispatcherID,
			"dispatched_by_signature_path": signaturePath,
		})
	return res.RowsAffected, res.Error
}

// Delete removes an asset regardless of lifecycle state
func (r *assetRepository) Delete(ctx context.Context, trackingID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("tracking_id = ?", trackingID).
		Delete(&models.Asset{})
	return res.RowsAffected, res.Error
}

// ListActive lists assets still at HQ, newest received first
func (r *assetRepository) ListActive(ctx context.Context, offset, limit int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("dispatched_by_user_id IS NULL").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("ReceivedBy").
		Where("dispatched_by_user_id IS NULL").
		Order("date_received DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&assets).Error
	return assets, total, err
}

// ListDispatched lists dispatched assets, newest dispatched first
func (r *assetRepository) ListDispatched(ctx context.Context, offset, limit int) ([]*models.Asset, int64, error) {
	var assets []*models.Asset
	var total int64

	if err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("dispatched_by_user_id IS NOT NULL").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("ReceivedBy").
		Preload("DispatchedBy").
		Where("dispatched_by_user_id IS NOT NULL").
		Order("date_dispatched DESC").
		Order("id DESC").
		Offset(offset).
		Limit(limit).
		Find(&assets).Error
	return assets, total, err
}

// Search filters one lifecycle scope by a single allow-listed field.
// Date fields match exactly; everything else by substring containment.
func (r *assetRepository) Search(ctx context.Context, term string, field domain.SearchField, scope domain.SearchScope) ([]*models.Asset, error) {
	column, ok := searchColumns[field]
	if !ok {
		return nil, domain.ErrInvalidSearchField
	}

	query := r.db.WithContext(ctx).Preload("ReceivedBy")

	if scope == domain.ScopeDispatched {
		query = query.Preload("DispatchedBy").
			Where("dispatched_by_user_id IS NOT NULL").
			Order("date_dispatched DESC")
	} else {
		query = query.Where("dispatched_by_user_id IS NULL").
			Order("date_received DESC")
	}
	query = query.Order("id DESC")

	if field.IsDate() {
		query = query.Where(column+" = ?", term)
	} else {
		query = query.Where(column+" LIKE ? ESCAPE '!'", "%"+escapeLike(term)+"%")
	}

	var assets []*models.Asset
	err := query.Find(&assets).Error
	return assets, err
}

// ExistsByTrackingID checks if a tracking ID is already taken
func (r *assetRepository) ExistsByTrackingID(ctx context.Context, trackingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Asset{}).
		Where("tracking_id = ?", trackingID).
		Count(&count).Error
	return count > 0, err
}

// escapeLike neutralizes LIKE wildcards in a user-supplied term. The
// matching query declares '!' as its escape character, which both the
// MySQL and SQLite drivers accept.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, "!", "!!")
	term = strings.ReplaceAll(term, "%", "!%")
	term = strings.ReplaceAll(term, "_", "!_")
	return term
}
