package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"estatefees/internal/models"
	"estatefees/internal/services/feeregistry"

	"gorm.io/gorm"
)

var (
	ErrAssetFeeNotFound = errors.New("asset fee not found")
	ErrInvalidFeeID     = errors.New("invalid asset fee id")
)

// AssetFeeRepository stores editable fee lines in the asset_fees table.
type AssetFeeRepository struct {
	db *gorm.DB
}

func NewAssetFeeRepository(db *gorm.DB) *AssetFeeRepository {
	return &AssetFeeRepository{db: db}
}

// ForAsset returns a feeregistry.Store scoped to assetID.
func (r *AssetFeeRepository) ForAsset(assetID string) feeregistry.Store {
	return &assetFeeStore{db: r.db, assetID: assetID}
}

// ListFees returns the fees of an asset ordered by creation.
func (r *AssetFeeRepository) ListFees(ctx context.Context, assetID string) ([]feeregistry.Entry, error) {
	var rows []models.AssetFee
	if err := r.db.WithContext(ctx).
		Where("asset_id = ?", assetID).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset fees: %w", err)
	}

	entries := make([]feeregistry.Entry, 0, len(rows))
	for _, row := range rows {
		id := strconv.FormatUint(uint64(row.ID), 10)
		entries = append(entries, feeregistry.Entry{
			ID:           id,
			StoreID:      id,
			Name:         row.Name,
			Value:        row.Value,
			IsPercentage: row.IsPercentage,
			Active:       row.Active,
			Type:         row.Type,
		})
	}
	return entries, nil
}

type assetFeeStore struct {
	db      *gorm.DB
	assetID string
}

func (s *assetFeeStore) CreateFee(ctx context.Context, payload feeregistry.FeePayload) (string, error) {
	row := &models.AssetFee{
		AssetID:      s.assetID,
		Name:         payload.Name,
		Value:        payload.Value,
		IsPercentage: payload.IsPercentage,
		Active:       payload.Active,
		Type:         payload.Type,
	}
	// Select("*") so a false Active is written instead of the column default
	if err := s.db.WithContext(ctx).Select("*").Create(row).Error; err != nil {
		return "", fmt.Errorf("failed to create asset fee: %w", err)
	}
	return strconv.FormatUint(uint64(row.ID), 10), nil
}

func (s *assetFeeStore) UpdateFee(ctx context.Context, id string, payload feeregistry.FeePayload) error {
	feeID, err := parseFeeID(id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Model(&models.AssetFee{}).
		Where("id = ? AND asset_id = ?", feeID, s.assetID).
		Updates(map[string]interface{}{
			"name":          payload.Name,
			"value":         payload.Value,
			"is_percentage": payload.IsPercentage,
			"active":        payload.Active,
			"type":          payload.Type,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update asset fee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAssetFeeNotFound
	}
	return nil
}

func (s *assetFeeStore) DeleteFee(ctx context.Context, id string) error {
	feeID, err := parseFeeID(id)
	if err != nil {
		return err
	}

	result := s.db.WithContext(ctx).
		Where("id = ? AND asset_id = ?", feeID, s.assetID).
		Delete(&models.AssetFee{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete asset fee: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAssetFeeNotFound
	}
	return nil
}

func parseFeeID(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFeeID, id)
	}
	return uint(n), nil
}
