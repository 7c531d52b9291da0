package feeregistry

import (
	"context"
	"strings"

	"estatefees/internal/models"
)

// TempIDPrefix marks ids that have not been confirmed by the backing store.
const TempIDPrefix = "tmp-"

// Store persists registry entries. Every call may fail; failures are
// surfaced to the caller and never retried here.
type Store interface {
	CreateFee(ctx context.Context, payload FeePayload) (string, error)
	UpdateFee(ctx context.Context, id string, payload FeePayload) error
	DeleteFee(ctx context.Context, id string) error
}

// Lister loads the confirmed fees of an asset, used to hydrate a registry.
type Lister interface {
	ListFees(ctx context.Context, assetID string) ([]Entry, error)
}

// FeePayload is the body sent to the backing store.
type FeePayload struct {
	AssetID      string              `json:"asset_id"`
	Name         string              `json:"name"`
	Value        float64             `json:"value"`
	IsPercentage bool                `json:"is_percentage"`
	Active       bool                `json:"active"`
	Type         models.AssetFeeType `json:"type"`
}

// Input describes a new fee entry.
type Input struct {
	Name         string              `json:"name"`
	Value        float64             `json:"value"`
	IsPercentage bool                `json:"is_percentage"`
	Active       *bool               `json:"active,omitempty"`
	Type         models.AssetFeeType `json:"type"`
}

// Patch carries the fields an edit changes; nil fields are left untouched.
type Patch struct {
	Name         *string              `json:"name,omitempty"`
	Value        *float64             `json:"value,omitempty"`
	IsPercentage *bool                `json:"is_percentage,omitempty"`
	Active       *bool                `json:"active,omitempty"`
	Type         *models.AssetFeeType `json:"type,omitempty"`
}

// Entry is one editable fee line of an asset.
type Entry struct {
	ID           string              `json:"id"`
	StoreID      string              `json:"store_id,omitempty"`
	Name         string              `json:"name"`
	Value        float64             `json:"value"`
	IsPercentage bool                `json:"is_percentage"`
	Active       bool                `json:"active"`
	Type         models.AssetFeeType `json:"type"`
}

// Confirmed reports whether the backing store has acknowledged the entry.
func (e Entry) Confirmed() bool {
	return e.StoreID != ""
}

func (e Entry) payload(assetID string) FeePayload {
	return FeePayload{
		AssetID:      assetID,
		Name:         e.Name,
		Value:        e.Value,
		IsPercentage: e.IsPercentage,
		Active:       e.Active,
		Type:         e.Type,
	}
}

func (p Patch) apply(e Entry) Entry {
	if p.Name != nil {
		e.Name = strings.TrimSpace(*p.Name)
	}
	if p.Value != nil {
		e.Value = *p.Value
	}
	if p.IsPercentage != nil {
		e.IsPercentage = *p.IsPercentage
	}
	if p.Active != nil {
		e.Active = *p.Active
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	return e
}

// Buckets groups entries by fee type.
type Buckets map[models.AssetFeeType][]Entry
