package models

import "time"

// AssetFeeType is the bucket an editable per-asset fee belongs to.
type AssetFeeType string

const (
	AssetFeeTypeRegistration AssetFeeType = "registration"
	AssetFeeTypeLegal        AssetFeeType = "legal"
	AssetFeeTypePlatform     AssetFeeType = "platform"
	AssetFeeTypeBrokerage    AssetFeeType = "brokerage"
)

// AssetFeeTypes returns the editable fee buckets in display order.
func AssetFeeTypes() []AssetFeeType {
	return []AssetFeeType{
		AssetFeeTypeRegistration,
		AssetFeeTypeLegal,
		AssetFeeTypePlatform,
		AssetFeeTypeBrokerage,
	}
}

func (t AssetFeeType) Valid() bool {
	switch t {
	case AssetFeeTypeRegistration, AssetFeeTypeLegal, AssetFeeTypePlatform, AssetFeeTypeBrokerage:
		return true
	}
	return false
}

// AssetFee is the persisted row behind an editable fee registry entry.
type AssetFee struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	AssetID      string       `gorm:"index;not null" json:"asset_id"`
	Name         string       `gorm:"not null" json:"name"`
	Value        float64      `gorm:"not null" json:"value"`
	IsPercentage bool         `gorm:"default:false" json:"is_percentage"`
	Active       bool         `gorm:"default:true" json:"active"`
	Type         AssetFeeType `gorm:"type:varchar(32);not null" json:"type"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
