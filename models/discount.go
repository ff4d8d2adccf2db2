package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type DiscountType string

const (
	DiscountPercentage   DiscountType = "percentage"
	DiscountFixed        DiscountType = "fixed"
	DiscountFreeShipping DiscountType = "freeShipping"
)

// DiscountConditions are all optional; absent fields are not checked.
type DiscountConditions struct {
	MinAmount  *float64   `json:"minAmount,omitempty"`
	ValidFrom  *time.Time `json:"validFrom,omitempty"`
	ValidTo    *time.Time `json:"validTo,omitempty"`
	UsageLimit *int       `json:"usageLimit,omitempty"`
	UsageCount int        `json:"usageCount"`
	MaxAmount  *float64   `json:"maxAmount,omitempty"`
}

// Discount is the registry value looked up by code at calculation time.
type Discount struct {
	ID         string              `json:"id"`
	Code       string              `json:"code"`
	Type       DiscountType        `json:"type"`
	Value      float64             `json:"value"`
	Conditions *DiscountConditions `json:"conditions,omitempty"`
}

// DiscountCode is the persisted form of a registry entry. Active rows are
// mirrored into the in-memory calculator registry on startup and after every
// admin mutation.
type DiscountCode struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Code       string         `gorm:"column:code;size:64;uniqueIndex" json:"code"`
	Type       DiscountType   `gorm:"column:type;size:32" json:"type"`
	Value      float64        `gorm:"column:value" json:"value"`
	Conditions datatypes.JSON `gorm:"column:conditions" json:"conditions,omitempty"`
	Active     bool           `gorm:"column:active;default:true" json:"active"`
}

// ToDiscount converts the persisted row into the registry value form.
func (d *DiscountCode) ToDiscount() (Discount, error) {
	out := Discount{
		ID:    d.Code,
		Code:  d.Code,
		Type:  d.Type,
		Value: d.Value,
	}
	if len(d.Conditions) > 0 {
		var cond DiscountConditions
		if err := json.Unmarshal(d.Conditions, &cond); err != nil {
			return Discount{}, err
		}
		out.Conditions = &cond
	}
	return out, nil
}
