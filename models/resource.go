package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resource is one bookable tourism resource from the catalog (museum, guided
// tour, event...). Pricing configuration is stored as JSON columns so the
// shapes stay identical to what the booking front-end exchanges.
type Resource struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name         string `gorm:"column:name;size:255" json:"name"`
	ResourceType string `gorm:"column:resource_type;size:64" json:"resourceType,omitempty"`
	City         string `gorm:"column:city;size:128" json:"city,omitempty"`

	BasePrices datatypes.JSON `gorm:"column:base_prices" json:"basePrices"`
	Rules      datatypes.JSON `gorm:"column:rules" json:"rules,omitempty"`
	Taxes      datatypes.JSON `gorm:"column:taxes" json:"taxes,omitempty"`
	Fees       datatypes.JSON `gorm:"column:fees" json:"fees,omitempty"`
	TimeSlots  datatypes.JSON `gorm:"column:time_slots" json:"timeSlots,omitempty"`

	Currency string `gorm:"column:currency;size:3;default:EUR" json:"currency"`

	CancellationPolicy datatypes.JSON `gorm:"column:cancellation_policy" json:"cancellationPolicy,omitempty"`
}

// Pricing unmarshals the JSON columns into the value form the calculator
// consumes.
func (r *Resource) Pricing() (ResourcePricing, error) {
	out := ResourcePricing{Currency: r.Currency}

	if len(r.BasePrices) > 0 {
		if err := json.Unmarshal(r.BasePrices, &out.BasePrices); err != nil {
			return ResourcePricing{}, fmt.Errorf("decode base prices: %w", err)
		}
	}
	if out.BasePrices == nil {
		out.BasePrices = map[GuestCategory]float64{}
	}
	if len(r.Rules) > 0 {
		if err := json.Unmarshal(r.Rules, &out.Rules); err != nil {
			return ResourcePricing{}, fmt.Errorf("decode rules: %w", err)
		}
	}
	if len(r.Taxes) > 0 {
		if err := json.Unmarshal(r.Taxes, &out.Taxes); err != nil {
			return ResourcePricing{}, fmt.Errorf("decode taxes: %w", err)
		}
	}
	if len(r.Fees) > 0 {
		if err := json.Unmarshal(r.Fees, &out.Fees); err != nil {
			return ResourcePricing{}, fmt.Errorf("decode fees: %w", err)
		}
	}
	return out, nil
}

// Slots unmarshals the configured time slots; nil when none are configured.
func (r *Resource) Slots() ([]TimeSlot, error) {
	if len(r.TimeSlots) == 0 {
		return nil, nil
	}
	var slots []TimeSlot
	if err := json.Unmarshal(r.TimeSlots, &slots); err != nil {
		return nil, fmt.Errorf("decode time slots: %w", err)
	}
	return slots, nil
}

// Policy unmarshals the cancellation policy; nil when none is configured.
func (r *Resource) Policy() (*CancellationPolicy, error) {
	if len(r.CancellationPolicy) == 0 {
		return nil, nil
	}
	var policy CancellationPolicy
	if err := json.Unmarshal(r.CancellationPolicy, &policy); err != nil {
		return nil, fmt.Errorf("decode cancellation policy: %w", err)
	}
	return &policy, nil
}
