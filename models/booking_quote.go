package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BookingQuote is a persisted price calculation: the booking wizard quotes a
// price first, then completes the booking against the reference code.
type BookingQuote struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	ResourceID    uint   `gorm:"index;column:resource_id" json:"resource_id"`
	CountryCode   string `gorm:"column:country_code;size:2" json:"country_code"`

	BookingDate time.Time  `gorm:"column:booking_date" json:"booking_date"`
	TimeSlotID  string     `gorm:"column:time_slot_id;size:64" json:"time_slot_id,omitempty"`
	ExpiresAt   *time.Time `gorm:"column:expires_at" json:"expires_at,omitempty"`

	Guests    datatypes.JSON `gorm:"column:guests" json:"guests,omitempty"`
	Breakdown datatypes.JSON `gorm:"column:breakdown" json:"breakdown"`

	Total    float64 `gorm:"column:total" json:"total"`
	Currency string  `gorm:"column:currency;size:3" json:"currency"`

	Resource Resource `gorm:"foreignKey:ResourceID;references:ID" json:"resource,omitempty"`
}
