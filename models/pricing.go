package models

import "time"

// GuestCategory determines which base price a guest contributes.
type GuestCategory string

const (
	GuestAdult  GuestCategory = "adult"
	GuestChild  GuestCategory = "child"
	GuestInfant GuestCategory = "infant"
	GuestSenior GuestCategory = "senior"
)

// BookingGuest is one guest in a booking request.
type BookingGuest struct {
	Category  GuestCategory `json:"category"`
	Age       *int          `json:"age,omitempty"`
	IsPrimary bool          `json:"isPrimary"`
}

// RuleType is informational; the actual effect of a rule is driven by
// Pricing.Type.
type RuleType string

const (
	RuleBase          RuleType = "base"
	RuleGuestCategory RuleType = "guest_category"
	RuleTimeSlot      RuleType = "time_slot"
	RuleSeasonal      RuleType = "seasonal"
	RuleGroup         RuleType = "group"
)

type RulePricingType string

const (
	PricingFixed      RulePricingType = "fixed"
	PricingPercentage RulePricingType = "percentage"
	PricingPerGuest   RulePricingType = "per_guest"
)

type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// RuleConditions are optional predicates; a nil field is not checked.
type RuleConditions struct {
	MinGuests     *int           `json:"minGuests,omitempty"`
	MaxGuests     *int           `json:"maxGuests,omitempty"`
	DateRange     *DateRange     `json:"dateRange,omitempty"`
	DaysOfWeek    []int          `json:"dayOfWeek,omitempty"` // 0=Sunday..6=Saturday
	TimeSlotIDs   []string       `json:"timeSlotIds,omitempty"`
	GuestCategory *GuestCategory `json:"guestCategory,omitempty"`
}

type RulePricing struct {
	Type  RulePricingType `json:"type"`
	Value float64         `json:"value"`
}

// PricingRule is a conditional price adjustment. A rule with no conditions
// always applies.
type PricingRule struct {
	Type       RuleType        `json:"type"`
	Conditions *RuleConditions `json:"conditions,omitempty"`
	Pricing    RulePricing     `json:"pricing"`
}

// TimeSlot carries the slot chosen in the booking wizard. PriceModifier is a
// multiplier applied to the base price before any rule runs.
type TimeSlot struct {
	ID            string  `json:"id"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Capacity      int     `json:"capacity"`
	Available     int     `json:"available"`
	PriceModifier float64 `json:"priceModifier"`
}

// Fee is applied to the subtotal only when Mandatory is true; every fee is
// still echoed in the breakdown.
type Fee struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Type      string  `json:"type"`
	Mandatory bool    `json:"mandatory"`
}

// Tax in input form has Amount zero; the calculator fills Rate with the
// effective rate used and Amount with the computed value.
type Tax struct {
	Name      string  `json:"name"`
	Rate      float64 `json:"rate"`
	Inclusive bool    `json:"inclusive"`
	Amount    float64 `json:"amount"`
}

// ResourcePricing is the per-resource pricing configuration supplied by the
// catalog.
type ResourcePricing struct {
	BasePrices map[GuestCategory]float64 `json:"basePrices"`
	Rules      []PricingRule             `json:"rules,omitempty"`
	Taxes      []Tax                     `json:"taxes,omitempty"`
	Fees       []Fee                     `json:"fees,omitempty"`
	Currency   string                    `json:"currency"`
}

// PricingBreakdown is the calculation result. Discounts carry the applied
// discount objects with Value rewritten to the computed monetary amount.
type PricingBreakdown struct {
	BasePrice float64    `json:"basePrice"`
	Subtotal  float64    `json:"subtotal"`
	Discounts []Discount `json:"discounts"`
	Taxes     []Tax      `json:"taxes"`
	Fees      []Fee      `json:"fees"`
	Total     float64    `json:"total"`
	Currency  string     `json:"currency"`
}

// CancellationRule maps an hours-before-event threshold to a refund
// percentage and a flat fee.
type CancellationRule struct {
	HoursBeforeStart float64 `json:"hoursBeforeStart"`
	RefundPercentage float64 `json:"refundPercentage"`
	Fee              float64 `json:"fee"`
}

type CancellationPolicy struct {
	Rules []CancellationRule `json:"rules"`
}

type RefundBreakdown struct {
	RefundAmount     float64 `json:"refundAmount"`
	Fee              float64 `json:"fee"`
	RefundPercentage float64 `json:"refundPercentage"`
}
