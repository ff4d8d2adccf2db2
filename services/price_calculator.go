// services/price_calculator.go
package services

import (
	"sync"
	"time"

	"tourism-pricing-backend/models"
)

// Validation reasons surfaced by ValidateDiscountCode.
const (
	ReasonDiscountNotFound = "Discount code not found"
	ReasonDiscountNotValid = "Discount code is not valid for this booking"
)

// DefaultCountryCode is assumed when the caller does not supply one.
const DefaultCountryCode = "FR"

// DiscountValidation is the result of an explicit code check, for callers
// that want user feedback instead of the silent skip CalculatePrice applies.
type DiscountValidation struct {
	IsValid  bool             `json:"isValid"`
	Discount *models.Discount `json:"discount,omitempty"`
	Reason   string           `json:"reason,omitempty"`
}

// PriceCalculator derives booking price breakdowns and refunds. The
// calculation itself is a pure function of its arguments; the calculator only
// carries two mutable maps (country tax-rate overrides and the discount-code
// registry), both guarded by the mutex so admin mutations and calculations
// can run concurrently.
type PriceCalculator struct {
	mu            sync.RWMutex
	taxRates      map[string]float64
	discountCodes map[string]models.Discount

	// now is swapped in tests to freeze validity-window and refund checks
	now func() time.Time
}

func NewPriceCalculator() *PriceCalculator {
	return &PriceCalculator{
		taxRates: map[string]float64{
			"FR": 20,
			"DE": 19,
			"ES": 21,
			"IT": 22,
			"GB": 20,
		},
		discountCodes: map[string]models.Discount{},
		now:           time.Now,
	}
}

// CalculatePrice computes the breakdown for one booking request. Stages run
// in a fixed order, each feeding the next: base price, time-slot modifier,
// rules (each rule sees the running price left by the previous one),
// discounts (every code in the batch is valued against the same pre-discount
// subtotal), mandatory fees, then taxes.
//
// Malformed or missing optional data never fails the calculation: a guest
// category absent from the base-price table contributes 0, an unknown or
// invalid discount code is skipped, absent rule conditions hold vacuously.
func (c *PriceCalculator) CalculatePrice(
	pricing models.ResourcePricing,
	guests []models.BookingGuest,
	date time.Time,
	timeSlot *models.TimeSlot,
	discountCodes []string,
	countryCode string,
) models.PricingBreakdown {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	c.mu.RLock()
	registry := make(map[string]models.Discount, len(c.discountCodes))
	for code, d := range c.discountCodes {
		registry[code] = d
	}
	countryRate, hasCountryRate := c.taxRates[countryCode]
	c.mu.RUnlock()

	now := c.now()

	// Stage 1: base price from per-category unit prices.
	basePrice := 0.0
	for _, guest := range guests {
		basePrice += pricing.BasePrices[guest.Category]
	}

	// Stage 2: slot modifier first, then rules in list order against the
	// running price.
	price := basePrice
	if timeSlot != nil {
		price *= timeSlot.PriceModifier
	}
	for _, rule := range pricing.Rules {
		if !ruleApplies(rule, guests, date, timeSlot) {
			continue
		}
		price = applyRulePricing(rule.Pricing, price, len(guests))
	}

	subtotal := price

	// Stage 3: discounts. All amounts are valued against the same
	// pre-discount subtotal, summed, then subtracted once (floored at 0).
	applied := make([]models.Discount, 0, len(discountCodes))
	discountTotal := 0.0
	for _, code := range discountCodes {
		discount, ok := registry[code]
		if !ok {
			continue
		}
		if !discountIsValid(discount, subtotal, now) {
			continue
		}
		amount := discountAmount(discount, subtotal)
		discount.Value = amount
		applied = append(applied, discount)
		discountTotal += amount
	}
	subtotal -= discountTotal
	if subtotal < 0 {
		subtotal = 0
	}

	// Stage 4: mandatory fees join the subtotal; every fee is echoed in the
	// breakdown either way.
	for _, fee := range pricing.Fees {
		if fee.Mandatory {
			subtotal += fee.Amount
		}
	}

	// Stage 5: taxes. A country override wins over the definition's own
	// rate. Inclusive taxes are extracted from the subtotal and reported
	// without changing the total; exclusive taxes are added on top.
	taxes := make([]models.Tax, 0, len(pricing.Taxes))
	taxTotal := 0.0
	for _, tax := range pricing.Taxes {
		rate := tax.Rate
		if hasCountryRate {
			rate = countryRate
		}
		if tax.Inclusive {
			tax.Amount = subtotal * rate / (100 + rate)
		} else {
			tax.Amount = subtotal * rate / 100
			taxTotal += tax.Amount
		}
		tax.Rate = rate
		taxes = append(taxes, tax)
	}

	fees := make([]models.Fee, 0, len(pricing.Fees))
	fees = append(fees, pricing.Fees...)

	return models.PricingBreakdown{
		BasePrice: basePrice,
		Subtotal:  subtotal,
		Discounts: applied,
		Taxes:     taxes,
		Fees:      fees,
		Total:     subtotal + taxTotal,
		Currency:  pricing.Currency,
	}
}

// ruleApplies reports whether every present condition holds. Absent
// conditions hold vacuously. A timeSlotIds condition is only checked when a
// slot was actually supplied; without a slot the check is skipped and the
// rule still applies.
func ruleApplies(rule models.PricingRule, guests []models.BookingGuest, date time.Time, timeSlot *models.TimeSlot) bool {
	cond := rule.Conditions
	if cond == nil {
		return true
	}

	guestCount := len(guests)
	if cond.MinGuests != nil && guestCount < *cond.MinGuests {
		return false
	}
	if cond.MaxGuests != nil && guestCount > *cond.MaxGuests {
		return false
	}
	if cond.DateRange != nil {
		if date.Before(cond.DateRange.Start) || date.After(cond.DateRange.End) {
			return false
		}
	}
	if len(cond.DaysOfWeek) > 0 {
		weekday := int(date.Weekday()) // 0=Sunday..6=Saturday
		found := false
		for _, day := range cond.DaysOfWeek {
			if day == weekday {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if len(cond.TimeSlotIDs) > 0 && timeSlot != nil {
		found := false
		for _, id := range cond.TimeSlotIDs {
			if id == timeSlot.ID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if cond.GuestCategory != nil {
		found := false
		for _, guest := range guests {
			if guest.Category == *cond.GuestCategory {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func applyRulePricing(rp models.RulePricing, price float64, guestCount int) float64 {
	switch rp.Type {
	case models.PricingFixed:
		return price + rp.Value
	case models.PricingPercentage:
		return price * (1 + rp.Value/100)
	case models.PricingPerGuest:
		return price + rp.Value*float64(guestCount)
	default:
		return price
	}
}

// discountIsValid checks the optional conditions against the pre-discount
// subtotal and the wall clock (not the booking date).
func discountIsValid(discount models.Discount, subtotal float64, now time.Time) bool {
	cond := discount.Conditions
	if cond == nil {
		return true
	}
	if cond.MinAmount != nil && subtotal < *cond.MinAmount {
		return false
	}
	if cond.ValidFrom != nil && now.Before(*cond.ValidFrom) {
		return false
	}
	if cond.ValidTo != nil && now.After(*cond.ValidTo) {
		return false
	}
	if cond.UsageLimit != nil && cond.UsageCount >= *cond.UsageLimit {
		return false
	}
	return true
}

func discountAmount(discount models.Discount, subtotal float64) float64 {
	var amount float64
	switch discount.Type {
	case models.DiscountPercentage:
		amount = subtotal * discount.Value / 100
	case models.DiscountFixed:
		amount = discount.Value
	case models.DiscountFreeShipping:
		// no shipping line in this model; reserved
		amount = 0
	}
	if discount.Conditions != nil && discount.Conditions.MaxAmount != nil && amount > *discount.Conditions.MaxAmount {
		amount = *discount.Conditions.MaxAmount
	}
	return amount
}

// CalculateRefund picks the cancellation rule with the smallest
// hoursBeforeStart among those whose threshold is still satisfied. Cancelling
// closer to the event than any threshold forfeits the full amount.
func (c *PriceCalculator) CalculateRefund(
	originalAmount float64,
	cancellationDate time.Time,
	eventDate time.Time,
	policy models.CancellationPolicy,
) models.RefundBreakdown {
	hoursUntilEvent := eventDate.Sub(cancellationDate).Hours()

	var selected *models.CancellationRule
	for i := range policy.Rules {
		rule := &policy.Rules[i]
		if rule.HoursBeforeStart > hoursUntilEvent {
			continue
		}
		if selected == nil || rule.HoursBeforeStart < selected.HoursBeforeStart {
			selected = rule
		}
	}

	if selected == nil {
		return models.RefundBreakdown{
			RefundAmount:     0,
			Fee:              originalAmount,
			RefundPercentage: 0,
		}
	}

	refund := originalAmount*selected.RefundPercentage/100 - selected.Fee
	if refund < 0 {
		refund = 0
	}
	return models.RefundBreakdown{
		RefundAmount:     refund,
		Fee:              selected.Fee,
		RefundPercentage: selected.RefundPercentage,
	}
}

// AddDiscountCode registers a code; last write wins.
func (c *PriceCalculator) AddDiscountCode(code string, discount models.Discount) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.discountCodes[code] = discount
}

func (c *PriceCalculator) RemoveDiscountCode(code string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.discountCodes, code)
}

// ValidateDiscountCode is the explicit lookup+validity check used by the
// booking wizard for immediate user feedback.
func (c *PriceCalculator) ValidateDiscountCode(code string, subtotal float64, guests []models.BookingGuest) DiscountValidation {
	c.mu.RLock()
	discount, ok := c.discountCodes[code]
	c.mu.RUnlock()

	if !ok {
		return DiscountValidation{IsValid: false, Reason: ReasonDiscountNotFound}
	}
	if !discountIsValid(discount, subtotal, c.now()) {
		return DiscountValidation{IsValid: false, Reason: ReasonDiscountNotValid}
	}
	return DiscountValidation{IsValid: true, Discount: &discount}
}

// GetAvailableDiscounts returns a snapshot of every registered discount,
// valid or not.
func (c *PriceCalculator) GetAvailableDiscounts() []models.Discount {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Discount, 0, len(c.discountCodes))
	for _, d := range c.discountCodes {
		out = append(out, d)
	}
	return out
}

// SetTaxRate overrides the default tax rate for a country code.
func (c *PriceCalculator) SetTaxRate(countryCode string, rate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.taxRates[countryCode] = rate
}

// TaxRate returns the configured rate for a country, if any.
func (c *PriceCalculator) TaxRate(countryCode string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rate, ok := c.taxRates[countryCode]
	return rate, ok
}
