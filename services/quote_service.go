// services/quote_service.go
package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tourism-pricing-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrQuoteNotFound = errors.New("quote_not_found")

// quoteTTL: the wizard must complete the booking within this window,
// otherwise the quoted price is recalculated.
const quoteTTL = 24 * time.Hour

// QuoteInput is one calculation request from the booking wizard.
type QuoteInput struct {
	ResourceID    uint
	Guests        []models.BookingGuest
	Date          time.Time
	TimeSlotID    string
	DiscountCodes []string
	CountryCode   string
}

// QuoteService runs the calculator against catalog pricing and persists the
// result under a reference code the booking flow completes against.
type QuoteService struct {
	DB      *gorm.DB
	Calc    *PriceCalculator
	Catalog *CatalogService
}

func NewQuoteService(db *gorm.DB, calc *PriceCalculator, catalog *CatalogService) *QuoteService {
	return &QuoteService{DB: db, Calc: calc, Catalog: catalog}
}

// CreateQuote loads the resource pricing, resolves the requested slot,
// computes the breakdown and stores the snapshot.
func (s *QuoteService) CreateQuote(input QuoteInput) (models.BookingQuote, error) {
	resource, err := s.Catalog.GetResource(input.ResourceID)
	if err != nil {
		return models.BookingQuote{}, err
	}

	pricing, err := resource.Pricing()
	if err != nil {
		return models.BookingQuote{}, fmt.Errorf("resource %d has invalid pricing: %w", resource.ID, err)
	}

	var slot *models.TimeSlot
	if input.TimeSlotID != "" {
		slot, err = s.Catalog.FindTimeSlot(&resource, input.TimeSlotID)
		if err != nil {
			return models.BookingQuote{}, err
		}
	}

	breakdown := s.Calc.CalculatePrice(pricing, input.Guests, input.Date, slot, input.DiscountCodes, input.CountryCode)

	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return models.BookingQuote{}, fmt.Errorf("failed to encode breakdown: %w", err)
	}
	guestsJSON, err := json.Marshal(input.Guests)
	if err != nil {
		return models.BookingQuote{}, fmt.Errorf("failed to encode guests: %w", err)
	}

	countryCode := input.CountryCode
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	expiresAt := time.Now().UTC().Add(quoteTTL)
	quote := models.BookingQuote{
		ReferenceCode: uuid.NewString(),
		ResourceID:    resource.ID,
		CountryCode:   countryCode,
		BookingDate:   input.Date,
		TimeSlotID:    input.TimeSlotID,
		ExpiresAt:     &expiresAt,
		Guests:        guestsJSON,
		Breakdown:     breakdownJSON,
		Total:         breakdown.Total,
		Currency:      breakdown.Currency,
	}

	if err := s.DB.Create(&quote).Error; err != nil {
		return models.BookingQuote{}, fmt.Errorf("failed to save quote: %w", err)
	}
	return quote, nil
}

// GetQuote fetches a quote by reference code; expired quotes are reported as
// not found so the wizard requotes.
func (s *QuoteService) GetQuote(referenceCode string) (models.BookingQuote, error) {
	var quote models.BookingQuote
	err := s.DB.Where("reference_code = ?", referenceCode).First(&quote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.BookingQuote{}, ErrQuoteNotFound
		}
		return models.BookingQuote{}, fmt.Errorf("failed to load quote %q: %w", referenceCode, err)
	}
	if quote.ExpiresAt != nil && time.Now().UTC().After(*quote.ExpiresAt) {
		return models.BookingQuote{}, ErrQuoteNotFound
	}
	return quote, nil
}
