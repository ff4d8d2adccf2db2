// controllers/pricing_controller.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"tourism-pricing-backend/models"
	"tourism-pricing-backend/services"
	"tourism-pricing-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type QuoteRequest struct {
	ResourceID    uint                  `json:"resource_id" binding:"required"`
	Guests        []models.BookingGuest `json:"guests" binding:"required"`
	Date          string                `json:"date" binding:"required"`
	TimeSlotID    string                `json:"time_slot_id,omitempty"`
	DiscountCodes []string              `json:"discount_codes,omitempty"`
	CountryCode   string                `json:"country_code,omitempty"`
}

type RefundRequest struct {
	OriginalAmount   float64                    `json:"original_amount" binding:"required"`
	CancellationDate string                     `json:"cancellation_date" binding:"required"`
	EventDate        string                     `json:"event_date" binding:"required"`
	Policy           *models.CancellationPolicy `json:"policy,omitempty"`
	ResourceID       uint                       `json:"resource_id,omitempty"`
}

type ValidateDiscountRequest struct {
	Code     string                `json:"code" binding:"required"`
	Subtotal float64               `json:"subtotal"`
	Guests   []models.BookingGuest `json:"guests,omitempty"`
}

type TaxRateRequest struct {
	Rate float64 `json:"rate" binding:"required"`
}

// parseFlexibleDate accepts the date-only and the full RFC3339 forms the
// front-end sends.
func parseFlexibleDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// ---------------------------
// Controller
// ---------------------------

type PricingController struct {
	QuoteSvc *services.QuoteService
	Catalog  *services.CatalogService
	Calc     *services.PriceCalculator
}

func NewPricingController(quoteSvc *services.QuoteService, catalog *services.CatalogService, calc *services.PriceCalculator) *PricingController {
	return &PricingController{QuoteSvc: quoteSvc, Catalog: catalog, Calc: calc}
}

// CreateQuote runs a full price calculation against catalog pricing and
// returns the persisted quote with its breakdown.
func (pc *PricingController) CreateQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	date, err := parseFlexibleDate(req.Date)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD or RFC3339")
		return
	}

	quote, err := pc.QuoteSvc.CreateQuote(services.QuoteInput{
		ResourceID:    req.ResourceID,
		Guests:        req.Guests,
		Date:          date,
		TimeSlotID:    req.TimeSlotID,
		DiscountCodes: req.DiscountCodes,
		CountryCode:   req.CountryCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrResourceNotFound):
			utils.JSONError(c, http.StatusNotFound, "resource not found")
		case errors.Is(err, services.ErrTimeSlotNotFound):
			utils.JSONError(c, http.StatusBadRequest, "unknown time slot for this resource")
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create quote")
		}
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, quote)
}

func (pc *PricingController) GetQuote(c *gin.Context) {
	ref := c.Param("ref")
	quote, err := pc.QuoteSvc.GetQuote(ref)
	if err != nil {
		if errors.Is(err, services.ErrQuoteNotFound) {
			utils.JSONError(c, http.StatusNotFound, "quote not found or expired")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load quote")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, quote)
}

// CalculateRefund applies a cancellation policy, either supplied inline or
// taken from the resource's configured policy.
func (pc *PricingController) CalculateRefund(c *gin.Context) {
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	cancellationDate, err := parseFlexibleDate(req.CancellationDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cancellation_date")
		return
	}
	eventDate, err := parseFlexibleDate(req.EventDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid event_date")
		return
	}

	policy := req.Policy
	if policy == nil && req.ResourceID != 0 {
		resource, err := pc.Catalog.GetResource(req.ResourceID)
		if err != nil {
			if errors.Is(err, services.ErrResourceNotFound) {
				utils.JSONError(c, http.StatusNotFound, "resource not found")
				return
			}
			utils.JSONError(c, http.StatusInternalServerError, "failed to load resource")
			return
		}
		policy, err = resource.Policy()
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "resource has invalid cancellation policy")
			return
		}
	}
	if policy == nil {
		utils.JSONError(c, http.StatusBadRequest, "no cancellation policy supplied or configured")
		return
	}

	refund := pc.Calc.CalculateRefund(req.OriginalAmount, cancellationDate, eventDate, *policy)
	utils.JSONSuccess(c, http.StatusOK, refund)
}

// ValidateDiscount gives the wizard explicit feedback on a code before the
// final calculation.
func (pc *PricingController) ValidateDiscount(c *gin.Context) {
	var req ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result := pc.Calc.ValidateDiscountCode(req.Code, req.Subtotal, req.Guests)
	utils.JSONSuccess(c, http.StatusOK, result)
}

// UpdateTaxRate overrides the effective tax rate for a country code.
func (pc *PricingController) UpdateTaxRate(c *gin.Context) {
	country := c.Param("country")
	if len(country) != 2 {
		utils.JSONError(c, http.StatusBadRequest, "country must be a 2-letter code")
		return
	}

	var req TaxRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Rate < 0 {
		utils.JSONError(c, http.StatusBadRequest, "rate must not be negative")
		return
	}

	pc.Calc.SetTaxRate(country, req.Rate)
	utils.JSONSuccess(c, http.StatusOK, gin.H{"country": country, "rate": req.Rate})
}
