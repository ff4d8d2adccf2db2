package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourism-pricing-backend/models"
	"tourism-pricing-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPricingRouter(calc *services.PriceCalculator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	pc := NewPricingController(nil, nil, calc)

	r := gin.New()
	r.POST("/api/pricing/refund", pc.CalculateRefund)
	r.POST("/api/pricing/validate-discount", pc.ValidateDiscount)
	r.PUT("/api/tax-rates/:country", pc.UpdateTaxRate)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPricingController_CalculateRefund(t *testing.T) {
	calc := services.NewPriceCalculator()
	r := newPricingRouter(calc)

	t.Run("InlinePolicy", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/api/pricing/refund", gin.H{
			"original_amount":   200,
			"cancellation_date": "2026-07-03T04:00:00Z",
			"event_date":        "2026-07-04T10:00:00Z",
			"policy": models.CancellationPolicy{
				Rules: []models.CancellationRule{
					{HoursBeforeStart: 48, RefundPercentage: 100, Fee: 0},
					{HoursBeforeStart: 24, RefundPercentage: 50, Fee: 5},
				},
			},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool                   `json:"success"`
			Data    models.RefundBreakdown `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 95.0, resp.Data.RefundAmount)
		assert.Equal(t, 50.0, resp.Data.RefundPercentage)
	})

	t.Run("MissingPolicy", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/api/pricing/refund", gin.H{
			"original_amount":   200,
			"cancellation_date": "2026-07-03",
			"event_date":        "2026-07-04",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BadDate", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/api/pricing/refund", gin.H{
			"original_amount":   200,
			"cancellation_date": "yesterday",
			"event_date":        "2026-07-04",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPricingController_ValidateDiscount(t *testing.T) {
	calc := services.NewPriceCalculator()
	calc.AddDiscountCode("TEN", models.Discount{ID: "TEN", Code: "TEN", Type: models.DiscountPercentage, Value: 10})
	r := newPricingRouter(calc)

	t.Run("Known", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/api/pricing/validate-discount", gin.H{
			"code":     "TEN",
			"subtotal": 100,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data services.DiscountValidation `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Data.IsValid)
	})

	t.Run("Unknown", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPost, "/api/pricing/validate-discount", gin.H{
			"code":     "NOPE",
			"subtotal": 100,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data services.DiscountValidation `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Data.IsValid)
		assert.Equal(t, "Discount code not found", resp.Data.Reason)
	})
}

func TestPricingController_UpdateTaxRate(t *testing.T) {
	calc := services.NewPriceCalculator()
	r := newPricingRouter(calc)

	t.Run("SetsOverride", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPut, "/api/tax-rates/CH", gin.H{"rate": 8.1})
		require.Equal(t, http.StatusOK, w.Code)

		rate, ok := calc.TaxRate("CH")
		assert.True(t, ok)
		assert.Equal(t, 8.1, rate)
	})

	t.Run("RejectsBadCountry", func(t *testing.T) {
		w := postJSON(t, r, http.MethodPut, "/api/tax-rates/FRA", gin.H{"rate": 20})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
