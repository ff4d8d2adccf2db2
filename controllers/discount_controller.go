// controllers/discount_controller.go
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tourism-pricing-backend/models"
	"tourism-pricing-backend/services"
	"tourism-pricing-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type CreateDiscountRequest struct {
	Code       string                     `json:"code" binding:"required"`
	Type       models.DiscountType        `json:"type" binding:"required"`
	Value      float64                    `json:"value"`
	Conditions *models.DiscountConditions `json:"conditions,omitempty"`
	Active     *bool                      `json:"active,omitempty"`
}

type DiscountController struct {
	DiscountSvc *services.DiscountService
}

func NewDiscountController(svc *services.DiscountService) *DiscountController {
	return &DiscountController{DiscountSvc: svc}
}

func (dc *DiscountController) GetDiscounts(c *gin.Context) {
	rows, err := dc.DiscountSvc.ListDiscounts()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list discount codes")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}

// GetAvailableDiscounts returns the live registry snapshot (no validity
// filtering), the view the booking wizard shows.
func (dc *DiscountController) GetAvailableDiscounts(c *gin.Context) {
	utils.JSONSuccess(c, http.StatusOK, dc.DiscountSvc.Calc.GetAvailableDiscounts())
}

func (dc *DiscountController) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	switch req.Type {
	case models.DiscountPercentage, models.DiscountFixed, models.DiscountFreeShipping:
	default:
		utils.JSONError(c, http.StatusBadRequest, "type must be percentage, fixed or freeShipping")
		return
	}
	if req.Value < 0 {
		utils.JSONError(c, http.StatusBadRequest, "value must not be negative")
		return
	}

	row := models.DiscountCode{
		Code:   req.Code,
		Type:   req.Type,
		Value:  req.Value,
		Active: true,
	}
	if req.Active != nil {
		row.Active = *req.Active
	}
	if req.Conditions != nil {
		raw, err := json.Marshal(req.Conditions)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid conditions")
			return
		}
		row.Conditions = datatypes.JSON(raw)
	}

	if err := dc.DiscountSvc.CreateDiscount(&row); err != nil {
		if errors.Is(err, services.ErrDuplicateDiscount) {
			utils.JSONError(c, http.StatusConflict, "discount code already exists")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to create discount code")
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, row)
}

func (dc *DiscountController) DeleteDiscount(c *gin.Context) {
	code := c.Param("code")
	if err := dc.DiscountSvc.DeleteDiscount(code); err != nil {
		if errors.Is(err, services.ErrDiscountNotFound) {
			utils.JSONError(c, http.StatusNotFound, "discount code not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete discount code")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": code})
}
