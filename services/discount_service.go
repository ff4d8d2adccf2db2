// services/discount_service.go
package services

import (
	"errors"
	"fmt"
	"log"

	"tourism-pricing-backend/models"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	ErrDiscountNotFound  = errors.New("discount_not_found")
	ErrDuplicateDiscount = errors.New("discount_code_exists")
)

const mysqlDuplicateEntry = 1062

// DiscountService persists the discount registry and mirrors active rows
// into the calculator's in-memory code map, which is what CalculatePrice
// actually consults.
type DiscountService struct {
	DB   *gorm.DB
	Calc *PriceCalculator
}

func NewDiscountService(db *gorm.DB, calc *PriceCalculator) *DiscountService {
	return &DiscountService{DB: db, Calc: calc}
}

// LoadRegistry seeds the calculator with every active persisted code. Called
// once at startup; rows with undecodable conditions are skipped with a
// warning rather than failing boot.
func (s *DiscountService) LoadRegistry() error {
	var rows []models.DiscountCode
	if err := s.DB.Where("active = ?", true).Find(&rows).Error; err != nil {
		return fmt.Errorf("failed to load discount codes: %w", err)
	}
	for i := range rows {
		discount, err := rows[i].ToDiscount()
		if err != nil {
			log.Printf("warning: skipping discount %q: %v", rows[i].Code, err)
			continue
		}
		s.Calc.AddDiscountCode(discount.Code, discount)
	}
	return nil
}

func (s *DiscountService) ListDiscounts() ([]models.DiscountCode, error) {
	var rows []models.DiscountCode
	if err := s.DB.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list discount codes: %w", err)
	}
	return rows, nil
}

// CreateDiscount persists a new code and registers it with the calculator.
func (s *DiscountService) CreateDiscount(row *models.DiscountCode) error {
	discount, err := row.ToDiscount()
	if err != nil {
		return fmt.Errorf("invalid discount conditions: %w", err)
	}

	if err := s.DB.Create(row).Error; err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateDiscount
		}
		return fmt.Errorf("failed to create discount code: %w", err)
	}

	if row.Active {
		s.Calc.AddDiscountCode(discount.Code, discount)
	}
	return nil
}

// DeleteDiscount removes a code from storage and from the live registry.
func (s *DiscountService) DeleteDiscount(code string) error {
	result := s.DB.Where("code = ?", code).Delete(&models.DiscountCode{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete discount code %q: %w", code, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDiscountNotFound
	}
	s.Calc.RemoveDiscountCode(code)
	return nil
}
