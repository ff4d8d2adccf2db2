// services/catalog_service.go
package services

import (
	"errors"
	"fmt"

	"tourism-pricing-backend/models"

	"gorm.io/gorm"
)

var (
	ErrResourceNotFound = errors.New("resource_not_found")
	ErrTimeSlotNotFound = errors.New("time_slot_not_found")
)

// CatalogService is the source of truth for per-resource pricing
// configuration.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ResourceFilter narrows a catalog listing; zero-value fields are ignored.
type ResourceFilter struct {
	Type  string // exact resource type
	City  string // exact city
	Query string // name substring search
}

func (s *CatalogService) ListResources(filter ResourceFilter) ([]models.Resource, error) {
	query := s.DB.Order("id ASC")
	if filter.Type != "" {
		query = query.Where("resource_type = ?", filter.Type)
	}
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Query != "" {
		query = query.Where("name LIKE ?", "%"+filter.Query+"%")
	}

	var resources []models.Resource
	if err := query.Find(&resources).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}
	return resources, nil
}

func (s *CatalogService) GetResource(id uint) (models.Resource, error) {
	var resource models.Resource
	if err := s.DB.First(&resource, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Resource{}, ErrResourceNotFound
		}
		return models.Resource{}, fmt.Errorf("failed to load resource %d: %w", id, err)
	}
	return resource, nil
}

func (s *CatalogService) CreateResource(resource *models.Resource) error {
	if resource.Currency == "" {
		resource.Currency = "EUR"
	}
	if err := s.DB.Create(resource).Error; err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

func (s *CatalogService) UpdateResource(id uint, updated *models.Resource) (models.Resource, error) {
	resource, err := s.GetResource(id)
	if err != nil {
		return models.Resource{}, err
	}

	resource.Name = updated.Name
	resource.ResourceType = updated.ResourceType
	resource.City = updated.City
	resource.BasePrices = updated.BasePrices
	resource.Rules = updated.Rules
	resource.Taxes = updated.Taxes
	resource.Fees = updated.Fees
	resource.TimeSlots = updated.TimeSlots
	resource.CancellationPolicy = updated.CancellationPolicy
	if updated.Currency != "" {
		resource.Currency = updated.Currency
	}

	if err := s.DB.Save(&resource).Error; err != nil {
		return models.Resource{}, fmt.Errorf("failed to update resource %d: %w", id, err)
	}
	return resource, nil
}

func (s *CatalogService) DeleteResource(id uint) error {
	result := s.DB.Delete(&models.Resource{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete resource %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrResourceNotFound
	}
	return nil
}

// FindTimeSlot resolves a configured slot by id. Returns ErrTimeSlotNotFound
// when the resource has slots configured but none matches; a resource with no
// slots configured yields the same error for a non-empty id.
func (s *CatalogService) FindTimeSlot(resource *models.Resource, slotID string) (*models.TimeSlot, error) {
	slots, err := resource.Slots()
	if err != nil {
		return nil, err
	}
	for i := range slots {
		if slots[i].ID == slotID {
			return &slots[i], nil
		}
	}
	return nil, ErrTimeSlotNotFound
}
