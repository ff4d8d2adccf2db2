// controllers/resource_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"tourism-pricing-backend/models"
	"tourism-pricing-backend/services"
	"tourism-pricing-backend/utils"

	"github.com/gin-gonic/gin"
)

type ResourceController struct {
	Catalog *services.CatalogService
}

func NewResourceController(catalog *services.CatalogService) *ResourceController {
	return &ResourceController{Catalog: catalog}
}

func parseResourceID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid resource id")
		return 0, false
	}
	return uint(id), true
}

// GetResources lists the catalog, optionally narrowed by ?type=, ?city= and
// a ?q= name search.
func (rc *ResourceController) GetResources(c *gin.Context) {
	resources, err := rc.Catalog.ListResources(services.ResourceFilter{
		Type:  c.Query("type"),
		City:  c.Query("city"),
		Query: c.Query("q"),
	})
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list resources")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resources)
}

func (rc *ResourceController) GetResourceByID(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}
	resource, err := rc.Catalog.GetResource(id)
	if err != nil {
		if errors.Is(err, services.ErrResourceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "resource not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to load resource")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resource)
}

func (rc *ResourceController) CreateResource(c *gin.Context) {
	var resource models.Resource
	if err := c.ShouldBindJSON(&resource); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if resource.Name == "" {
		utils.JSONError(c, http.StatusBadRequest, "name is required")
		return
	}

	// reject undecodable pricing up front, the calculator assumes
	// already-validated configuration
	if _, err := resource.Pricing(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid pricing configuration: "+err.Error())
		return
	}
	if _, err := resource.Slots(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid time slots: "+err.Error())
		return
	}
	if _, err := resource.Policy(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid cancellation policy: "+err.Error())
		return
	}

	if err := rc.Catalog.CreateResource(&resource); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to create resource")
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, resource)
}

func (rc *ResourceController) UpdateResource(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}

	var updated models.Resource
	if err := c.ShouldBindJSON(&updated); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if _, err := updated.Pricing(); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid pricing configuration: "+err.Error())
		return
	}

	resource, err := rc.Catalog.UpdateResource(id, &updated)
	if err != nil {
		if errors.Is(err, services.ErrResourceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "resource not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to update resource")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, resource)
}

func (rc *ResourceController) DeleteResource(c *gin.Context) {
	id, ok := parseResourceID(c)
	if !ok {
		return
	}
	if err := rc.Catalog.DeleteResource(id); err != nil {
		if errors.Is(err, services.ErrResourceNotFound) {
			utils.JSONError(c, http.StatusNotFound, "resource not found")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete resource")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": id})
}
