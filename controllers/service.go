// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"homeserve-backend/models"
	"homeserve-backend/utils"
)

type ServiceController struct {
	DB *gorm.DB
}

// AddOnInput defines an add-on within a service create/update payload
type AddOnInput struct {
	Name        string  `json:"name" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Description string  `json:"description"`
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string       `json:"name" binding:"required"`
	Slug        string       `json:"slug" binding:"required"`
	Description string       `json:"description"`
	BasePrice   float64      `json:"basePrice" binding:"min=0"`
	Duration    int          `json:"duration" binding:"min=0"` // in minutes
	Category    string       `json:"category"`
	AddOns      []AddOnInput `json:"addOns"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string       `json:"name"`
	Slug        *string       `json:"slug"`
	Description *string       `json:"description"`
	BasePrice   *float64      `json:"basePrice"`
	Duration    *int          `json:"duration"`
	Category    *string       `json:"category"`
	Status      *string       `json:"status"`
	AddOns      *[]AddOnInput `json:"addOns"`
}

// GetServices lists active catalog services with their add-ons
func (ctl *ServiceController) GetServices(c *gin.Context) {
	var services []models.Service
	if err := ctl.DB.Preload("AddOns").
		Where("status = ?", models.ServiceActive).
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func (ctl *ServiceController) GetService(c *gin.Context) {
	serviceID := c.Param("id")
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := ctl.DB.Preload("AddOns").First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// CreateService creates a new catalog service (admin only)
func (ctl *ServiceController) CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		ID:          uuid.New(),
		Name:        input.Name,
		Slug:        input.Slug,
		Description: input.Description,
		BasePrice:   input.BasePrice,
		Duration:    input.Duration,
		Category:    input.Category,
		Status:      models.ServiceActive,
	}
	for _, addOn := range input.AddOns {
		service.AddOns = append(service.AddOns, models.ServiceAddOn{
			ID:          uuid.New(),
			ServiceID:   service.ID,
			Name:        addOn.Name,
			Price:       addOn.Price,
			Description: addOn.Description,
		})
	}

	if err := ctl.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// UpdateService updates an existing service; add-ons are replaced wholesale
func (ctl *ServiceController) UpdateService(c *gin.Context) {
	serviceID := c.Param("id")
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := ctl.DB.Preload("AddOns").First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Slug != nil {
		service.Slug = *input.Slug
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.BasePrice != nil {
		if *input.BasePrice < 0 {
			utils.RespondWithError(c, http.StatusBadRequest, "Base price cannot be negative")
			return
		}
		service.BasePrice = *input.BasePrice
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.Status != nil {
		status := models.ServiceStatus(*input.Status)
		if !status.IsValid() {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid service status")
			return
		}
		service.Status = status
	}

	if input.AddOns != nil {
		if err := ctl.DB.Where("service_id = ?", service.ID).
			Delete(&models.ServiceAddOn{}).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update add-ons")
			return
		}
		service.AddOns = nil
		for _, addOn := range *input.AddOns {
			service.AddOns = append(service.AddOns, models.ServiceAddOn{
				ID:          uuid.New(),
				ServiceID:   service.ID,
				Name:        addOn.Name,
				Price:       addOn.Price,
				Description: addOn.Description,
			})
		}
	}

	if err := ctl.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service from the catalog
func (ctl *ServiceController) DeleteService(c *gin.Context) {
	serviceID := c.Param("id")
	serviceUUID, err := uuid.Parse(serviceID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := ctl.DB.Where("id = ?", serviceUUID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
