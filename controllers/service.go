// controllers/service.go
package controllers

import (
	"errors"
	"net/http"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ServiceController struct {
	DB  *gorm.DB
	Bus *realtime.Bus
}

func NewServiceController(db *gorm.DB, bus *realtime.Bus) *ServiceController {
	return &ServiceController{DB: db, Bus: bus}
}

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	Price        float64 `json:"price" binding:"required,min=0"`
	Duration     int     `json:"duration" binding:"required"` // in minutes, 15-minute grid
	MaterialCost float64 `json:"materialCost" binding:"min=0"`
	Category     string  `json:"category"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Price        *float64 `json:"price"`
	Duration     *int     `json:"duration"`
	MaterialCost *float64 `json:"materialCost"`
	Category     *string  `json:"category"`
	IsActive     *bool    `json:"isActive"`
}

// CreateService creates a new service for the tenant
func (sc *ServiceController) CreateService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if msg := utils.DurationValidationMessage(input.Duration); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	service := models.Service{
		TenantID:     tenantUUID,
		Name:         input.Name,
		Description:  input.Description,
		Price:        input.Price,
		Duration:     input.Duration,
		MaterialCost: input.MaterialCost,
		Category:     input.Category,
		IsActive:     true,
	}

	if err := sc.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	publishChange(c.Request.Context(), sc.Bus, tenantUUID, cache.EntityService, realtime.ActionCreated, service.ID)
	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the tenant
func (sc *ServiceController) GetServices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := sc.DB.Where("tenant_id = ?", tenantUUID).Order("name").Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func (sc *ServiceController) GetService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	serviceUUID, ok := idParam(c)
	if !ok {
		return
	}

	var service models.Service
	if err := sc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// GetDurationOptions lists the valid durations for the booking form.
func (sc *ServiceController) GetDurationOptions(c *gin.Context) {
	maxMinutes := 240
	if v, err := parseIntQuery(c, "max"); err == nil && v > 0 {
		maxMinutes = v
	}
	c.JSON(http.StatusOK, utils.GenerateDurationOptions(maxMinutes))
}

// UpdateService updates an existing service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	serviceUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := sc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, serviceUUID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Duration != nil {
		if msg := utils.DurationValidationMessage(*input.Duration); msg != "" {
			utils.RespondWithError(c, http.StatusBadRequest, msg)
			return
		}
		service.Duration = *input.Duration
	}
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.MaterialCost != nil {
		service.MaterialCost = *input.MaterialCost
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := sc.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	publishChange(c.Request.Context(), sc.Bus, tenantUUID, cache.EntityService, realtime.ActionUpdated, service.ID)
	c.JSON(http.StatusOK, service)
}

// DeleteService soft deletes a service
func (sc *ServiceController) DeleteService(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	serviceUUID, ok := idParam(c)
	if !ok {
		return
	}

	result := sc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, serviceUUID).
		Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	publishChange(c.Request.Context(), sc.Bus, tenantUUID, cache.EntityService, realtime.ActionDeleted, serviceUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
