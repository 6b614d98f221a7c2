// controllers/tenant.go
package controllers

import (
	"errors"
	"net/http"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"
	"salonsphere-backend/services"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TenantController struct {
	DB      *gorm.DB
	Bus     *realtime.Bus
	Billing *services.BillingService
}

func NewTenantController(db *gorm.DB, bus *realtime.Bus, billing *services.BillingService) *TenantController {
	return &TenantController{DB: db, Bus: bus, Billing: billing}
}

type UpdateTenantInput struct {
	Name             *string       `json:"name"`
	Address          *string       `json:"address"`
	Phone            *string       `json:"phone"`
	Domain           *string       `json:"domain"`
	WorkingHours     *models.JSONB `json:"workingHours"`
	SMSNotifications *bool         `json:"smsNotifications"`
	BookingReminders *bool         `json:"bookingReminders"`
}

type UpdateSubscriptionInput struct {
	Plan  *string `json:"plan" binding:"omitempty,oneof=starter pro"`
	Renew bool    `json:"renew"`
}

// GetTenant returns the tenant profile
func (tc *TenantController) GetTenant(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, "id = ?", tenantUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tenant not found")
		return
	}

	c.JSON(http.StatusOK, tenant)
}

// UpdateTenant updates the tenant profile and settings
func (tc *TenantController) UpdateTenant(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input UpdateTenantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var tenant models.Tenant
	if err := tc.DB.First(&tenant, "id = ?", tenantUUID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Tenant not found")
		return
	}

	if input.Name != nil {
		tenant.Name = *input.Name
	}
	if input.Address != nil {
		tenant.Address = *input.Address
	}
	if input.Phone != nil {
		tenant.Phone = *input.Phone
	}
	if input.Domain != nil {
		if normalized := utils.NormalizeHost(*input.Domain); normalized == "" {
			tenant.Domain = nil
		} else {
			tenant.Domain = &normalized
		}
	}
	if input.WorkingHours != nil {
		tenant.WorkingHours = *input.WorkingHours
	}
	if input.SMSNotifications != nil {
		tenant.SMSNotifications = *input.SMSNotifications
	}
	if input.BookingReminders != nil {
		tenant.BookingReminders = *input.BookingReminders
	}

	if err := tc.DB.Save(&tenant).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update tenant")
		return
	}

	publishChange(c.Request.Context(), tc.Bus, tenantUUID, cache.EntityTenant, realtime.ActionUpdated, tenant.ID)
	c.JSON(http.StatusOK, tenant)
}

// GetSubscription returns the tenant's subscription state
func (tc *TenantController) GetSubscription(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var subscription models.Subscription
	if err := tc.DB.Where("tenant_id = ?", tenantUUID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, subscription)
}

// UpdateSubscription changes the plan and/or renews the current period
func (tc *TenantController) UpdateSubscription(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input UpdateSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var subscription models.Subscription
	if err := tc.DB.Where("tenant_id = ?", tenantUUID).First(&subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Subscription not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Plan != nil {
		subscription.Plan = *input.Plan
	}
	if input.Renew {
		if err := tc.Billing.Renew(c.Request.Context(), &subscription); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to renew subscription")
			return
		}
	} else if input.Plan != nil {
		if err := tc.DB.Save(&subscription).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update subscription")
			return
		}
	}

	publishChange(c.Request.Context(), tc.Bus, tenantUUID, cache.EntitySubscription, realtime.ActionUpdated, subscription.ID)
	c.JSON(http.StatusOK, subscription)
}
