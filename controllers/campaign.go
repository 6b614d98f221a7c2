// controllers/campaign.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"
	"salonsphere-backend/services"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CampaignController struct {
	DB        *gorm.DB
	Bus       *realtime.Bus
	Campaigns *services.CampaignService
}

func NewCampaignController(db *gorm.DB, bus *realtime.Bus, campaigns *services.CampaignService) *CampaignController {
	return &CampaignController{DB: db, Bus: bus, Campaigns: campaigns}
}

type CreateCampaignInput struct {
	Name        string     `json:"name" binding:"required"`
	Message     string     `json:"message" binding:"required"`
	Audience    string     `json:"audience" binding:"omitempty,oneof=all birthday_week"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

type UpdateCampaignInput struct {
	Name        *string    `json:"name"`
	Message     *string    `json:"message"`
	Audience    *string    `json:"audience" binding:"omitempty,oneof=all birthday_week"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

// CreateCampaign creates a draft or scheduled campaign
func (cc *CampaignController) CreateCampaign(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input CreateCampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	campaign := models.Campaign{
		TenantID:    tenantUUID,
		Name:        input.Name,
		Message:     input.Message,
		Channel:     "sms",
		Audience:    models.CampaignAudienceAll,
		Status:      models.CampaignStatusDraft,
		ScheduledAt: input.ScheduledAt,
	}
	if input.Audience != "" {
		campaign.Audience = input.Audience
	}
	if input.ScheduledAt != nil {
		campaign.Status = models.CampaignStatusScheduled
	}

	if err := cc.DB.Create(&campaign).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create campaign")
		return
	}

	publishChange(c.Request.Context(), cc.Bus, tenantUUID, cache.EntityCampaign, realtime.ActionCreated, campaign.ID)
	c.JSON(http.StatusCreated, campaign)
}

// GetCampaigns lists the tenant's campaigns
func (cc *CampaignController) GetCampaigns(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var campaigns []models.Campaign
	if err := cc.DB.Where("tenant_id = ?", tenantUUID).
		Order("created_at DESC").
		Find(&campaigns).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve campaigns")
		return
	}

	c.JSON(http.StatusOK, campaigns)
}

// GetCampaign retrieves a campaign with its delivery log
func (cc *CampaignController) GetCampaign(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	campaignUUID, ok := idParam(c)
	if !ok {
		return
	}

	var campaign models.Campaign
	if err := cc.DB.Preload("Logs").
		Where("tenant_id = ? AND id = ?", tenantUUID, campaignUUID).
		First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Campaign not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// UpdateCampaign edits a campaign that has not been sent yet
func (cc *CampaignController) UpdateCampaign(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	campaignUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdateCampaignInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var campaign models.Campaign
	if err := cc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, campaignUUID).
		First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Campaign not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if campaign.Status == models.CampaignStatusSent {
		utils.RespondWithError(c, http.StatusConflict, "Campaign has already been sent")
		return
	}

	if input.Name != nil {
		campaign.Name = *input.Name
	}
	if input.Message != nil {
		campaign.Message = *input.Message
	}
	if input.Audience != nil {
		campaign.Audience = *input.Audience
	}
	if input.ScheduledAt != nil {
		campaign.ScheduledAt = input.ScheduledAt
		campaign.Status = models.CampaignStatusScheduled
	}

	if err := cc.DB.Save(&campaign).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update campaign")
		return
	}

	publishChange(c.Request.Context(), cc.Bus, tenantUUID, cache.EntityCampaign, realtime.ActionUpdated, campaign.ID)
	c.JSON(http.StatusOK, campaign)
}

// SendCampaign dispatches a campaign immediately
func (cc *CampaignController) SendCampaign(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	campaignUUID, ok := idParam(c)
	if !ok {
		return
	}

	var campaign models.Campaign
	if err := cc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, campaignUUID).
		First(&campaign).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Campaign not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if campaign.Status == models.CampaignStatusSent {
		utils.RespondWithError(c, http.StatusConflict, "Campaign has already been sent")
		return
	}

	if err := cc.Campaigns.Send(c.Request.Context(), &campaign); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to send campaign")
		return
	}

	c.JSON(http.StatusOK, campaign)
}

// DeleteCampaign soft deletes a campaign
func (cc *CampaignController) DeleteCampaign(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	campaignUUID, ok := idParam(c)
	if !ok {
		return
	}

	result := cc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, campaignUUID).
		Delete(&models.Campaign{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete campaign")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Campaign not found")
		return
	}

	publishChange(c.Request.Context(), cc.Bus, tenantUUID, cache.EntityCampaign, realtime.ActionDeleted, campaignUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Campaign deleted successfully"})
}
