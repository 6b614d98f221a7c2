package controllers

import (
	"net/http"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/realtime"
	"salonsphere-backend/services"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OverheadController struct {
	DB       *gorm.DB
	Bus      *realtime.Bus
	Overhead *services.OverheadService
}

func NewOverheadController(db *gorm.DB, bus *realtime.Bus, overhead *services.OverheadService) *OverheadController {
	return &OverheadController{DB: db, Bus: bus, Overhead: overhead}
}

// GetSettings returns the tenant's overhead configuration, creating the
// default row on first access.
func (oc *OverheadController) GetSettings(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	settings, err := oc.Overhead.Settings(c.Request.Context(), tenantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load overhead settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

type UpdateOverheadInput struct {
	MonthlyAmount *float64 `json:"monthlyAmount" binding:"omitempty,gte=0"`
	Method        *string  `json:"method" binding:"omitempty,oneof=treatments revenue hours"`
}

func (oc *OverheadController) UpdateSettings(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input UpdateOverheadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	settings, err := oc.Overhead.Settings(c.Request.Context(), tenantUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load overhead settings")
		return
	}

	if input.MonthlyAmount != nil {
		settings.MonthlyAmount = *input.MonthlyAmount
	}
	if input.Method != nil {
		settings.Method = *input.Method
	}

	if err := oc.DB.Save(&settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update overhead settings")
		return
	}

	publishChange(c.Request.Context(), oc.Bus, tenantUUID, cache.EntityOverhead, realtime.ActionUpdated, settings.ID)
	c.JSON(http.StatusOK, settings)
}

// monthParam parses the optional month=YYYY-MM query, defaulting to the
// current month.
func monthParam(c *gin.Context) (int, time.Month, bool) {
	now := time.Now()
	raw := c.Query("month")
	if raw == "" {
		return now.Year(), now.Month(), true
	}
	parsed, err := time.Parse("2006-01", raw)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'month', expected YYYY-MM")
		return 0, 0, false
	}
	return parsed.Year(), parsed.Month(), true
}

// GetMetrics returns the overhead allocation for one month.
func (oc *OverheadController) GetMetrics(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, oc.Overhead.MetricsForMonth(c.Request.Context(), tenantUUID, year, month))
}

// GetAnalysis prices every active service against its overhead share.
func (oc *OverheadController) GetAnalysis(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, oc.Overhead.AnalyzeServices(c.Request.Context(), tenantUUID, year, month))
}
