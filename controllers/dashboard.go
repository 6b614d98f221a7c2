package controllers

import (
	"log"
	"net/http"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/services"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const overviewCacheTTL = time.Minute

type DashboardController struct {
	DB      *gorm.DB
	Cache   cache.Cache
	Reports *services.ReportService
}

func NewDashboardController(db *gorm.DB, c cache.Cache, reports *services.ReportService) *DashboardController {
	return &DashboardController{DB: db, Cache: c, Reports: reports}
}

type DashboardOverview struct {
	TotalClients   int64           `json:"totalClients"`
	MonthlyRevenue float64         `json:"monthlyRevenue"`
	TotalInvoices  int64           `json:"totalInvoices"`
	LowStockCount  int64           `json:"lowStockCount"`
	TodaysBookings []TodaysBooking `json:"todaysBookings"`
	UpcomingCount  int64           `json:"upcomingCount"`
}

type TodaysBooking struct {
	ID          uuid.UUID `json:"id"`
	ClientName  string    `json:"clientName"`
	ServiceName string    `json:"serviceName"`
	Time        string    `json:"time"`
	Duration    string    `json:"duration"`
	Status      string    `json:"status"`
}

// GetOverview assembles the dashboard landing page numbers. Cached
// briefly; mutations on the underlying entities invalidate it through the
// realtime bridge.
func (dc *DashboardController) GetOverview(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	key := cache.QueryKey(cache.EntityReport, tenantUUID, "overview")
	if cached, found := dc.Cache.Get(ctx, key); found {
		if overview, castOK := cached.(DashboardOverview); castOK {
			c.JSON(http.StatusOK, overview)
			return
		}
	}

	var overview DashboardOverview
	now := time.Now()

	if err := dc.DB.Model(&models.Client{}).
		Where("tenant_id = ?", tenantUUID).
		Count(&overview.TotalClients).Error; err != nil {
		log.Printf("[DASHBOARD] client count failed for tenant %s: %v", tenantUUID, err)
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	if err := dc.DB.Model(&models.Invoice{}).
		Where("tenant_id = ? AND payment_status = ? AND paid_at >= ?", tenantUUID, models.PaymentStatusPaid, firstOfMonth).
		Select("COALESCE(SUM(total), 0)").Scan(&overview.MonthlyRevenue).Error; err != nil {
		log.Printf("[DASHBOARD] monthly revenue failed for tenant %s: %v", tenantUUID, err)
	}

	if err := dc.DB.Model(&models.Invoice{}).
		Where("tenant_id = ?", tenantUUID).
		Count(&overview.TotalInvoices).Error; err != nil {
		log.Printf("[DASHBOARD] invoice count failed for tenant %s: %v", tenantUUID, err)
	}

	if err := dc.DB.Model(&models.Product{}).
		Where("tenant_id = ? AND stock_quantity <= reorder_threshold AND is_active = ?", tenantUUID, true).
		Count(&overview.LowStockCount).Error; err != nil {
		log.Printf("[DASHBOARD] low stock count failed for tenant %s: %v", tenantUUID, err)
	}

	dayStart := utils.BeginningOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var todays []models.Booking
	if err := dc.DB.Preload("Client").Preload("Service").
		Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenantUUID, dayStart, dayEnd).
		Order("scheduled_at").
		Find(&todays).Error; err != nil {
		log.Printf("[DASHBOARD] today's bookings failed for tenant %s: %v", tenantUUID, err)
	}

	overview.TodaysBookings = make([]TodaysBooking, 0, len(todays))
	for _, b := range todays {
		overview.TodaysBookings = append(overview.TodaysBookings, TodaysBooking{
			ID:          b.ID,
			ClientName:  b.Client.Name,
			ServiceName: b.Service.Name,
			Time:        b.ScheduledAt.Format("15:04"),
			Duration:    utils.FormatDuration(b.Duration),
			Status:      b.EffectiveStatus(),
		})
	}

	if err := dc.DB.Model(&models.Booking{}).
		Where("tenant_id = ? AND scheduled_at >= ?", tenantUUID, dayEnd).
		Count(&overview.UpcomingCount).Error; err != nil {
		log.Printf("[DASHBOARD] upcoming count failed for tenant %s: %v", tenantUUID, err)
	}

	dc.Cache.Set(ctx, key, overview, overviewCacheTTL)
	c.JSON(http.StatusOK, overview)
}

// dateRange reads from/to query parameters, defaulting to the last 30 days.
func dateRange(c *gin.Context) (time.Time, time.Time, bool) {
	now := time.Now()
	from := utils.BeginningOfDay(now.AddDate(0, 0, -30))
	to := utils.BeginningOfDay(now).AddDate(0, 0, 1)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := utils.ParseDay(fromStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := utils.ParseDay(toStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, true
}

// GetRevenueSeries returns the per-day revenue for the requested range.
func (dc *DashboardController) GetRevenueSeries(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dc.Reports.RevenueSeries(c.Request.Context(), tenantUUID, from, to))
}

// GetBookingSeries returns the per-day booking counts for the range.
func (dc *DashboardController) GetBookingSeries(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dc.Reports.BookingSeries(c.Request.Context(), tenantUUID, from, to))
}

// GetPopularServices returns the top services by revenue share.
func (dc *DashboardController) GetPopularServices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	limit := 5
	if v, err := parseIntQuery(c, "limit"); err == nil && v > 0 {
		limit = v
	}

	c.JSON(http.StatusOK, dc.Reports.PopularServices(c.Request.Context(), tenantUUID, from, to, limit))
}
