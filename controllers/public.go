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

// PublicController serves the unauthenticated booking site. The tenant
// comes from the Host header, never from a token.
type PublicController struct {
	DB       *gorm.DB
	Bus      *realtime.Bus
	Resolver *services.TenantResolver
}

func NewPublicController(db *gorm.DB, bus *realtime.Bus, resolver *services.TenantResolver) *PublicController {
	return &PublicController{DB: db, Bus: bus, Resolver: resolver}
}

// ResolveTenant is middleware: it maps the request host to a tenant and
// puts the same context keys the auth middleware would, so the handlers
// below read tenant identity one way.
func (pc *PublicController) ResolveTenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenant, err := pc.Resolver.Resolve(c.Request.Context(), c.Request.Host)
		if err != nil {
			if errors.Is(err, services.ErrTenantNotFound) {
				utils.RespondWithError(c, http.StatusNotFound, "Unknown salon")
				return
			}
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to resolve salon")
			return
		}
		c.Set("tenantId", tenant.ID.String())
		c.Set("tenant", tenant)
		c.Next()
	}
}

type publicService struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Duration    string  `json:"duration"`
	Category    string  `json:"category"`
}

// ListServices returns the tenant's active services in booking-site shape.
func (pc *PublicController) ListServices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var salonServices []models.Service
	if err := pc.DB.Where("tenant_id = ? AND is_active = ?", tenantUUID, true).
		Order("category, name").
		Find(&salonServices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to fetch services")
		return
	}

	out := make([]publicService, 0, len(salonServices))
	for _, svc := range salonServices {
		out = append(out, publicService{
			ID:          svc.ID.String(),
			Name:        svc.Name,
			Description: svc.Description,
			Price:       svc.Price,
			Duration:    utils.FormatDuration(svc.Duration),
			Category:    svc.Category,
		})
	}
	c.JSON(http.StatusOK, out)
}

type PublicBookingInput struct {
	ServiceID   string    `json:"serviceId" binding:"required,uuid"`
	Name        string    `json:"name" binding:"required"`
	Phone       string    `json:"phone" binding:"required"`
	Email       string    `json:"email" binding:"omitempty,email"`
	ScheduledAt time.Time `json:"scheduledAt" binding:"required"`
	Duration    int       `json:"duration" binding:"omitempty,duration15"` // defaults to the service duration
	Notes       string    `json:"notes"`
}

// CreateBooking takes a visitor's booking request. The client record is
// matched by phone number and created when unknown.
func (pc *PublicController) CreateBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input PublicBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	if input.ScheduledAt.Before(time.Now()) {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot book in the past")
		return
	}
	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	var svc models.Service
	if err := pc.DB.Where("id = ? AND tenant_id = ? AND is_active = ?", input.ServiceID, tenantUUID, true).
		First(&svc).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}
	duration := utils.RoundToNearest15(svc.Duration)
	if input.Duration != 0 {
		duration = input.Duration
	}

	var booking models.Booking
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		var client models.Client
		err := tx.Where("tenant_id = ? AND phone = ?", tenantUUID, input.Phone).First(&client).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			client = models.Client{
				TenantID: tenantUUID,
				Name:     input.Name,
				Phone:    input.Phone,
				Email:    input.Email,
			}
			if err := tx.Create(&client).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		booking = models.Booking{
			TenantID:    tenantUUID,
			ClientID:    client.ID,
			ServiceID:   svc.ID,
			ScheduledAt: input.ScheduledAt,
			Duration:    duration,
			Status:      models.BookingStatusScheduled,
			Notes:       input.Notes,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	publishChange(c.Request.Context(), pc.Bus, tenantUUID, cache.EntityBooking, realtime.ActionCreated, booking.ID)
	publishChange(c.Request.Context(), pc.Bus, tenantUUID, cache.EntityClient, realtime.ActionUpdated, booking.ClientID)

	c.JSON(http.StatusCreated, gin.H{
		"id":          booking.ID,
		"serviceName": svc.Name,
		"scheduledAt": booking.ScheduledAt,
		"duration":    utils.FormatDuration(booking.Duration),
		"status":      booking.Status,
	})
}
