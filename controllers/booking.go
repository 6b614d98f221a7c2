// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"
	"salonsphere-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingController struct {
	DB  *gorm.DB
	Bus *realtime.Bus
}

func NewBookingController(db *gorm.DB, bus *realtime.Bus) *BookingController {
	return &BookingController{DB: db, Bus: bus}
}

type CreateBookingInput struct {
	ClientID    uuid.UUID  `json:"clientId" binding:"required"`
	ServiceID   uuid.UUID  `json:"serviceId" binding:"required"`
	StaffID     *uuid.UUID `json:"staffId"`
	ScheduledAt time.Time  `json:"scheduledAt" binding:"required"`
	Duration    *int       `json:"duration"` // defaults to the service duration
	Notes       string     `json:"notes"`
}

type UpdateBookingInput struct {
	ScheduledAt *time.Time `json:"scheduledAt"`
	Duration    *int       `json:"duration"`
	StaffID     *uuid.UUID `json:"staffId"`
	Status      *string    `json:"status"`
	Paid        *bool      `json:"paid"`
	Notes       *string    `json:"notes"`
}

var validBookingStatuses = map[string]bool{
	models.BookingStatusScheduled: true,
	models.BookingStatusConfirmed: true,
	models.BookingStatusCompleted: true,
	models.BookingStatusCancelled: true,
	models.BookingStatusNoShow:    true,
}

// bookingResponse adds the derived status next to the raw record.
func bookingResponse(b models.Booking) gin.H {
	return gin.H{
		"booking":         b,
		"effectiveStatus": b.EffectiveStatus(),
		"endsAt":          b.EndsAt(),
	}
}

// CreateBooking schedules an appointment. The duration must sit on the
// 15-minute grid and the staff member must be free for the whole slot.
func (bc *BookingController) CreateBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := bc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, input.ServiceID).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var client models.Client
	if err := bc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	duration := service.Duration
	if input.Duration != nil {
		duration = *input.Duration
	}
	if msg := utils.DurationValidationMessage(duration); msg != "" {
		utils.RespondWithError(c, http.StatusBadRequest, msg)
		return
	}

	booking := models.Booking{
		TenantID:    tenantUUID,
		ClientID:    input.ClientID,
		ServiceID:   input.ServiceID,
		StaffID:     input.StaffID,
		ScheduledAt: input.ScheduledAt,
		Duration:    duration,
		Status:      models.BookingStatusScheduled,
		Notes:       input.Notes,
	}

	if conflict, err := bc.hasStaffConflict(&booking, uuid.Nil); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	} else if conflict {
		utils.RespondWithError(c, http.StatusConflict, "Staff member already has a booking in this time slot")
		return
	}

	if err := bc.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	publishChange(c.Request.Context(), bc.Bus, tenantUUID, cache.EntityBooking, realtime.ActionCreated, booking.ID)
	c.JSON(http.StatusCreated, bookingResponse(booking))
}

// hasStaffConflict reports whether another booking for the same staff
// member overlaps the slot. Cancelled bookings and no-shows free the slot.
func (bc *BookingController) hasStaffConflict(booking *models.Booking, excludeID uuid.UUID) (bool, error) {
	if booking.StaffID == nil {
		return false, nil
	}

	var others []models.Booking
	query := bc.DB.
		Where("tenant_id = ? AND staff_id = ?", booking.TenantID, *booking.StaffID).
		Where("scheduled_at < ? AND scheduled_at > ?", booking.EndsAt(), booking.ScheduledAt.Add(-24*time.Hour)).
		Where("COALESCE(status, '') NOT IN ?", []string{models.BookingStatusCancelled, models.BookingStatusNoShow})
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Find(&others).Error; err != nil {
		return false, err
	}

	for i := range others {
		if booking.OverlapsWith(&others[i]) {
			return true, nil
		}
	}
	return false, nil
}

// GetBookings lists bookings, optionally restricted to a calendar range and
// a staff member.
func (bc *BookingController) GetBookings(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	query := bc.DB.Preload("Client").Preload("Service").
		Where("tenant_id = ?", tenantUUID)

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := utils.ParseDay(fromStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' date, expected YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_at >= ?", from)
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := utils.ParseDay(toStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' date, expected YYYY-MM-DD")
			return
		}
		// 'to' is inclusive on the calendar, so query to the next day
		query = query.Where("scheduled_at < ?", to.AddDate(0, 0, 1))
	}
	if staffStr := c.Query("staff_id"); staffStr != "" {
		staffUUID, err := uuid.Parse(staffStr)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
			return
		}
		query = query.Where("staff_id = ?", staffUUID)
	}

	var bookings []models.Booking
	if err := query.Order("scheduled_at").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	response := make([]gin.H, 0, len(bookings))
	for _, b := range bookings {
		response = append(response, bookingResponse(b))
	}
	c.JSON(http.StatusOK, response)
}

// GetBooking retrieves a specific booking by ID
func (bc *BookingController) GetBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	bookingUUID, ok := idParam(c)
	if !ok {
		return
	}

	var booking models.Booking
	if err := bc.DB.Preload("Client").Preload("Service").
		Where("tenant_id = ? AND id = ?", tenantUUID, bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, bookingResponse(booking))
}

// UpdateBooking reschedules or changes the status of a booking
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	bookingUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := bc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
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
		booking.Duration = *input.Duration
	}
	if input.Status != nil {
		if !validBookingStatuses[*input.Status] {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking status")
			return
		}
		booking.Status = *input.Status
	}
	if input.ScheduledAt != nil {
		booking.ScheduledAt = *input.ScheduledAt
	}
	if input.StaffID != nil {
		booking.StaffID = input.StaffID
	}
	if input.Paid != nil {
		booking.Paid = *input.Paid
	}
	if input.Notes != nil {
		booking.Notes = *input.Notes
	}

	if input.ScheduledAt != nil || input.Duration != nil || input.StaffID != nil {
		if conflict, err := bc.hasStaffConflict(&booking, booking.ID); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		} else if conflict {
			utils.RespondWithError(c, http.StatusConflict, "Staff member already has a booking in this time slot")
			return
		}
	}

	if err := bc.DB.Save(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}

	publishChange(c.Request.Context(), bc.Bus, tenantUUID, cache.EntityBooking, realtime.ActionUpdated, booking.ID)
	c.JSON(http.StatusOK, bookingResponse(booking))
}

// DeleteBooking soft deletes a booking
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	bookingUUID, ok := idParam(c)
	if !ok {
		return
	}

	result := bc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, bookingUUID).
		Delete(&models.Booking{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete booking")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}

	publishChange(c.Request.Context(), bc.Bus, tenantUUID, cache.EntityBooking, realtime.ActionDeleted, bookingUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}
