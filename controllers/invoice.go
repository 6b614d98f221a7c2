// controllers/invoice.go
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

type InvoiceController struct {
	DB  *gorm.DB
	Bus *realtime.Bus
}

func NewInvoiceController(db *gorm.DB, bus *realtime.Bus) *InvoiceController {
	return &InvoiceController{DB: db, Bus: bus}
}

// InvoiceItemInput defines the structure for an invoice item
type InvoiceItemInput struct {
	ServiceID uuid.UUID `json:"serviceId" binding:"required"`
	Quantity  int       `json:"quantity" binding:"min=1"`
}

// CreateInvoiceInput defines the expected JSON structure for creating an invoice
type CreateInvoiceInput struct {
	ClientID      uuid.UUID          `json:"clientId" binding:"required"`
	InvoiceDate   *time.Time         `json:"invoiceDate"`
	Items         []InvoiceItemInput `json:"items" binding:"required,min=1"`
	Discount      float64            `json:"discount" binding:"min=0"`
	Tax           float64            `json:"tax" binding:"min=0"`
	PaymentMethod string             `json:"paymentMethod"`
	Notes         string             `json:"notes"`
}

type PayInvoiceInput struct {
	PaymentMethod string     `json:"paymentMethod" binding:"required"`
	PaidAt        *time.Time `json:"paidAt"`
}

// CreateInvoice creates a new unpaid invoice; totals are computed server
// side from the current service prices.
func (ic *InvoiceController) CreateInvoice(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userFromContext(c)
	if !ok {
		return
	}

	var input CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Validate client exists in the same tenant
	var client models.Client
	if err := ic.DB.Where("tenant_id = ? AND id = ?", tenantUUID, input.ClientID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Validate and price invoice items
	var subtotal float64
	var invoiceItems []models.InvoiceItem

	for _, item := range input.Items {
		var service models.Service
		if err := ic.DB.Where("tenant_id = ? AND id = ?", tenantUUID, item.ServiceID).
			First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Service not found: "+item.ServiceID.String())
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}

		itemTotal := service.Price * float64(item.Quantity)
		subtotal += itemTotal

		invoiceItems = append(invoiceItems, models.InvoiceItem{
			ID:          uuid.New(),
			ServiceID:   service.ID,
			ServiceName: service.Name,
			Quantity:    item.Quantity,
			UnitPrice:   service.Price,
			TotalPrice:  itemTotal,
		})
	}

	total := subtotal - input.Discount + (subtotal * input.Tax / 100)

	invoiceDate := time.Now()
	if input.InvoiceDate != nil {
		invoiceDate = *input.InvoiceDate
	}

	invoice := models.Invoice{
		ID:              uuid.New(),
		TenantID:        tenantUUID,
		CreatedByUserID: userUUID,
		ClientID:        input.ClientID,
		InvoiceDate:     invoiceDate,
		Subtotal:        subtotal,
		Discount:        input.Discount,
		Tax:             input.Tax,
		Total:           total,
		PaymentStatus:   models.PaymentStatusUnpaid,
		PaymentMethod:   input.PaymentMethod,
		Notes:           input.Notes,
		Items:           invoiceItems,
	}
	invoice.InvoiceNumber = "INV-" + time.Now().Format("20060102") + "-" + utils.GenerateRandomString(6)

	if err := ic.DB.Create(&invoice).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create invoice")
		return
	}

	publishChange(c.Request.Context(), ic.Bus, tenantUUID, cache.EntityInvoice, realtime.ActionCreated, invoice.ID)
	c.JSON(http.StatusCreated, invoice)
}

// GetInvoices retrieves all invoices for the tenant
func (ic *InvoiceController) GetInvoices(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var invoices []models.Invoice
	if err := ic.DB.Preload("Items").
		Where("tenant_id = ?", tenantUUID).
		Order("invoice_date DESC").
		Find(&invoices).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve invoices")
		return
	}

	c.JSON(http.StatusOK, invoices)
}

// GetInvoice retrieves a specific invoice by ID
func (ic *InvoiceController) GetInvoice(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceUUID, ok := idParam(c)
	if !ok {
		return
	}

	var invoice models.Invoice
	if err := ic.DB.Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, invoice)
}

// PayInvoice records full payment of an invoice and bumps the client's
// visit counters. This is the moment a row starts counting towards the
// revenue series.
func (ic *InvoiceController) PayInvoice(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input PayInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var invoice models.Invoice
	if err := ic.DB.Where("tenant_id = ? AND id = ?", tenantUUID, invoiceUUID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if invoice.PaymentStatus == models.PaymentStatusPaid {
		utils.RespondWithError(c, http.StatusConflict, "Invoice already paid")
		return
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}
	invoice.PaymentStatus = models.PaymentStatusPaid
	invoice.PaidAmount = invoice.Total
	invoice.PaymentMethod = input.PaymentMethod
	invoice.PaidAt = &paidAt

	err := ic.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&invoice).Error; err != nil {
			return err
		}
		return tx.Model(&models.Client{}).Where("id = ?", invoice.ClientID).
			Updates(map[string]interface{}{
				"total_visits": gorm.Expr("total_visits + ?", 1),
				"total_spent":  gorm.Expr("total_spent + ?", invoice.Total),
				"last_visit":   paidAt,
			}).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record payment")
		return
	}

	publishChange(c.Request.Context(), ic.Bus, tenantUUID, cache.EntityInvoice, realtime.ActionUpdated, invoice.ID)
	publishChange(c.Request.Context(), ic.Bus, tenantUUID, cache.EntityClient, realtime.ActionUpdated, invoice.ClientID)
	c.JSON(http.StatusOK, invoice)
}

// DeleteInvoice soft deletes an invoice
func (ic *InvoiceController) DeleteInvoice(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	invoiceUUID, ok := idParam(c)
	if !ok {
		return
	}

	result := ic.DB.Where("tenant_id = ? AND id = ?", tenantUUID, invoiceUUID).
		Delete(&models.Invoice{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete invoice")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Invoice not found")
		return
	}

	publishChange(c.Request.Context(), ic.Bus, tenantUUID, cache.EntityInvoice, realtime.ActionDeleted, invoiceUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Invoice deleted successfully"})
}
