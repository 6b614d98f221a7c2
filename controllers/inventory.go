// controllers/inventory.go
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

type InventoryController struct {
	DB  *gorm.DB
	Bus *realtime.Bus
}

func NewInventoryController(db *gorm.DB, bus *realtime.Bus) *InventoryController {
	return &InventoryController{DB: db, Bus: bus}
}

type CreateProductInput struct {
	Name             string  `json:"name" binding:"required"`
	SKU              string  `json:"sku"`
	Supplier         string  `json:"supplier"`
	StockQuantity    int     `json:"stockQuantity" binding:"min=0"`
	UnitCost         float64 `json:"unitCost" binding:"min=0"`
	SellingPrice     float64 `json:"sellingPrice" binding:"min=0"`
	ReorderThreshold *int    `json:"reorderThreshold"`
}

type UpdateProductInput struct {
	Name             *string  `json:"name"`
	SKU              *string  `json:"sku"`
	Supplier         *string  `json:"supplier"`
	UnitCost         *float64 `json:"unitCost"`
	SellingPrice     *float64 `json:"sellingPrice"`
	ReorderThreshold *int     `json:"reorderThreshold"`
	IsActive         *bool    `json:"isActive"`
}

type AdjustStockInput struct {
	Delta  int    `json:"delta" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CreateProduct adds a product to the tenant's inventory
func (pc *InventoryController) CreateProduct(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	product := models.Product{
		TenantID:      tenantUUID,
		Name:          input.Name,
		SKU:           input.SKU,
		Supplier:      input.Supplier,
		StockQuantity: input.StockQuantity,
		UnitCost:      input.UnitCost,
		SellingPrice:  input.SellingPrice,
		IsActive:      true,
	}
	if input.ReorderThreshold != nil {
		product.ReorderThreshold = *input.ReorderThreshold
	} else {
		product.ReorderThreshold = 5
	}

	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create product")
		return
	}

	publishChange(c.Request.Context(), pc.Bus, tenantUUID, cache.EntityProduct, realtime.ActionCreated, product.ID)
	c.JSON(http.StatusCreated, product)
}

// GetProducts lists the tenant's inventory; ?low_stock=true filters to
// products at or below their reorder threshold.
func (pc *InventoryController) GetProducts(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}

	query := pc.DB.Where("tenant_id = ?", tenantUUID)
	if c.Query("low_stock") == "true" {
		query = query.Where("stock_quantity <= reorder_threshold")
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct retrieves a specific product with its recent stock movements
func (pc *InventoryController) GetProduct(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	productUUID, ok := idParam(c)
	if !ok {
		return
	}

	var product models.Product
	if err := pc.DB.Preload("Movements", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Limit(20)
	}).Where("tenant_id = ? AND id = ?", tenantUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct updates product master data; stock changes go through
// AdjustStock so every change leaves a movement row.
func (pc *InventoryController) UpdateProduct(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	productUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := pc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.SKU != nil {
		product.SKU = *input.SKU
	}
	if input.Supplier != nil {
		product.Supplier = *input.Supplier
	}
	if input.UnitCost != nil {
		product.UnitCost = *input.UnitCost
	}
	if input.SellingPrice != nil {
		product.SellingPrice = *input.SellingPrice
	}
	if input.ReorderThreshold != nil {
		product.ReorderThreshold = *input.ReorderThreshold
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update product")
		return
	}

	publishChange(c.Request.Context(), pc.Bus, tenantUUID, cache.EntityProduct, realtime.ActionUpdated, product.ID)
	c.JSON(http.StatusOK, product)
}

// AdjustStock applies a stock movement and updates the quantity in one
// transaction. Negative stock is rejected.
func (pc *InventoryController) AdjustStock(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	userUUID, ok := userFromContext(c)
	if !ok {
		return
	}
	productUUID, ok := idParam(c)
	if !ok {
		return
	}

	var input AdjustStockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var product models.Product
	if err := pc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, productUUID).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if product.StockQuantity+input.Delta < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Stock cannot go negative")
		return
	}

	movement := models.StockMovement{
		TenantID:        tenantUUID,
		ProductID:       product.ID,
		CreatedByUserID: userUUID,
		Delta:           input.Delta,
		Reason:          input.Reason,
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&movement).Error; err != nil {
			return err
		}
		return tx.Model(&product).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", input.Delta)).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to adjust stock")
		return
	}

	product.StockQuantity += input.Delta
	publishChange(c.Request.Context(), pc.Bus, tenantUUID, cache.EntityProduct, realtime.ActionUpdated, product.ID)
	c.JSON(http.StatusOK, product)
}

// DeleteProduct soft deletes a product
func (pc *InventoryController) DeleteProduct(c *gin.Context) {
	tenantUUID, ok := tenantFromContext(c)
	if !ok {
		return
	}
	productUUID, ok := idParam(c)
	if !ok {
		return
	}

	result := pc.DB.Where("tenant_id = ? AND id = ?", tenantUUID, productUUID).
		Delete(&models.Product{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Product not found")
		return
	}

	publishChange(c.Request.Context(), pc.Bus, tenantUUID, cache.EntityProduct, realtime.ActionDeleted, productUUID)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
