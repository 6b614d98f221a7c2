package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name             string `gorm:"not null"`
	SKU              string `gorm:"uniqueIndex:idx_tenant_sku,priority:2"`
	Supplier         string
	StockQuantity    int     `gorm:"default:0"`
	UnitCost         float64 `gorm:"type:decimal(10,2);default:0.0"`
	SellingPrice     float64 `gorm:"type:decimal(10,2);default:0.0"`
	ReorderThreshold int     `gorm:"default:5"`
	IsActive         bool    `gorm:"default:true"`

	Movements []StockMovement `gorm:"foreignKey:ProductID"`

	gorm.Model
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}

// LowStock reports whether the product is at or below its reorder threshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.ReorderThreshold
}

type StockMovement struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID        uuid.UUID `gorm:"type:uuid;index;not null"`
	ProductID       uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;index;not null"`

	Delta  int    `gorm:"not null"` // positive for restock, negative for usage
	Reason string `gorm:"type:varchar(50)"`

	gorm.Model
}

func (m *StockMovement) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return
}
