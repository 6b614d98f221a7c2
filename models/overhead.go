package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	OverheadMethodTreatments = "treatments"
	OverheadMethodRevenue    = "revenue"
	OverheadMethodHours      = "hours"
)

// OverheadSettings holds the fixed monthly operating cost of a tenant and
// how it is allocated across treatments. One row per tenant.
type OverheadSettings struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	MonthlyAmount float64 `gorm:"type:decimal(10,2);default:0.0"`
	Method        string  `gorm:"type:varchar(20);default:'treatments'"`

	gorm.Model
}

func (o *OverheadSettings) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return
}
