package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name         string `gorm:"not null"`
	Description  string
	Price        float64 `gorm:"type:decimal(10,2);not null"`
	Duration     int     // in minutes, always a multiple of 15
	MaterialCost float64 `gorm:"type:decimal(10,2);default:0.0"`
	Category     string  `gorm:"default:'General'"`
	IsActive     bool    `gorm:"default:true"`

	Bookings     []Booking     `gorm:"foreignKey:ServiceID"`
	InvoiceItems []InvoiceItem `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
