package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tenant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Name      string    `gorm:"not null"`
	Subdomain string    `gorm:"uniqueIndex;not null"`
	Domain    *string   `gorm:"uniqueIndex"` // optional custom domain; NULL when unset
	Address   string
	Phone     string

	WorkingHours     JSONB `gorm:"type:jsonb;default:'{}'"`
	SMSNotifications bool  `gorm:"default:false"`
	BookingReminders bool  `gorm:"default:true"`

	Users     []User     `gorm:"foreignKey:TenantID"`
	Clients   []Client   `gorm:"foreignKey:TenantID"`
	Services  []Service  `gorm:"foreignKey:TenantID"`
	Bookings  []Booking  `gorm:"foreignKey:TenantID"`
	Invoices  []Invoice  `gorm:"foreignKey:TenantID"`
	Products  []Product  `gorm:"foreignKey:TenantID"`
	Campaigns []Campaign `gorm:"foreignKey:TenantID"`

	gorm.Model
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}

// Custom JSONB type for working hours
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
