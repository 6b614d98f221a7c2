package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusScheduled = "scheduled"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
	BookingStatusNoShow    = "no_show"
)

type Booking struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID  `gorm:"type:uuid;index;not null"`
	StaffID   *uuid.UUID `gorm:"type:uuid;index"`

	ScheduledAt time.Time `gorm:"index;not null"`
	Duration    int       `gorm:"not null"` // in minutes
	Status      string    `gorm:"type:varchar(20)"`
	Paid        bool      `gorm:"default:false"`
	Notes       string

	Client  Client  `gorm:"foreignKey:ClientID"`
	Service Service `gorm:"foreignKey:ServiceID"`
	Staff   *User   `gorm:"foreignKey:StaffID"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// EffectiveStatus returns the stored status when one is set. Older rows have
// no status; those are reported as completed once their scheduled time has
// passed, otherwise as scheduled.
func (b *Booking) EffectiveStatus() string {
	if b.Status != "" {
		return b.Status
	}
	if b.ScheduledAt.Before(time.Now()) {
		return BookingStatusCompleted
	}
	return BookingStatusScheduled
}

// EndsAt is the scheduled end of the booking.
func (b *Booking) EndsAt() time.Time {
	return b.ScheduledAt.Add(time.Duration(b.Duration) * time.Minute)
}

// OverlapsWith reports whether two bookings occupy overlapping time slots.
func (b *Booking) OverlapsWith(other *Booking) bool {
	return b.ScheduledAt.Before(other.EndsAt()) && other.ScheduledAt.Before(b.EndsAt())
}
