package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	SubscriptionPlanStarter = "starter"
	SubscriptionPlanPro     = "pro"

	SubscriptionStatusActive    = "active"
	SubscriptionStatusPastDue   = "past_due"
	SubscriptionStatusCancelled = "cancelled"
)

type Subscription struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`

	Plan             string    `gorm:"type:varchar(20);default:'starter'"`
	Status           string    `gorm:"type:varchar(20);default:'active'"`
	CurrentPeriodEnd time.Time `gorm:"index"`

	gorm.Model
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
