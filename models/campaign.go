package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSent      = "sent"
	CampaignStatusFailed    = "failed"

	CampaignAudienceAll          = "all"
	CampaignAudienceBirthdayWeek = "birthday_week"
)

type Campaign struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID uuid.UUID `gorm:"type:uuid;index;not null"`

	Name        string `gorm:"not null"`
	Message     string `gorm:"type:text;not null"`
	Channel     string `gorm:"type:varchar(20);default:'sms'"`
	Audience    string `gorm:"type:varchar(20);default:'all'"`
	Status      string `gorm:"type:varchar(20);default:'draft'"`
	ScheduledAt *time.Time
	SentAt      *time.Time

	Logs []CampaignLog `gorm:"foreignKey:CampaignID"`

	gorm.Model
}

func (c *Campaign) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

type CampaignLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key"`
	TenantID   uuid.UUID `gorm:"type:uuid;index;not null"`
	CampaignID uuid.UUID `gorm:"type:uuid;index"`
	ClientID   uuid.UUID `gorm:"type:uuid;index;not null"`

	Type         string `gorm:"type:varchar(20)"` // campaign, booking_reminder
	Message      string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20)"` // sent, failed
	ErrorMessage string `gorm:"type:text"`
	Channel      string `gorm:"type:varchar(20)"` // sms
	SentAt       time.Time

	gorm.Model
}

func (l *CampaignLog) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
