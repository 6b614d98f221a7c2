// services/campaign_service.go
package services

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// CampaignService dispatches marketing campaigns and day-before booking
// reminders over Twilio SMS.
type CampaignService struct {
	db     *gorm.DB
	bus    *realtime.Bus
	client *twilio.RestClient
}

func NewCampaignService(db *gorm.DB, bus *realtime.Bus) *CampaignService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &CampaignService{
		db:  db,
		bus: bus,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// StartScheduler runs the daily dispatch at 9 AM.
func (s *CampaignService) StartScheduler() {
	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		s.DispatchDueCampaigns(context.Background())
		s.SendBookingReminders(context.Background())
	})

	c.Start()
	log.Println("Campaign scheduler started")
}

// DispatchDueCampaigns sends every scheduled campaign whose time has come.
func (s *CampaignService) DispatchDueCampaigns(ctx context.Context) {
	log.Println("Starting campaign dispatch...")

	var campaigns []models.Campaign
	if err := s.db.WithContext(ctx).
		Where("status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", models.CampaignStatusScheduled, time.Now()).
		Find(&campaigns).Error; err != nil {
		log.Printf("Failed to fetch due campaigns: %v", err)
		return
	}

	for i := range campaigns {
		if err := s.Send(ctx, &campaigns[i]); err != nil {
			log.Printf("Campaign %s: dispatch failed: %v", campaigns[i].ID, err)
		}
	}

	log.Println("Campaign dispatch completed")
}

// Send delivers one campaign to its audience and marks it sent. Individual
// delivery failures are logged per recipient; the campaign only fails as a
// whole when no recipient could be reached.
func (s *CampaignService) Send(ctx context.Context, campaign *models.Campaign) error {
	recipients, err := s.Recipients(ctx, campaign.TenantID, campaign.Audience)
	if err != nil {
		return err
	}

	sent := 0
	for _, client := range recipients {
		message := strings.ReplaceAll(campaign.Message, "[ClientName]", client.Name)
		if s.deliver(ctx, campaign, client, message) {
			sent++
		}
	}

	now := time.Now()
	campaign.SentAt = &now
	if sent == 0 && len(recipients) > 0 {
		campaign.Status = models.CampaignStatusFailed
	} else {
		campaign.Status = models.CampaignStatusSent
	}
	if err := s.db.WithContext(ctx).Save(campaign).Error; err != nil {
		return err
	}

	if s.bus != nil {
		s.bus.Publish(ctx, realtime.ChangeEvent{
			TenantID: campaign.TenantID,
			Entity:   cache.EntityCampaign,
			Action:   realtime.ActionUpdated,
			RecordID: campaign.ID,
		})
	}
	log.Printf("Campaign %s: sent to %d of %d recipients", campaign.ID, sent, len(recipients))
	return nil
}

// Recipients selects the clients a campaign addresses. "birthday_week"
// means a birthday within the next 7 days, year ignored.
func (s *CampaignService) Recipients(ctx context.Context, tenantID uuid.UUID, audience string) ([]models.Client, error) {
	var clients []models.Client
	query := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true)

	if audience == models.CampaignAudienceBirthdayWeek {
		query = query.Where("birthday IS NOT NULL")
	}
	if err := query.Find(&clients).Error; err != nil {
		return nil, err
	}
	if audience != models.CampaignAudienceBirthdayWeek {
		return clients, nil
	}

	now := time.Now()
	var upcoming []models.Client
	for _, client := range clients {
		if client.Birthday == nil {
			continue
		}
		if daysUntilAnniversary(*client.Birthday, now) <= 7 {
			upcoming = append(upcoming, client)
		}
	}
	return upcoming, nil
}

// daysUntilAnniversary counts days until the next occurrence of a
// month/day, ignoring the stored year.
func daysUntilAnniversary(date time.Time, now time.Time) int {
	event := time.Date(now.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if event.Before(today) {
		event = event.AddDate(1, 0, 0)
	}
	return int(event.Sub(today).Hours() / 24)
}

// deliver sends one SMS and writes the campaign log row. Returns whether
// the delivery succeeded.
func (s *CampaignService) deliver(ctx context.Context, campaign *models.Campaign, client models.Client, message string) bool {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(client.Phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send message to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", client.Phone, *resp.Sid)
	} else {
		log.Printf("Message sent to %s, but no SID returned", client.Phone)
	}

	campaignLog := models.CampaignLog{
		TenantID:     campaign.TenantID,
		CampaignID:   campaign.ID,
		ClientID:     client.ID,
		Type:         "campaign",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      campaign.Channel,
		SentAt:       time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&campaignLog).Error; err != nil {
		log.Printf("Failed to log campaign message for client %s: %v", client.ID, err)
	}
	return status == "sent"
}

// SendBookingReminders messages every client with a booking tomorrow, for
// tenants that have booking reminders enabled.
func (s *CampaignService) SendBookingReminders(ctx context.Context) {
	log.Println("Starting booking reminder processing...")

	var tenants []models.Tenant
	if err := s.db.WithContext(ctx).
		Where("booking_reminders = ? AND sms_notifications = ?", true, true).
		Find(&tenants).Error; err != nil {
		log.Printf("Failed to fetch tenants: %v", err)
		return
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	dayStart := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, tomorrow.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, tenant := range tenants {
		var bookings []models.Booking
		if err := s.db.WithContext(ctx).
			Preload("Client").
			Preload("Service").
			Where("tenant_id = ? AND scheduled_at >= ? AND scheduled_at < ?", tenant.ID, dayStart, dayEnd).
			Where("status IN ? OR COALESCE(status, '') = ''", []string{models.BookingStatusScheduled, models.BookingStatusConfirmed}).
			Find(&bookings).Error; err != nil {
			log.Printf("Tenant %s: failed to fetch bookings: %v", tenant.ID, err)
			continue
		}

		for _, booking := range bookings {
			message := "Herinnering: je afspraak " + booking.Service.Name + " is morgen om " + booking.ScheduledAt.Format("15:04") + "."
			s.deliverReminder(ctx, tenant.ID, booking.Client, message)
		}
	}

	log.Println("Booking reminder processing completed")
}

func (s *CampaignService) deliverReminder(ctx context.Context, tenantID uuid.UUID, client models.Client, message string) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(client.Phone)
	params.SetBody(message)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	_, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", client.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	}

	campaignLog := models.CampaignLog{
		TenantID:     tenantID,
		ClientID:     client.ID,
		Type:         "booking_reminder",
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      "sms",
		SentAt:       time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&campaignLog).Error; err != nil {
		log.Printf("Failed to log reminder for client %s: %v", client.ID, err)
	}
}
