// services/billing_service.go
package services

import (
	"context"
	"log"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/models"
	"salonsphere-backend/realtime"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// BillingService keeps tenant subscriptions in their correct lifecycle
// state. Payment collection itself happens outside this system; we only
// track the period and flag overdue accounts.
type BillingService struct {
	db  *gorm.DB
	bus *realtime.Bus
}

func NewBillingService(db *gorm.DB, bus *realtime.Bus) *BillingService {
	return &BillingService{db: db, bus: bus}
}

// StartScheduler runs the nightly rollover at 00:30.
func (s *BillingService) StartScheduler() {
	c := cron.New()

	c.AddFunc("30 0 * * *", func() {
		s.MarkPastDueSubscriptions(context.Background())
	})

	c.Start()
	log.Println("Billing scheduler started")
}

// MarkPastDueSubscriptions flags every active subscription whose period has
// ended.
func (s *BillingService) MarkPastDueSubscriptions(ctx context.Context) {
	var expired []models.Subscription
	if err := s.db.WithContext(ctx).
		Where("status = ? AND current_period_end < ?", models.SubscriptionStatusActive, time.Now()).
		Find(&expired).Error; err != nil {
		log.Printf("Failed to fetch expiring subscriptions: %v", err)
		return
	}

	for i := range expired {
		expired[i].Status = models.SubscriptionStatusPastDue
		if err := s.db.WithContext(ctx).Save(&expired[i]).Error; err != nil {
			log.Printf("Subscription %s: failed to mark past due: %v", expired[i].ID, err)
			continue
		}
		if s.bus != nil {
			s.bus.Publish(ctx, realtime.ChangeEvent{
				TenantID: expired[i].TenantID,
				Entity:   cache.EntitySubscription,
				Action:   realtime.ActionUpdated,
				RecordID: expired[i].ID,
			})
		}
	}

	if len(expired) > 0 {
		log.Printf("Marked %d subscriptions past due", len(expired))
	}
}

// Renew extends an active or past-due subscription by one month.
func (s *BillingService) Renew(ctx context.Context, sub *models.Subscription) error {
	base := sub.CurrentPeriodEnd
	if base.Before(time.Now()) {
		base = time.Now()
	}
	sub.CurrentPeriodEnd = base.AddDate(0, 1, 0)
	sub.Status = models.SubscriptionStatusActive
	return s.db.WithContext(ctx).Save(sub).Error
}
