package services

import (
	"context"
	"errors"
	"log"
	"time"

	"salonsphere-backend/models"
	"salonsphere-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OverheadMetrics spreads a tenant's fixed monthly cost over the treatments
// completed in one month. Derived on demand, never stored.
type OverheadMetrics struct {
	Month                 string  `json:"month"`
	MonthlyOverhead       float64 `json:"monthlyOverhead"`
	TotalTreatments       int     `json:"totalTreatments"`
	OverheadPerTreatment  float64 `json:"overheadPerTreatment"`
	AverageTreatmentPrice float64 `json:"averageTreatmentPrice"`
	OverheadPercentage    float64 `json:"overheadPercentage"`
}

// ServiceCostAnalysis combines a service's own pricing with the tenant-wide
// overhead allocation.
type ServiceCostAnalysis struct {
	ServiceID             uuid.UUID `json:"serviceId"`
	Name                  string    `json:"name"`
	Price                 float64   `json:"price"`
	MaterialCost          float64   `json:"materialCost"`
	OverheadCost          float64   `json:"overheadCost"`
	TotalCost             float64   `json:"totalCost"`
	MarginWithoutOverhead float64   `json:"marginWithoutOverhead"`
	MarginWithOverhead    float64   `json:"marginWithOverhead"`
	OverheadPercentage    float64   `json:"overheadPercentage"`
}

// ComputeOverheadMetrics is the pure allocation arithmetic. Zero treatments
// or a zero average price yield zero figures instead of a division error.
func ComputeOverheadMetrics(monthlyOverhead float64, totalTreatments int, averagePrice float64) OverheadMetrics {
	m := OverheadMetrics{
		MonthlyOverhead:       monthlyOverhead,
		TotalTreatments:       totalTreatments,
		AverageTreatmentPrice: averagePrice,
	}
	if totalTreatments == 0 {
		return m
	}
	overhead := decimal.NewFromFloat(monthlyOverhead)
	perTreatment := overhead.Div(decimal.NewFromInt(int64(totalTreatments)))
	m.OverheadPerTreatment, _ = perTreatment.Round(2).Float64()

	if averagePrice != 0 {
		pct := perTreatment.Div(decimal.NewFromFloat(averagePrice)).Mul(decimal.NewFromInt(100))
		m.OverheadPercentage, _ = pct.Round(2).Float64()
	}
	return m
}

// AnalyzeServiceCost prices one service against its share of the overhead.
// A negative margin is a valid outcome, not an error.
func AnalyzeServiceCost(svc models.Service, overheadCost float64) ServiceCostAnalysis {
	price := decimal.NewFromFloat(svc.Price)
	material := decimal.NewFromFloat(svc.MaterialCost)
	overhead := decimal.NewFromFloat(overheadCost)

	totalCost := material.Add(overhead)
	a := ServiceCostAnalysis{
		ServiceID:    svc.ID,
		Name:         svc.Name,
		Price:        svc.Price,
		MaterialCost: svc.MaterialCost,
	}
	a.OverheadCost, _ = overhead.Round(2).Float64()
	a.TotalCost, _ = totalCost.Round(2).Float64()
	a.MarginWithoutOverhead, _ = price.Sub(material).Round(2).Float64()
	a.MarginWithOverhead, _ = price.Sub(totalCost).Round(2).Float64()
	if !price.IsZero() {
		a.OverheadPercentage, _ = overhead.Div(price).Mul(decimal.NewFromInt(100)).Round(2).Float64()
	}
	return a
}

// OverheadService computes the allocation over actual booking history.
type OverheadService struct {
	db *gorm.DB
}

func NewOverheadService(db *gorm.DB) *OverheadService {
	return &OverheadService{db: db}
}

// completedInMonth counts a month's completed treatments together with the
// average price and duration of the services behind them. A booking without
// a stored status counts as completed once its time has passed.
type monthAggregate struct {
	Total       int
	AvgPrice    float64
	AvgDuration float64
}

func (s *OverheadService) completedInMonth(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) (monthAggregate, error) {
	start, end := utils.MonthRange(year, month, time.UTC)
	var agg monthAggregate
	err := s.db.WithContext(ctx).
		Table("bookings").
		Select("COUNT(*) as total, COALESCE(AVG(services.price), 0) as avg_price, COALESCE(AVG(bookings.duration), 0) as avg_duration").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where("bookings.tenant_id = ? AND bookings.scheduled_at >= ? AND bookings.scheduled_at < ? AND bookings.deleted_at IS NULL", tenantID, start, end).
		Where("(bookings.status = ? OR (COALESCE(bookings.status, '') = '' AND bookings.scheduled_at < NOW()))", models.BookingStatusCompleted).
		Scan(&agg).Error
	return agg, err
}

// MetricsForMonth returns the overhead allocation for one month. Failures
// are logged and degrade to a zero-valued metrics object.
func (s *OverheadService) MetricsForMonth(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) OverheadMetrics {
	label := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	if tenantID == uuid.Nil {
		return OverheadMetrics{Month: label}
	}

	settings, err := s.Settings(ctx, tenantID)
	if err != nil {
		log.Printf("[OVERHEAD] failed to load settings for tenant %s: %v", tenantID, err)
		return OverheadMetrics{Month: label}
	}

	agg, err := s.completedInMonth(ctx, tenantID, year, month)
	if err != nil {
		log.Printf("[OVERHEAD] failed to aggregate bookings for tenant %s: %v", tenantID, err)
		return OverheadMetrics{Month: label, MonthlyOverhead: settings.MonthlyAmount}
	}

	metrics := ComputeOverheadMetrics(settings.MonthlyAmount, agg.Total, agg.AvgPrice)
	metrics.Month = label
	return metrics
}

// Settings loads the tenant's overhead settings, creating the default row
// on first use.
func (s *OverheadService) Settings(ctx context.Context, tenantID uuid.UUID) (models.OverheadSettings, error) {
	var settings models.OverheadSettings
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.OverheadSettings{
			TenantID: tenantID,
			Method:   models.OverheadMethodTreatments,
		}
		err = s.db.WithContext(ctx).Create(&settings).Error
	}
	return settings, err
}

// AnalyzeServices prices every active service against the month's overhead
// allocation. The allocation method weighs a service's share: equal split
// for "treatments", price-weighted for "revenue", duration-weighted for
// "hours".
func (s *OverheadService) AnalyzeServices(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) []ServiceCostAnalysis {
	if tenantID == uuid.Nil {
		return []ServiceCostAnalysis{}
	}

	settings, err := s.Settings(ctx, tenantID)
	if err != nil {
		log.Printf("[OVERHEAD] failed to load settings for tenant %s: %v", tenantID, err)
		return []ServiceCostAnalysis{}
	}
	agg, err := s.completedInMonth(ctx, tenantID, year, month)
	if err != nil {
		log.Printf("[OVERHEAD] failed to aggregate bookings for tenant %s: %v", tenantID, err)
		return []ServiceCostAnalysis{}
	}

	var services []models.Service
	if err := s.db.WithContext(ctx).
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Order("name").
		Find(&services).Error; err != nil {
		log.Printf("[OVERHEAD] failed to load services for tenant %s: %v", tenantID, err)
		return []ServiceCostAnalysis{}
	}

	metrics := ComputeOverheadMetrics(settings.MonthlyAmount, agg.Total, agg.AvgPrice)

	analyses := make([]ServiceCostAnalysis, 0, len(services))
	for _, svc := range services {
		analyses = append(analyses, AnalyzeServiceCost(svc, allocatedOverhead(metrics.OverheadPerTreatment, settings.Method, svc, agg)))
	}
	return analyses
}

// allocatedOverhead scales the flat per-treatment figure by a service's
// weight under the configured method.
func allocatedOverhead(perTreatment float64, method string, svc models.Service, agg monthAggregate) float64 {
	switch method {
	case models.OverheadMethodRevenue:
		if agg.AvgPrice != 0 {
			weighted := decimal.NewFromFloat(perTreatment).
				Mul(decimal.NewFromFloat(svc.Price)).
				Div(decimal.NewFromFloat(agg.AvgPrice))
			f, _ := weighted.Round(2).Float64()
			return f
		}
	case models.OverheadMethodHours:
		if agg.AvgDuration != 0 {
			weighted := decimal.NewFromFloat(perTreatment).
				Mul(decimal.NewFromInt(int64(svc.Duration))).
				Div(decimal.NewFromFloat(agg.AvgDuration))
			f, _ := weighted.Round(2).Float64()
			return f
		}
	}
	return perTreatment
}
