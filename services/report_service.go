package services

import (
	"context"
	"log"
	"time"

	"salonsphere-backend/cache"
	"salonsphere-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const reportCacheTTL = 5 * time.Minute

// ReportService serves the dashboard aggregation endpoints. It tries the
// database functions first, falls back to row re-aggregation where one
// exists, and otherwise degrades to an empty series: a broken dashboard
// widget must not take the page down with it. Failures are logged, never
// propagated, and never retried.
type ReportService struct {
	primary  TimeseriesSource
	fallback TimeseriesSource
	cache    cache.Cache
}

func NewReportService(db *gorm.DB, c cache.Cache) *ReportService {
	return &ReportService{
		primary:  NewProcSource(db),
		fallback: NewFallbackSource(db),
		cache:    c,
	}
}

// NewReportServiceWithSources is the test seam.
func NewReportServiceWithSources(primary, fallback TimeseriesSource, c cache.Cache) *ReportService {
	return &ReportService{primary: primary, fallback: fallback, cache: c}
}

// RevenueSeries returns the per-day revenue for [from, to).
func (s *ReportService) RevenueSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) []TimePoint {
	if tenantID == uuid.Nil {
		return []TimePoint{}
	}
	key := cache.QueryKey(cache.EntityReport, tenantID, "revenue", utils.FormatDay(from), utils.FormatDay(to))
	if cached, found := s.cache.Get(ctx, key); found {
		if points, ok := cached.([]TimePoint); ok {
			return points
		}
	}

	points, err := s.primary.RevenueSeries(ctx, tenantID, from, to)
	if err != nil {
		log.Printf("[REPORTS] revenue_timeseries failed for tenant %s, using fallback: %v", tenantID, err)
		points, err = s.fallback.RevenueSeries(ctx, tenantID, from, to)
		if err != nil {
			log.Printf("[REPORTS] revenue fallback failed for tenant %s: %v", tenantID, err)
			return []TimePoint{}
		}
	}
	if points == nil {
		points = []TimePoint{}
	}
	s.cache.Set(ctx, key, points, reportCacheTTL)
	return points
}

// BookingSeries returns the per-day booking counts for [from, to).
func (s *ReportService) BookingSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) []TimePoint {
	if tenantID == uuid.Nil {
		return []TimePoint{}
	}
	key := cache.QueryKey(cache.EntityReport, tenantID, "bookings", utils.FormatDay(from), utils.FormatDay(to))
	if cached, found := s.cache.Get(ctx, key); found {
		if points, ok := cached.([]TimePoint); ok {
			return points
		}
	}

	points, err := s.primary.BookingSeries(ctx, tenantID, from, to)
	if err != nil {
		log.Printf("[REPORTS] bookings_timeseries failed for tenant %s: %v", tenantID, err)
		return []TimePoint{}
	}
	if points == nil {
		points = []TimePoint{}
	}
	s.cache.Set(ctx, key, points, reportCacheTTL)
	return points
}

// PopularServices returns the top services by revenue share for [from, to).
func (s *ReportService) PopularServices(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) []ServicePopularity {
	if tenantID == uuid.Nil {
		return []ServicePopularity{}
	}
	key := cache.QueryKey(cache.EntityReport, tenantID, "popular", utils.FormatDay(from), utils.FormatDay(to), limit)
	if cached, found := s.cache.Get(ctx, key); found {
		if ranked, ok := cached.([]ServicePopularity); ok {
			return ranked
		}
	}

	ranked, err := s.primary.PopularServices(ctx, tenantID, from, to, limit)
	if err != nil {
		log.Printf("[REPORTS] popular_services failed for tenant %s: %v", tenantID, err)
		return []ServicePopularity{}
	}
	if ranked == nil {
		ranked = []ServicePopularity{}
	}
	s.cache.Set(ctx, key, ranked, reportCacheTTL)
	return ranked
}
