package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"salonsphere-backend/utils"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// ErrUnsupported is returned by a TimeseriesSource for series it cannot
// produce, so the caller can move on to the next source.
var ErrUnsupported = errors.New("timeseries: series not supported by this source")

// TimePoint is one day of an aggregated series. Day is an ISO calendar date.
type TimePoint struct {
	Day   string  `json:"day"`
	Value float64 `json:"value"`
}

// ServicePopularity ranks one service inside a date range.
type ServicePopularity struct {
	Name       string  `json:"name"`
	Total      float64 `json:"total"`
	Percentage float64 `json:"percentage"`
}

// TimeseriesSource produces dashboard aggregates for a tenant and date
// range. Two implementations exist: the database functions, and a fallback
// that re-derives revenue from raw invoice rows. Both return the same
// shapes so callers never know which one ran.
type TimeseriesSource interface {
	RevenueSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error)
	BookingSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error)
	PopularServices(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]ServicePopularity, error)
}

// procSource delegates aggregation to the database functions
// revenue_timeseries, bookings_timeseries and popular_services.
type procSource struct {
	db *gorm.DB
}

func NewProcSource(db *gorm.DB) TimeseriesSource {
	return &procSource{db: db}
}

type dayRow struct {
	Day   time.Time
	Value float64
}

func (s *procSource) RevenueSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	return s.series(ctx, "revenue_timeseries", tenantID, from, to)
}

func (s *procSource) BookingSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	return s.series(ctx, "bookings_timeseries", tenantID, from, to)
}

func (s *procSource) series(ctx context.Context, proc string, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	var rows []dayRow
	err := s.db.WithContext(ctx).
		Raw("SELECT day, value FROM "+proc+"(?, ?, ?)",
			tenantID, utils.FormatDay(from), utils.FormatDay(to)).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	points := lo.Map(rows, func(r dayRow, _ int) TimePoint {
		return TimePoint{Day: utils.FormatDay(r.Day), Value: r.Value}
	})
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points, nil
}

func (s *procSource) PopularServices(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]ServicePopularity, error) {
	var rows []ServicePopularity
	err := s.db.WithContext(ctx).
		Raw("SELECT name, total, percentage FROM popular_services(?, ?, ?, ?)",
			tenantID, utils.FormatDay(from), utils.FormatDay(to), limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PaidInvoiceRow is the raw material of the fallback revenue aggregation.
type PaidInvoiceRow struct {
	PaidAt time.Time
	Total  float64
}

// AggregateRevenueByDay groups paid invoices by calendar day and sums their
// totals, producing the same shape as the revenue_timeseries function.
func AggregateRevenueByDay(rows []PaidInvoiceRow) []TimePoint {
	byDay := lo.GroupBy(rows, func(r PaidInvoiceRow) string {
		return utils.FormatDay(r.PaidAt)
	})
	points := make([]TimePoint, 0, len(byDay))
	for day, dayRows := range byDay {
		points = append(points, TimePoint{
			Day: day,
			Value: lo.SumBy(dayRows, func(r PaidInvoiceRow) float64 {
				return r.Total
			}),
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points
}

// fallbackSource re-derives the revenue series from raw invoice rows. Only
// revenue is covered; the other series have no cheap row-level equivalent.
type fallbackSource struct {
	db *gorm.DB
}

func NewFallbackSource(db *gorm.DB) TimeseriesSource {
	return &fallbackSource{db: db}
}

func (s *fallbackSource) RevenueSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	var rows []PaidInvoiceRow
	err := s.db.WithContext(ctx).
		Table("invoices").
		Select("paid_at, total").
		Where("tenant_id = ? AND payment_status = ? AND paid_at >= ? AND paid_at < ? AND deleted_at IS NULL",
			tenantID, "paid", from, to).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return AggregateRevenueByDay(rows), nil
}

func (s *fallbackSource) BookingSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	return nil, ErrUnsupported
}

func (s *fallbackSource) PopularServices(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]ServicePopularity, error) {
	return nil, ErrUnsupported
}
