package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"salonsphere-backend/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubSource counts calls and serves canned data or a fixed error.
type stubSource struct {
	calls  int
	points []TimePoint
	ranked []ServicePopularity
	err    error
}

func (s *stubSource) RevenueSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	s.calls++
	return s.points, s.err
}

func (s *stubSource) BookingSeries(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]TimePoint, error) {
	s.calls++
	return s.points, s.err
}

func (s *stubSource) PopularServices(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]ServicePopularity, error) {
	s.calls++
	return s.ranked, s.err
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestAggregateRevenueByDay(t *testing.T) {
	rows := []PaidInvoiceRow{
		{PaidAt: day("2026-03-01").Add(10 * time.Hour), Total: 10},
		{PaidAt: day("2026-03-01").Add(15 * time.Hour), Total: 20},
		{PaidAt: day("2026-03-03"), Total: 5},
	}

	points := AggregateRevenueByDay(rows)

	assert.Equal(t, []TimePoint{
		{Day: "2026-03-01", Value: 30},
		{Day: "2026-03-03", Value: 5},
	}, points)
}

func TestAggregateRevenueByDay_Empty(t *testing.T) {
	assert.Empty(t, AggregateRevenueByDay(nil))
}

func TestReportService_NilTenantSkipsSources(t *testing.T) {
	primary := &stubSource{}
	fallback := &stubSource{}
	svc := NewReportServiceWithSources(primary, fallback, cache.NewInMemoryCache())

	ctx := context.Background()
	from, to := day("2026-03-01"), day("2026-03-31")

	assert.Empty(t, svc.RevenueSeries(ctx, uuid.Nil, from, to))
	assert.Empty(t, svc.BookingSeries(ctx, uuid.Nil, from, to))
	assert.Empty(t, svc.PopularServices(ctx, uuid.Nil, from, to, 5))

	assert.Zero(t, primary.calls)
	assert.Zero(t, fallback.calls)
}

func TestReportService_PrimaryServes(t *testing.T) {
	primary := &stubSource{points: []TimePoint{{Day: "2026-03-01", Value: 42}}}
	fallback := &stubSource{}
	svc := NewReportServiceWithSources(primary, fallback, cache.NewInMemoryCache())

	points := svc.RevenueSeries(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"))

	assert.Equal(t, []TimePoint{{Day: "2026-03-01", Value: 42}}, points)
	assert.Equal(t, 1, primary.calls)
	assert.Zero(t, fallback.calls)
}

func TestReportService_FallbackOnPrimaryFailure(t *testing.T) {
	primary := &stubSource{err: errors.New("function does not exist")}
	fallback := &stubSource{points: []TimePoint{{Day: "2026-03-02", Value: 7}}}
	svc := NewReportServiceWithSources(primary, fallback, cache.NewInMemoryCache())

	points := svc.RevenueSeries(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"))

	assert.Equal(t, []TimePoint{{Day: "2026-03-02", Value: 7}}, points)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestReportService_EmptyWhenBothFail(t *testing.T) {
	boom := errors.New("connection refused")
	primary := &stubSource{err: boom}
	fallback := &stubSource{err: boom}
	svc := NewReportServiceWithSources(primary, fallback, cache.NewInMemoryCache())

	points := svc.RevenueSeries(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"))

	assert.NotNil(t, points)
	assert.Empty(t, points)
	// one attempt each, no retries
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestReportService_BookingSeriesHasNoFallback(t *testing.T) {
	primary := &stubSource{err: errors.New("boom")}
	fallback := &stubSource{points: []TimePoint{{Day: "2026-03-02", Value: 7}}}
	svc := NewReportServiceWithSources(primary, fallback, cache.NewInMemoryCache())

	points := svc.BookingSeries(context.Background(), uuid.New(), day("2026-03-01"), day("2026-03-31"))

	assert.Empty(t, points)
	assert.Zero(t, fallback.calls)
}

func TestReportService_CachesResults(t *testing.T) {
	primary := &stubSource{points: []TimePoint{{Day: "2026-03-01", Value: 42}}}
	svc := NewReportServiceWithSources(primary, &stubSource{}, cache.NewInMemoryCache())

	tenantID := uuid.New()
	ctx := context.Background()
	from, to := day("2026-03-01"), day("2026-03-31")

	first := svc.RevenueSeries(ctx, tenantID, from, to)
	second := svc.RevenueSeries(ctx, tenantID, from, to)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, primary.calls)
}
