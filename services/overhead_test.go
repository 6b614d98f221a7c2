package services

import (
	"testing"

	"salonsphere-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeOverheadMetrics(t *testing.T) {
	tests := []struct {
		name            string
		monthlyOverhead float64
		totalTreatments int
		averagePrice    float64
		perTreatment    float64
		percentage      float64
	}{
		{"zero treatments yields zero", 1000, 0, 0, 0, 0},
		{"even split", 1000, 200, 50, 5, 10},
		{"rounding to cents", 1000, 3, 60, 333.33, 555.56},
		{"zero average price skips percentage", 900, 30, 0, 30, 0},
		{"zero overhead", 0, 50, 40, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ComputeOverheadMetrics(tt.monthlyOverhead, tt.totalTreatments, tt.averagePrice)
			assert.Equal(t, tt.monthlyOverhead, m.MonthlyOverhead)
			assert.Equal(t, tt.totalTreatments, m.TotalTreatments)
			assert.InDelta(t, tt.perTreatment, m.OverheadPerTreatment, 0.001)
			assert.InDelta(t, tt.percentage, m.OverheadPercentage, 0.001)
		})
	}
}

func TestAnalyzeServiceCost(t *testing.T) {
	svc := models.Service{Name: "Knippen", Price: 50, MaterialCost: 10}

	a := AnalyzeServiceCost(svc, 5)
	assert.InDelta(t, 15, a.TotalCost, 0.001)
	assert.InDelta(t, 40, a.MarginWithoutOverhead, 0.001)
	assert.InDelta(t, 35, a.MarginWithOverhead, 0.001)
	assert.InDelta(t, 10, a.OverheadPercentage, 0.001)
}

func TestAnalyzeServiceCost_NegativeMargin(t *testing.T) {
	svc := models.Service{Name: "Proefbehandeling", Price: 10, MaterialCost: 8}

	a := AnalyzeServiceCost(svc, 7.5)
	assert.InDelta(t, 15.5, a.TotalCost, 0.001)
	assert.InDelta(t, 2, a.MarginWithoutOverhead, 0.001)
	assert.InDelta(t, -5.5, a.MarginWithOverhead, 0.001)
}

func TestAnalyzeServiceCost_ZeroPrice(t *testing.T) {
	a := AnalyzeServiceCost(models.Service{Name: "Gratis intake"}, 5)
	assert.Zero(t, a.OverheadPercentage)
	assert.InDelta(t, -5, a.MarginWithOverhead, 0.001)
}

func TestAllocatedOverhead(t *testing.T) {
	agg := monthAggregate{Total: 100, AvgPrice: 50, AvgDuration: 60}

	cheap := models.Service{Price: 25, Duration: 30}
	expensive := models.Service{Price: 100, Duration: 120}

	t.Run("treatments splits equally", func(t *testing.T) {
		assert.InDelta(t, 10, allocatedOverhead(10, models.OverheadMethodTreatments, cheap, agg), 0.001)
		assert.InDelta(t, 10, allocatedOverhead(10, models.OverheadMethodTreatments, expensive, agg), 0.001)
	})

	t.Run("revenue weighs by price", func(t *testing.T) {
		assert.InDelta(t, 5, allocatedOverhead(10, models.OverheadMethodRevenue, cheap, agg), 0.001)
		assert.InDelta(t, 20, allocatedOverhead(10, models.OverheadMethodRevenue, expensive, agg), 0.001)
	})

	t.Run("hours weighs by duration", func(t *testing.T) {
		assert.InDelta(t, 5, allocatedOverhead(10, models.OverheadMethodHours, cheap, agg), 0.001)
		assert.InDelta(t, 20, allocatedOverhead(10, models.OverheadMethodHours, expensive, agg), 0.001)
	})

	t.Run("zero averages fall back to equal split", func(t *testing.T) {
		empty := monthAggregate{}
		assert.InDelta(t, 10, allocatedOverhead(10, models.OverheadMethodRevenue, expensive, empty), 0.001)
		assert.InDelta(t, 10, allocatedOverhead(10, models.OverheadMethodHours, expensive, empty), 0.001)
	})
}
