package analytics

import (
	"math"
	"testing"

	"github.com/salesight/salesight/internal/domain"
)

func trendOf(revenues ...float64) []domain.MonthlyPoint {
	trend := make([]domain.MonthlyPoint, 12)
	for i := range trend {
		trend[i].Month = monthNames[i]
		if i < len(revenues) {
			trend[i].Revenue = revenues[i]
		}
	}
	return trend
}

func TestForecastNoSales(t *testing.T) {
	t.Parallel()

	e := testEngine()

	f := e.Forecast(nil)
	if f.NextMonth.Value != 0 || f.NextQuarter.Value != 0 {
		t.Fatalf("nil snapshot forecast = %+v", f)
	}

	f = e.Forecast(&domain.AnalyticsSnapshot{})
	if f.NextMonth.Value != 0 || f.NextMonth.Growth != 0 {
		t.Fatalf("empty snapshot forecast = %+v", f)
	}
}

func TestForecastNoActiveMonths(t *testing.T) {
	t.Parallel()

	snap := &domain.AnalyticsSnapshot{
		TotalSales:   10,
		TotalRevenue: 50000,
		MonthlyTrend: trendOf(),
	}

	f := testEngine().Forecast(snap)
	if f.NextMonth.Value != 5000 || f.NextMonth.Growth != 5 {
		t.Fatalf("next month = %+v", f.NextMonth)
	}
	if f.NextQuarter.Value != 15000 || f.NextQuarter.Growth != 8 {
		t.Fatalf("next quarter = %+v", f.NextQuarter)
	}
}

func TestForecastFlatTrend(t *testing.T) {
	t.Parallel()

	snap := &domain.AnalyticsSnapshot{
		TotalSales:   6,
		TotalRevenue: 6000,
		MonthlyTrend: trendOf(1000, 1000, 1000, 1000, 1000, 1000),
	}

	f := testEngine().Forecast(snap)
	if f.NextMonth.Growth != 0 {
		t.Fatalf("flat trend growth = %v", f.NextMonth.Growth)
	}
	if f.NextMonth.Value != 1000 {
		t.Fatalf("next month value = %v", f.NextMonth.Value)
	}
	if f.NextQuarter.Value != 3000 {
		t.Fatalf("next quarter value = %v", f.NextQuarter.Value)
	}
}

func TestForecastGrowthClampedHigh(t *testing.T) {
	t.Parallel()

	// Tenfold jump in the recent months hits the 25% ceiling.
	snap := &domain.AnalyticsSnapshot{
		TotalSales:   4,
		MonthlyTrend: trendOf(100, 1000, 1000, 1000),
	}

	f := testEngine().Forecast(snap)
	if f.NextMonth.Growth != 25 {
		t.Fatalf("growth = %v, want clamped to 25", f.NextMonth.Growth)
	}
	if f.NextQuarter.Growth != 20 {
		t.Fatalf("quarter growth = %v, want 0.8 of 25", f.NextQuarter.Growth)
	}

	avgMonthly := (100.0 + 1000 + 1000 + 1000) / 4
	if math.Abs(f.NextMonth.Value-avgMonthly*1.25) > 1e-9 {
		t.Fatalf("next month value = %v", f.NextMonth.Value)
	}
	if math.Abs(f.NextQuarter.Value-avgMonthly*3*1.20) > 1e-9 {
		t.Fatalf("next quarter value = %v", f.NextQuarter.Value)
	}
}

func TestForecastDeclineClampedToZero(t *testing.T) {
	t.Parallel()

	snap := &domain.AnalyticsSnapshot{
		TotalSales:   4,
		MonthlyTrend: trendOf(5000, 100, 100, 100),
	}

	f := testEngine().Forecast(snap)
	if f.NextMonth.Growth != 0 || f.NextQuarter.Growth != 0 {
		t.Fatalf("decline not clamped: %+v", f)
	}
}

func TestForecastPortfolioBonuses(t *testing.T) {
	t.Parallel()

	// Flat trend keeps the base growth at zero; the entire growth comes
	// from the share of A-class and X-class products.
	snap := &domain.AnalyticsSnapshot{
		TotalSales:   4,
		MonthlyTrend: trendOf(1000, 1000, 1000, 1000),
		ABCAnalysis: []domain.ABCItem{
			{ProductName: "П1", Category: "A"},
			{ProductName: "П2", Category: "C"},
		},
		XYZAnalysis: []domain.XYZItem{
			{ProductName: "П1", Category: "X"},
			{ProductName: "П2", Category: "X"},
		},
	}

	f := testEngine().Forecast(snap)
	// Half the products are A (+2.5) and all are X (+3).
	if math.Abs(f.NextMonth.Growth-5.5) > 1e-9 {
		t.Fatalf("growth = %v, want 5.5", f.NextMonth.Growth)
	}
	if math.Abs(f.NextQuarter.Growth-4.4) > 1e-9 {
		t.Fatalf("quarter growth = %v, want 4.4", f.NextQuarter.Growth)
	}
}

func TestForecastSingleActiveMonth(t *testing.T) {
	t.Parallel()

	snap := &domain.AnalyticsSnapshot{
		TotalSales:   1,
		MonthlyTrend: trendOf(2000),
	}

	f := testEngine().Forecast(snap)
	if f.NextMonth.Growth != 0 {
		t.Fatalf("single month growth = %v", f.NextMonth.Growth)
	}
	if f.NextMonth.Value != 2000 || f.NextQuarter.Value != 6000 {
		t.Fatalf("forecast = %+v", f)
	}
}
