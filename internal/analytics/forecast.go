package analytics

import "github.com/salesight/salesight/internal/domain"

// Forecast projects next-month and next-quarter revenue from the snapshot's
// monthly trend. Growth is the relative change of the last up-to-three active
// months against the earlier active months, adjusted upward by the share of
// high-revenue and stable-demand products, and clamped to [0, 25] percent.
// The quarter applies a 0.8 dampening because the horizon is longer.
func (e *Engine) Forecast(snap *domain.AnalyticsSnapshot) *domain.Forecast {
	if snap == nil || snap.TotalSales == 0 {
		return &domain.Forecast{}
	}

	var active []float64
	for _, p := range snap.MonthlyTrend {
		if p.Revenue > 0 {
			active = append(active, p.Revenue)
		}
	}

	if len(active) == 0 {
		return &domain.Forecast{
			NextMonth:   domain.ForecastPoint{Value: snap.TotalRevenue * 0.1, Growth: 5},
			NextQuarter: domain.ForecastPoint{Value: snap.TotalRevenue * 0.3, Growth: 8},
		}
	}

	var sum float64
	for _, v := range active {
		sum += v
	}
	avgMonthly := sum / float64(len(active))

	growth := 0.0
	if len(active) >= 2 {
		cut := len(active) - 3
		if cut < 0 {
			cut = 0
		}
		older, recent := active[:cut], active[cut:]
		if len(older) > 0 {
			olderAvg := mean(older)
			if olderAvg > 0 {
				growth = (mean(recent) - olderAvg) / olderAvg * 100
			} else {
				growth = 5
			}
		}
	}

	totalProducts := len(snap.ABCAnalysis)
	if totalProducts > 0 {
		countA := 0
		for _, item := range snap.ABCAnalysis {
			if item.Category == "A" {
				countA++
			}
		}
		countX := 0
		for _, item := range snap.XYZAnalysis {
			if item.Category == "X" {
				countX++
			}
		}
		growth += float64(countA) / float64(totalProducts) * 5
		growth += float64(countX) / float64(totalProducts) * 3
	}

	if growth < 0 {
		growth = 0
	} else if growth > 25 {
		growth = 25
	}

	quarterGrowth := growth * 0.8
	return &domain.Forecast{
		NextMonth: domain.ForecastPoint{
			Value:  avgMonthly * (1 + growth/100),
			Growth: growth,
		},
		NextQuarter: domain.ForecastPoint{
			Value:  avgMonthly * 3 * (1 + quarterGrowth/100),
			Growth: quarterGrowth,
		},
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
