package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/salesight/salesight/internal/config"
	"github.com/salesight/salesight/internal/domain"
)

// Engine computes all derived analytics over a filtered record set. It holds
// no state besides the revenue thresholds of the priority table, so a single
// instance serves every request.
type Engine struct {
	cfg config.AnalyticsConfig
}

func NewEngine(cfg config.AnalyticsConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Snapshot recomputes the full aggregate for one record set.
func (e *Engine) Snapshot(records []domain.SalesRecord) *domain.AnalyticsSnapshot {
	abc := e.ABCAnalysis(records)
	xyz := e.XYZAnalysis(records)

	snap := &domain.AnalyticsSnapshot{
		ABCAnalysis:    abc,
		XYZAnalysis:    xyz,
		ABCXYZAnalysis: e.ABCXYZAnalysis(abc, xyz),
		FactorAnalysis: e.FactorAnalysis(records),
		Structural:     e.StructuralAnalysis(records),
	}

	var totalRevenue float64
	liquid := 0
	for _, r := range records {
		totalRevenue += r.Revenue
		if r.Quantity > 3 {
			liquid++
		}
	}
	snap.TotalRevenue = totalRevenue
	snap.TotalSales = len(records)
	if len(records) > 0 {
		snap.AverageCheck = totalRevenue / float64(len(records))
		snap.Liquidity = float64(liquid) / float64(len(records)) * 100
	}

	snap.MonthlyTrend = monthlyTrend(records)
	snap.TopProducts = topProducts(records, 5)
	snap.RegionAnalysis = regionAnalysis(records, totalRevenue)

	return snap
}

// ABCAnalysis ranks products by revenue and splits them at the 80% and 95%
// cumulative-share boundaries.
func (e *Engine) ABCAnalysis(records []domain.SalesRecord) []domain.ABCItem {
	if len(records) == 0 {
		return []domain.ABCItem{}
	}

	names, revenue := revenueByProduct(records)
	sort.SliceStable(names, func(i, j int) bool {
		return revenue[names[i]] > revenue[names[j]]
	})

	var total float64
	for _, name := range names {
		total += revenue[name]
	}

	items := make([]domain.ABCItem, 0, len(names))
	var cumulative float64
	for _, name := range names {
		cumulative += revenue[name]
		cumPct := cumulative / total * 100

		category := "C"
		switch {
		case cumPct <= 80:
			category = "A"
		case cumPct <= 95:
			category = "B"
		}

		items = append(items, domain.ABCItem{
			ProductName:          name,
			Revenue:              revenue[name],
			Percentage:           revenue[name] / total * 100,
			CumulativePercentage: cumPct,
			Category:             category,
		})
	}
	return items
}

// XYZAnalysis buckets each product's quantity into calendar months and
// classifies demand stability by the coefficient of variation over the
// non-zero buckets. A product with no usable months counts as fully erratic.
func (e *Engine) XYZAnalysis(records []domain.SalesRecord) []domain.XYZItem {
	if len(records) == 0 {
		return []domain.XYZItem{}
	}

	var names []string
	monthly := make(map[string]*[12]float64)
	for _, r := range records {
		m, ok := monthIndex(r.Date)
		if !ok {
			continue
		}
		buckets, seen := monthly[r.ProductName]
		if !seen {
			buckets = &[12]float64{}
			monthly[r.ProductName] = buckets
			names = append(names, r.ProductName)
		}
		buckets[m] += float64(r.Quantity)
	}

	items := make([]domain.XYZItem, 0, len(names))
	for _, name := range names {
		cv := coefficientOfVariation(monthly[name][:])

		category, stability := "Z", "Нерегулярный спрос"
		switch {
		case cv <= 15:
			category, stability = "X", "Стабильный спрос"
		case cv <= 35:
			category, stability = "Y", "Сезонный спрос"
		}

		items = append(items, domain.XYZItem{
			ProductName:          name,
			CoefficientVariation: cv,
			Category:             category,
			DemandStability:      stability,
		})
	}
	return items
}

// coefficientOfVariation is computed over the non-zero buckets only, as a
// percentage of their mean. No non-zero buckets means 100.
func coefficientOfVariation(buckets []float64) float64 {
	var nonZero []float64
	for _, v := range buckets {
		if v > 0 {
			nonZero = append(nonZero, v)
		}
	}
	if len(nonZero) == 0 {
		return 100
	}

	var sum float64
	for _, v := range nonZero {
		sum += v
	}
	mean := sum / float64(len(nonZero))

	var variance float64
	for _, v := range nonZero {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(nonZero))

	if mean <= 0 {
		return 100
	}
	return math.Sqrt(variance) / mean * 100
}

// ABCXYZAnalysis crosses the two classifications and assigns the
// merchandising strategy and priority for each combined segment. Products
// absent from the variability ranking fall back to Z.
func (e *Engine) ABCXYZAnalysis(abc []domain.ABCItem, xyz []domain.XYZItem) []domain.ABCXYZItem {
	byName := make(map[string]domain.XYZItem, len(xyz))
	for _, item := range xyz {
		byName[item.ProductName] = item
	}

	items := make([]domain.ABCXYZItem, 0, len(abc))
	for _, a := range abc {
		x, found := byName[a.ProductName]
		xyzCategory := "Z"
		cv := 0.0
		if found {
			xyzCategory = x.Category
			cv = x.CoefficientVariation
		}
		combined := a.Category + xyzCategory

		strategy, priority := e.segmentStrategy(combined, a.Revenue)

		items = append(items, domain.ABCXYZItem{
			ProductName:          a.ProductName,
			ABCCategory:          a.Category,
			XYZCategory:          xyzCategory,
			CombinedCategory:     combined,
			Revenue:              a.Revenue,
			CoefficientVariation: cv,
			Strategy:             strategy,
			Priority:             priority,
		})
	}
	return items
}

func (e *Engine) segmentStrategy(combined string, revenue float64) (strategy, priority string) {
	switch combined {
	case "AX":
		strategy = "Ключевые товары - постоянный контроль"
		priority = "Высокий"
		if revenue > e.cfg.AXCriticalRevenue {
			priority = "Критический"
		}
	case "AY":
		strategy = "Важные товары - сезонное планирование"
		priority = "Высокий"
		if revenue > e.cfg.AYCriticalRevenue {
			priority = "Критический"
		}
	case "AZ":
		switch {
		case revenue > e.cfg.AZCriticalRevenue:
			strategy = "Критические проблемные товары - срочный анализ"
			priority = "Критический"
		case revenue > e.cfg.AZHighRevenue:
			strategy = "Контрольные проблемные товары - детальный анализ"
			priority = "Высокий"
		default:
			strategy = "Условно-стабильные товары - мониторинг"
			priority = "Средний"
		}
	case "BX":
		strategy = "Стабильные товары - регулярный контроль"
		priority = "Средний"
	case "BY":
		strategy = "Сезонные товары - планирование запасов"
		priority = "Средний"
	case "BZ":
		strategy = "Нестабильные товары - минимальные запасы"
		priority = "Низкий"
	case "CX":
		strategy = "Стабильные товары - автоматизация"
		priority = "Низкий"
	case "CY":
		strategy = "Сезонные товары - точечные закупки"
		priority = "Низкий"
	case "CZ":
		strategy = "Товары на выбытие - минимизация"
		priority = "Критический (на выбытие)"
	default:
		strategy = "Требует анализа"
		priority = "Неопределен"
	}
	return strategy, priority
}

// FactorAnalysis decomposes the result into four revenue drivers. With no
// records it returns a single placeholder entry rather than an empty list so
// consumers always have something to render.
func (e *Engine) FactorAnalysis(records []domain.SalesRecord) []domain.Factor {
	if len(records) == 0 {
		return []domain.Factor{{
			Factor:      "Нет данных",
			Impact:      0,
			Description: "Загрузите данные для анализа",
			Trend:       "neutral",
		}}
	}

	var totalRevenue, onlineRevenue, marginSum float64
	regionRevenue := make(map[string]float64)
	monthlyRevenue := make(map[int]float64)
	for _, r := range records {
		totalRevenue += r.Revenue
		marginSum += r.Margin
		if r.SalesChannel == domain.ChannelOnline {
			onlineRevenue += r.Revenue
		}
		regionRevenue[r.Region] += r.Revenue
		if m, ok := monthIndex(r.Date); ok {
			monthlyRevenue[m] += r.Revenue
		}
	}

	var topRegion float64
	for _, v := range regionRevenue {
		if v > topRegion {
			topRegion = v
		}
	}

	var maxMonthly, minMonthly float64
	for _, v := range monthlyRevenue {
		if v > maxMonthly {
			maxMonthly = v
		}
		if v > 0 && (minMonthly == 0 || v < minMonthly) {
			minMonthly = v
		}
	}
	seasonality := 1.0
	if minMonthly > 0 {
		seasonality = maxMonthly / minMonthly
	}
	seasonalityTrend := "positive"
	if seasonality > 2 {
		seasonalityTrend = "negative"
	}

	onlineShare, regionShare := 0.0, 0.0
	if totalRevenue > 0 {
		onlineShare = onlineRevenue / totalRevenue * 100
		regionShare = topRegion / totalRevenue * 100
	}

	return []domain.Factor{
		{
			Factor:      "Онлайн продажи",
			Impact:      onlineShare,
			Description: "Доля онлайн канала в общих продажах",
			Trend:       "positive",
		},
		{
			Factor:      "Региональная концентрация",
			Impact:      regionShare,
			Description: "Концентрация продаж в ведущем регионе",
			Trend:       "neutral",
		},
		{
			Factor:      "Сезонность",
			Impact:      seasonality,
			Description: "Коэффициент сезонных колебаний",
			Trend:       seasonalityTrend,
		},
		{
			Factor:      "Средняя маржинальность",
			Impact:      marginSum / float64(len(records)),
			Description: "Средняя маржинальность по всем товарам",
			Trend:       "positive",
		},
	}
}

// StructuralAnalysis breaks total revenue down by category, region and sales
// channel. The Change field stays nil until a prior-period baseline exists.
func (e *Engine) StructuralAnalysis(records []domain.SalesRecord) domain.StructuralAnalysis {
	if len(records) == 0 {
		return domain.StructuralAnalysis{
			ByCategory: []domain.StructuralEntry{},
			ByRegion:   []domain.StructuralEntry{},
			ByChannel:  []domain.StructuralEntry{},
		}
	}

	var total float64
	for _, r := range records {
		total += r.Revenue
	}

	return domain.StructuralAnalysis{
		ByCategory: structuralEntries(records, total, func(r domain.SalesRecord) string { return r.Category }),
		ByRegion:   structuralEntries(records, total, func(r domain.SalesRecord) string { return r.Region }),
		ByChannel:  structuralEntries(records, total, func(r domain.SalesRecord) string { return string(r.SalesChannel) }),
	}
}

func structuralEntries(records []domain.SalesRecord, total float64, key func(domain.SalesRecord) string) []domain.StructuralEntry {
	var names []string
	revenue := make(map[string]float64)
	for _, r := range records {
		k := key(r)
		if _, seen := revenue[k]; !seen {
			names = append(names, k)
		}
		revenue[k] += r.Revenue
	}

	entries := make([]domain.StructuralEntry, 0, len(names))
	for _, name := range names {
		pct := 0.0
		if total > 0 {
			pct = revenue[name] / total * 100
		}
		entries = append(entries, domain.StructuralEntry{
			Name:       name,
			Value:      revenue[name],
			Percentage: pct,
		})
	}
	return entries
}

var monthNames = [12]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// monthlyTrend always yields twelve buckets, zero-filled for months without
// sales, so charts keep a stable axis.
func monthlyTrend(records []domain.SalesRecord) []domain.MonthlyPoint {
	var sales [12]int
	var revenue [12]float64
	for _, r := range records {
		m, ok := monthIndex(r.Date)
		if !ok {
			continue
		}
		sales[m]++
		revenue[m] += r.Revenue
	}

	trend := make([]domain.MonthlyPoint, 12)
	for i := range trend {
		trend[i] = domain.MonthlyPoint{
			Month:   monthNames[i],
			Sales:   sales[i],
			Revenue: revenue[i],
		}
	}
	return trend
}

func topProducts(records []domain.SalesRecord, limit int) []domain.TopProduct {
	var names []string
	sales := make(map[string]int)
	revenue := make(map[string]float64)
	for _, r := range records {
		if _, seen := revenue[r.ProductName]; !seen {
			names = append(names, r.ProductName)
		}
		sales[r.ProductName] += r.Quantity
		revenue[r.ProductName] += r.Revenue
	}

	sort.SliceStable(names, func(i, j int) bool {
		return revenue[names[i]] > revenue[names[j]]
	})
	if len(names) > limit {
		names = names[:limit]
	}

	top := make([]domain.TopProduct, 0, len(names))
	for _, name := range names {
		top = append(top, domain.TopProduct{
			Name:    name,
			Sales:   sales[name],
			Revenue: revenue[name],
		})
	}
	return top
}

func regionAnalysis(records []domain.SalesRecord, totalRevenue float64) []domain.RegionShare {
	var names []string
	revenue := make(map[string]float64)
	for _, r := range records {
		if _, seen := revenue[r.Region]; !seen {
			names = append(names, r.Region)
		}
		revenue[r.Region] += r.Revenue
	}

	shares := make([]domain.RegionShare, 0, len(names))
	for _, name := range names {
		pct := 0.0
		if totalRevenue > 0 {
			pct = revenue[name] / totalRevenue * 100
		}
		shares = append(shares, domain.RegionShare{
			Region:     name,
			Sales:      revenue[name],
			Percentage: pct,
		})
	}
	return shares
}

func revenueByProduct(records []domain.SalesRecord) ([]string, map[string]float64) {
	var names []string
	revenue := make(map[string]float64)
	for _, r := range records {
		if _, seen := revenue[r.ProductName]; !seen {
			names = append(names, r.ProductName)
		}
		revenue[r.ProductName] += r.Revenue
	}
	return names, revenue
}

// monthIndex extracts the zero-based calendar month from an ISO date string.
func monthIndex(date string) (int, bool) {
	t, err := time.Parse("2006-1-2", date)
	if err != nil {
		return 0, false
	}
	return int(t.Month()) - 1, true
}
