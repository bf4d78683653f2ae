package domain

// ABCItem is one product in the revenue-concentration classification.
type ABCItem struct {
	ProductName          string  `json:"product_name"`
	Revenue              float64 `json:"revenue"`
	Percentage           float64 `json:"percentage"`
	CumulativePercentage float64 `json:"cumulative_percentage"`
	Category             string  `json:"category"` // A, B or C
}

// XYZItem is one product in the demand-variability classification.
type XYZItem struct {
	ProductName          string  `json:"product_name"`
	CoefficientVariation float64 `json:"coefficient_variation"`
	Category             string  `json:"category"` // X, Y or Z
	DemandStability      string  `json:"demand_stability"`
}

// ABCXYZItem is the cross-classification of a product with its assigned
// merchandising strategy and priority.
type ABCXYZItem struct {
	ProductName          string  `json:"product_name"`
	ABCCategory          string  `json:"abc_category"`
	XYZCategory          string  `json:"xyz_category"`
	CombinedCategory     string  `json:"combined_category"`
	Revenue              float64 `json:"revenue"`
	CoefficientVariation float64 `json:"coefficient_variation"`
	Strategy             string  `json:"strategy"`
	Priority             string  `json:"priority"`
}

// SegmentGuidance is the long-form merchandising guidance behind a combined
// category's strategy line.
type SegmentGuidance struct {
	Title           string   `json:"title"`
	Reasons         []string `json:"reasons"`
	Recommendations []string `json:"recommendations"`
	Risks           []string `json:"risks"`
}

// Factor is one entry of the factor decomposition.
type Factor struct {
	Factor      string  `json:"factor"`
	Impact      float64 `json:"impact"`
	Description string  `json:"description"`
	Trend       string  `json:"trend"` // positive, negative or neutral
}

// StructuralEntry is one group's revenue share within a structural breakdown.
// Change is the period-over-period delta; it stays nil until a prior-period
// baseline is supplied, it is never synthesized.
type StructuralEntry struct {
	Name       string   `json:"name"`
	Value      float64  `json:"value"`
	Percentage float64  `json:"percentage"`
	Change     *float64 `json:"change"`
}

// StructuralAnalysis groups revenue shares by category, region and channel.
type StructuralAnalysis struct {
	ByCategory []StructuralEntry `json:"by_category"`
	ByRegion   []StructuralEntry `json:"by_region"`
	ByChannel  []StructuralEntry `json:"by_channel"`
}

// MonthlyPoint is one calendar-month bucket of the trend.
type MonthlyPoint struct {
	Month   string  `json:"month"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// TopProduct is one of the highest-revenue products in the summary.
type TopProduct struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

// RegionShare is one region's revenue and its share of the total.
type RegionShare struct {
	Region     string  `json:"region"`
	Sales      float64 `json:"sales"`
	Percentage float64 `json:"percentage"`
}

// AnalyticsSnapshot is the full derived aggregate over one filtered record
// set. It is recomputed on demand and never persisted.
type AnalyticsSnapshot struct {
	TotalRevenue   float64            `json:"total_revenue"`
	TotalSales     int                `json:"total_sales"`
	AverageCheck   float64            `json:"average_check"`
	Liquidity      float64            `json:"liquidity"`
	MonthlyTrend   []MonthlyPoint     `json:"monthly_trend"`
	TopProducts    []TopProduct       `json:"top_products"`
	RegionAnalysis []RegionShare      `json:"region_analysis"`
	ABCAnalysis    []ABCItem          `json:"abc_analysis"`
	XYZAnalysis    []XYZItem          `json:"xyz_analysis"`
	ABCXYZAnalysis []ABCXYZItem       `json:"abcxyz_analysis"`
	FactorAnalysis []Factor           `json:"factor_analysis"`
	Structural     StructuralAnalysis `json:"structural_analysis"`
}

// ForecastPoint is one projected period.
type ForecastPoint struct {
	Value  float64 `json:"value"`
	Growth float64 `json:"growth"`
}

// Forecast carries the heuristic revenue projections.
type Forecast struct {
	NextMonth   ForecastPoint `json:"next_month"`
	NextQuarter ForecastPoint `json:"next_quarter"`
}
