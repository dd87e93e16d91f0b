package analytics

import (
	"time"
)

// RFMRecord is the scored profile for a single customer. Scores are quintile
// ranks in 1..5 (5 best); Composite concatenates the R, F and M digits.
type RFMRecord struct {
	CustomerID    string  `json:"customer_id"`
	RecencyDays   int     `json:"recency_days"`
	Frequency     int     `json:"frequency"` // distinct invoices
	Monetary      float64 `json:"monetary"`
	RScore        int     `json:"r_score"`
	FScore        int     `json:"f_score"`
	MScore        int     `json:"m_score"`
	Composite     string  `json:"composite"` // e.g. "555"
	ScoreTotal    int     `json:"score_total"` // sum of digits, 3..15
	Segment       string  `json:"segment"`
	AvgOrderValue float64 `json:"avg_order_value"`
	LifetimeValue float64 `json:"lifetime_value"`
}

// RFMReport bundles the per-customer records with the reference date used
// for recency.
type RFMReport struct {
	ReferenceDate time.Time   `json:"reference_date"`
	Records       []RFMRecord `json:"records"`
}

// CustomerInsights summarises the RFM segmentation for reporting.
type CustomerInsights struct {
	TotalCustomers      int                `json:"total_customers"`
	SegmentDistribution map[string]int     `json:"segment_distribution"`
	SegmentValue        map[string]float64 `json:"segment_value"`
	AvgCustomerValue    float64            `json:"avg_customer_value"`
	TopSegment          string             `json:"top_segment"`
	ChampionsCount      int                `json:"champions_count"`
	AtRiskCount         int                `json:"at_risk_count"`
	LostCount           int                `json:"lost_count"`
	RepeatCustomerRate  float64            `json:"repeat_customer_rate"` // percent
	Recommendations     []string           `json:"recommendations"`
}

// ProductABC is one product's row in the ABC classification, in descending
// revenue order.
type ProductABC struct {
	StockCode         string  `json:"stock_code"`
	Description       string  `json:"description"`
	TotalQuantity     float64 `json:"total_quantity"`
	TotalRevenue      float64 `json:"total_revenue"`
	OrderCount        int     `json:"order_count"`
	CustomerCount     int     `json:"customer_count"`
	AvgPrice          float64 `json:"avg_price"`
	CumulativeRevenue float64 `json:"cumulative_revenue"`
	RevenuePercentage float64 `json:"revenue_percentage"` // cumulative share, 0..100
	Category          string  `json:"category"`           // A, B or C
}

// CategorySummary is the per-category rollup of the ABC classification.
type CategorySummary struct {
	Category          string  `json:"category"`
	ProductCount      int     `json:"product_count"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalQuantity     float64 `json:"total_quantity"`
	RevenuePercentage float64 `json:"revenue_percentage"`
	ProductPercentage float64 `json:"product_percentage"`
}

// ABCReport is the full product classification.
type ABCReport struct {
	Products   []ProductABC      `json:"products"`
	Categories []CategorySummary `json:"categories"`
}

// MonthPattern aggregates one calendar month (year + month) of activity.
type MonthPattern struct {
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	MonthName string  `json:"month_name"`
	Revenue   float64 `json:"revenue"`
	Orders    int     `json:"orders"`
	Customers int     `json:"customers"`
}

// PeriodStat aggregates one weekday or hour bucket.
type PeriodStat struct {
	Label     string  `json:"label"`
	Revenue   float64 `json:"revenue"`
	Orders    int     `json:"orders"`
	Customers int     `json:"customers"`
}

// SeasonalReport captures calendar-dimension patterns and a 0..100
// seasonality strength score.
type SeasonalReport struct {
	MonthlyPatterns  []MonthPattern `json:"monthly_patterns"`
	WeekdayPatterns  []PeriodStat   `json:"weekday_patterns"`
	HourlyPatterns   []PeriodStat   `json:"hourly_patterns"`
	PeakMonth        string         `json:"peak_month"`
	PeakWeekday      string         `json:"peak_weekday"`
	PeakHour         int            `json:"peak_hour"`
	SeasonalityScore float64        `json:"seasonality_score"`
}

// CountryStats aggregates activity for one country, sorted by revenue in
// GeographicBreakdown output.
type CountryStats struct {
	Country           string  `json:"country"`
	TotalRevenue      float64 `json:"total_revenue"`
	Orders            int     `json:"orders"`
	Customers         int     `json:"customers"`
	Quantity          float64 `json:"quantity"`
	AvgOrderValue     float64 `json:"avg_order_value"`
	RevenuePercentage float64 `json:"revenue_percentage"`
}

// StrategicRecommendation is one actionable item in the business report.
type StrategicRecommendation struct {
	Category       string `json:"category"`
	Priority       string `json:"priority"` // High, Medium, Low
	Recommendation string `json:"recommendation"`
	ExpectedImpact string `json:"expected_impact"`
}

// ExecutiveSummary holds the headline numbers of the business report.
type ExecutiveSummary struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TotalCustomers int     `json:"total_customers"`
	RevenueGrowth  float64 `json:"revenue_growth"`
	AvgOrderValue  float64 `json:"avg_order_value"`
}

// BusinessReport is the merged decision-support bundle the presentation
// layer consumes.
type BusinessReport struct {
	Summary         ExecutiveSummary          `json:"executive_summary"`
	Customers       CustomerInsights          `json:"customer_insights"`
	Seasonal        SeasonalReport            `json:"seasonal_patterns"`
	Geographic      []CountryStats            `json:"geographic_analysis"`
	Recommendations []StrategicRecommendation `json:"recommendations"`
}
