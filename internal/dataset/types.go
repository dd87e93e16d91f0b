package dataset

import (
	"time"
)

// Transaction represents a single cleaned line item from the retail log.
// TotalPrice and the calendar fields are derived when the snapshot is built
// and never recomputed afterwards.
type Transaction struct {
	InvoiceNo   string    `json:"invoice_no"`
	StockCode   string    `json:"stock_code"`
	Description string    `json:"description"`
	Quantity    float64   `json:"quantity"`
	InvoiceDate time.Time `json:"invoice_date"`
	UnitPrice   float64   `json:"unit_price"`
	CustomerID  string    `json:"customer_id"`
	Country     string    `json:"country"`

	// Derived fields
	TotalPrice  float64 `json:"total_price"`
	Year        int     `json:"year"`
	Month       int     `json:"month"`
	MonthName   string  `json:"month_name"`
	Weekday     int     `json:"weekday"` // 0 = Monday .. 6 = Sunday
	WeekdayName string  `json:"weekday_name"`
	Hour        int     `json:"hour"`
	Quarter     int     `json:"quarter"`
	ISOWeek     int     `json:"iso_week"`
}

// IsValid checks if the raw transaction fields are usable for analysis.
func (t Transaction) IsValid() bool {
	return t.CustomerID != "" && t.Quantity > 0 && t.UnitPrice > 0 &&
		!t.InvoiceDate.IsZero()
}

// Dataset is an immutable snapshot of the cleaned transaction set. All
// analytics and forecasting components operate on a Dataset and return fresh
// report structures; nothing mutates the snapshot after construction.
type Dataset struct {
	rows  []Transaction
	start time.Time
	end   time.Time
}

// New builds a Dataset from transactions. The slice is copied so the caller
// cannot mutate the snapshot afterwards, and the derived fields are filled
// for every row.
func New(rows []Transaction) *Dataset {
	copied := make([]Transaction, len(rows))
	copy(copied, rows)

	ds := &Dataset{rows: copied}
	for i := range copied {
		attachDerived(&copied[i])
	}
	for _, t := range copied {
		if ds.start.IsZero() || t.InvoiceDate.Before(ds.start) {
			ds.start = t.InvoiceDate
		}
		if t.InvoiceDate.After(ds.end) {
			ds.end = t.InvoiceDate
		}
	}
	return ds
}

// Len returns the number of line items in the snapshot.
func (d *Dataset) Len() int { return len(d.rows) }

// Rows returns the transactions in input order. The returned slice shares the
// snapshot's backing array; callers must treat it as read-only.
func (d *Dataset) Rows() []Transaction { return d.rows }

// Start returns the earliest invoice timestamp in the snapshot.
func (d *Dataset) Start() time.Time { return d.start }

// End returns the latest invoice timestamp in the snapshot.
func (d *Dataset) End() time.Time { return d.end }

// weekdayIndex maps Go's Sunday-first weekday to a Monday-first index.
func weekdayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// attachDerived fills TotalPrice and the calendar feature fields in place.
func attachDerived(t *Transaction) {
	t.TotalPrice = t.Quantity * t.UnitPrice
	t.Year = t.InvoiceDate.Year()
	t.Month = int(t.InvoiceDate.Month())
	t.MonthName = t.InvoiceDate.Month().String()
	t.Weekday = weekdayIndex(t.InvoiceDate.Weekday())
	t.WeekdayName = weekdayNames[t.Weekday]
	t.Hour = t.InvoiceDate.Hour()
	t.Quarter = (t.Month-1)/3 + 1
	_, t.ISOWeek = t.InvoiceDate.ISOWeek()
}

// MonthlyPoint is one month of the aggregated revenue series. Index is
// 0-based and calendar-contiguous: months without invoices appear as
// zero-filled points so the forecast engine sees an unbroken series.
type MonthlyPoint struct {
	Month         time.Time `json:"month"` // first of month, UTC
	Revenue       float64   `json:"revenue"`
	Orders        int       `json:"orders"`
	Customers     int       `json:"customers"`
	Quantity      float64   `json:"quantity"`
	AvgOrderValue float64   `json:"avg_order_value"`
	Index         int       `json:"index"`
}

// DailyPoint is one calendar day of aggregated metrics.
type DailyPoint struct {
	Date          time.Time `json:"date"`
	Revenue       float64   `json:"revenue"`
	Orders        int       `json:"orders"`
	Customers     int       `json:"customers"`
	Quantity      float64   `json:"quantity"`
	AvgOrderValue float64   `json:"avg_order_value"`
}

// CustomerMetrics is the per-customer aggregation view.
type CustomerMetrics struct {
	CustomerID    string    `json:"customer_id"`
	OrderCount    int       `json:"order_count"`
	TotalSpent    float64   `json:"total_spent"`
	TotalQuantity float64   `json:"total_quantity"`
	FirstOrder    time.Time `json:"first_order"`
	LastOrder     time.Time `json:"last_order"`
	AvgOrderValue float64   `json:"avg_order_value"`
}

// ProductMetrics is the per-product aggregation view, sorted by revenue when
// produced by ProductBreakdown.
type ProductMetrics struct {
	StockCode          string  `json:"stock_code"`
	Description        string  `json:"description"`
	TotalQuantity      float64 `json:"total_quantity"`
	TotalRevenue       float64 `json:"total_revenue"`
	OrderCount         int     `json:"order_count"`
	CustomerCount      int     `json:"customer_count"`
	AvgPrice           float64 `json:"avg_price"`
	AvgQuantityPerOrder float64 `json:"avg_quantity_per_order"`
}

// KPIReport holds the headline business metrics for the whole snapshot.
type KPIReport struct {
	TotalRevenue     float64   `json:"total_revenue"`
	TotalOrders      int       `json:"total_orders"`
	TotalCustomers   int       `json:"total_customers"`
	TotalProducts    int       `json:"total_products"`
	AvgOrderValue    float64   `json:"avg_order_value"`
	AvgItemsPerOrder float64   `json:"avg_items_per_order"`
	DateRangeStart   time.Time `json:"date_range_start"`
	DateRangeEnd     time.Time `json:"date_range_end"`
	RevenueGrowthPct float64   `json:"revenue_growth_pct"`
}
