package analytics

import (
	"log/slog"

	"retailpulse/internal/dataset"
)

// ABC classification thresholds on cumulative revenue share. Boundaries are
// inclusive on the upper bound: a product whose cumulative share lands
// exactly on 80 is still category A.
const (
	categoryAThreshold = 80.0
	categoryBThreshold = 95.0
)

// ComputeABC classifies products into revenue tiers. Products are ranked by
// total revenue descending (stable for equal revenue, preserving input
// order), cumulative shares computed over the grand total, and categories
// assigned by threshold. A zero grand total makes every share undefined, so
// the classifier fails with DegenerateInputError instead.
func ComputeABC(ds *dataset.Dataset, logger *slog.Logger) (*ABCReport, error) {
	if logger == nil {
		logger = slog.Default()
	}

	products := ds.ProductBreakdown()
	if len(products) == 0 {
		return nil, &InsufficientDataError{Requirement: "products", Got: 0, Need: 1}
	}

	var grandTotal float64
	for _, p := range products {
		grandTotal += p.TotalRevenue
	}
	if grandTotal == 0 {
		return nil, &DegenerateInputError{Quantity: "total revenue"}
	}

	rows := make([]ProductABC, len(products))
	cumulative := 0.0
	for i, p := range products {
		cumulative += p.TotalRevenue
		share := cumulative / grandTotal * 100

		category := "C"
		switch {
		case share <= categoryAThreshold:
			category = "A"
		case share <= categoryBThreshold:
			category = "B"
		}

		rows[i] = ProductABC{
			StockCode:         p.StockCode,
			Description:       p.Description,
			TotalQuantity:     p.TotalQuantity,
			TotalRevenue:      p.TotalRevenue,
			OrderCount:        p.OrderCount,
			CustomerCount:     p.CustomerCount,
			AvgPrice:          p.AvgPrice,
			CumulativeRevenue: cumulative,
			RevenuePercentage: share,
			Category:          category,
		}
	}

	report := &ABCReport{
		Products:   rows,
		Categories: summariseCategories(rows, grandTotal),
	}

	for _, c := range report.Categories {
		logger.Info("abc category summary",
			"category", c.Category,
			"products", c.ProductCount,
			"revenue_pct", c.RevenuePercentage,
		)
	}

	return report, nil
}

// summariseCategories rolls the per-product rows up into A/B/C totals. All
// three categories are always present, so consumers see the full partition
// even when a tier is empty.
func summariseCategories(rows []ProductABC, grandTotal float64) []CategorySummary {
	byCategory := map[string]*CategorySummary{
		"A": {Category: "A"},
		"B": {Category: "B"},
		"C": {Category: "C"},
	}

	for _, row := range rows {
		c := byCategory[row.Category]
		c.ProductCount++
		c.TotalRevenue += row.TotalRevenue
		c.TotalQuantity += row.TotalQuantity
	}

	out := make([]CategorySummary, 0, 3)
	for _, name := range []string{"A", "B", "C"} {
		c := byCategory[name]
		c.RevenuePercentage = c.TotalRevenue / grandTotal * 100
		c.ProductPercentage = float64(c.ProductCount) / float64(len(rows)) * 100
		out = append(out, *c)
	}
	return out
}
