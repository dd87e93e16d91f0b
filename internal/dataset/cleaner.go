package dataset

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
)

// CleanStats summarises what the cleaning pass removed.
type CleanStats struct {
	InputRows     int `json:"input_rows"`
	MissingID     int `json:"missing_customer_id"`
	NonPositive   int `json:"non_positive_qty_or_price"`
	OutlierRows   int `json:"outlier_rows"`
	RemainingRows int `json:"remaining_rows"`
}

// Dropped returns the total number of rows removed by cleaning.
func (s CleanStats) Dropped() int {
	return s.MissingID + s.NonPositive + s.OutlierRows
}

// Clean filters raw transactions into the cleaned set the analytics pipeline
// consumes: rows must carry a customer ID and positive quantity and unit
// price, and rows beyond the 1st/99th percentile of quantity or unit price
// are dropped as outliers. Derived calendar columns are attached to every
// surviving row.
func Clean(raw []Transaction, logger *slog.Logger) (*Dataset, CleanStats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	stats := CleanStats{InputRows: len(raw)}
	if len(raw) == 0 {
		return nil, stats, fmt.Errorf("no transactions to clean")
	}

	filtered := make([]Transaction, 0, len(raw))
	for _, t := range raw {
		switch {
		case t.CustomerID == "":
			stats.MissingID++
		case t.Quantity <= 0 || t.UnitPrice <= 0:
			stats.NonPositive++
		default:
			filtered = append(filtered, t)
		}
	}
	if len(filtered) == 0 {
		return nil, stats, fmt.Errorf("all %d rows removed during filtering", len(raw))
	}

	quantities := make([]float64, len(filtered))
	prices := make([]float64, len(filtered))
	for i, t := range filtered {
		quantities[i] = t.Quantity
		prices[i] = t.UnitPrice
	}

	qLo, qHi := Percentile(quantities, 0.01), Percentile(quantities, 0.99)
	pLo, pHi := Percentile(prices, 0.01), Percentile(prices, 0.99)

	cleaned := make([]Transaction, 0, len(filtered))
	for _, t := range filtered {
		if t.Quantity < qLo || t.Quantity > qHi || t.UnitPrice < pLo || t.UnitPrice > pHi {
			stats.OutlierRows++
			continue
		}
		cleaned = append(cleaned, t)
	}
	stats.RemainingRows = len(cleaned)

	if len(cleaned) == 0 {
		return nil, stats, fmt.Errorf("all %d rows removed as outliers", len(filtered))
	}

	ds := New(cleaned)
	logger.Info("transaction set cleaned",
		"input_rows", stats.InputRows,
		"missing_customer_id", stats.MissingID,
		"non_positive", stats.NonPositive,
		"outliers", stats.OutlierRows,
		"remaining", stats.RemainingRows,
		"range_start", ds.Start().Format("2006-01-02"),
		"range_end", ds.End().Format("2006-01-02"),
	)

	return ds, stats, nil
}

// Percentile returns the q-th percentile (0..1) of values using linear
// interpolation between order statistics.
func Percentile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}

	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
