package analytics

import (
	"sort"

	"retailpulse/internal/dataset"
)

// GeographicBreakdown aggregates activity per country, sorted by revenue
// descending with the revenue share of each country over the grand total.
func GeographicBreakdown(ds *dataset.Dataset) []CountryStats {
	type countryAccum struct {
		revenue   float64
		quantity  float64
		invoices  map[string]struct{}
		customers map[string]struct{}
	}

	byCountry := make(map[string]*countryAccum)
	order := make([]string, 0)
	var grandTotal float64

	for _, t := range ds.Rows() {
		c, ok := byCountry[t.Country]
		if !ok {
			c = &countryAccum{invoices: make(map[string]struct{}), customers: make(map[string]struct{})}
			byCountry[t.Country] = c
			order = append(order, t.Country)
		}
		c.revenue += t.TotalPrice
		c.quantity += t.Quantity
		c.invoices[t.InvoiceNo] = struct{}{}
		c.customers[t.CustomerID] = struct{}{}
		grandTotal += t.TotalPrice
	}

	out := make([]CountryStats, 0, len(order))
	for _, name := range order {
		c := byCountry[name]
		stats := CountryStats{
			Country:      name,
			TotalRevenue: c.revenue,
			Orders:       len(c.invoices),
			Customers:    len(c.customers),
			Quantity:     c.quantity,
		}
		if stats.Orders > 0 {
			stats.AvgOrderValue = stats.TotalRevenue / float64(stats.Orders)
		}
		if grandTotal > 0 {
			stats.RevenuePercentage = stats.TotalRevenue / grandTotal * 100
		}
		out = append(out, stats)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out
}
