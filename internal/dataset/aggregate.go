package dataset

import (
	"sort"
	"time"
)

// monthKey truncates a timestamp to the first of its month in UTC.
func monthKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func dayKey(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type monthAccum struct {
	revenue   float64
	quantity  float64
	invoices  map[string]struct{}
	customers map[string]struct{}
}

// MonthlySeries aggregates the snapshot into a calendar-contiguous monthly
// revenue series. Months between the first and last invoice with no activity
// are zero-filled so Index always advances one calendar month at a time.
func (d *Dataset) MonthlySeries() []MonthlyPoint {
	if len(d.rows) == 0 {
		return nil
	}

	buckets := make(map[time.Time]*monthAccum)
	for _, t := range d.rows {
		key := monthKey(t.InvoiceDate)
		b, ok := buckets[key]
		if !ok {
			b = &monthAccum{
				invoices:  make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			buckets[key] = b
		}
		b.revenue += t.TotalPrice
		b.quantity += t.Quantity
		b.invoices[t.InvoiceNo] = struct{}{}
		b.customers[t.CustomerID] = struct{}{}
	}

	first := monthKey(d.start)
	last := monthKey(d.end)

	var series []MonthlyPoint
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		point := MonthlyPoint{Month: m, Index: len(series)}
		if b, ok := buckets[m]; ok {
			point.Revenue = b.revenue
			point.Quantity = b.quantity
			point.Orders = len(b.invoices)
			point.Customers = len(b.customers)
			if point.Orders > 0 {
				point.AvgOrderValue = point.Revenue / float64(point.Orders)
			}
		}
		series = append(series, point)
	}
	return series
}

// DailySeries aggregates the snapshot by calendar day. Only days with
// activity are emitted, sorted ascending.
func (d *Dataset) DailySeries() []DailyPoint {
	type dayAccum struct {
		revenue   float64
		quantity  float64
		invoices  map[string]struct{}
		customers map[string]struct{}
	}

	buckets := make(map[time.Time]*dayAccum)
	for _, t := range d.rows {
		key := dayKey(t.InvoiceDate)
		b, ok := buckets[key]
		if !ok {
			b = &dayAccum{
				invoices:  make(map[string]struct{}),
				customers: make(map[string]struct{}),
			}
			buckets[key] = b
		}
		b.revenue += t.TotalPrice
		b.quantity += t.Quantity
		b.invoices[t.InvoiceNo] = struct{}{}
		b.customers[t.CustomerID] = struct{}{}
	}

	days := make([]DailyPoint, 0, len(buckets))
	for key, b := range buckets {
		p := DailyPoint{
			Date:      key,
			Revenue:   b.revenue,
			Quantity:  b.quantity,
			Orders:    len(b.invoices),
			Customers: len(b.customers),
		}
		if p.Orders > 0 {
			p.AvgOrderValue = p.Revenue / float64(p.Orders)
		}
		days = append(days, p)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days
}

// CustomerBreakdown aggregates the snapshot per customer, sorted by total
// spend descending.
func (d *Dataset) CustomerBreakdown() []CustomerMetrics {
	type custAccum struct {
		spent    float64
		quantity float64
		invoices map[string]struct{}
		first    time.Time
		last     time.Time
	}

	byCustomer := make(map[string]*custAccum)
	order := make([]string, 0)
	for _, t := range d.rows {
		c, ok := byCustomer[t.CustomerID]
		if !ok {
			c = &custAccum{invoices: make(map[string]struct{}), first: t.InvoiceDate, last: t.InvoiceDate}
			byCustomer[t.CustomerID] = c
			order = append(order, t.CustomerID)
		}
		c.spent += t.TotalPrice
		c.quantity += t.Quantity
		c.invoices[t.InvoiceNo] = struct{}{}
		if t.InvoiceDate.Before(c.first) {
			c.first = t.InvoiceDate
		}
		if t.InvoiceDate.After(c.last) {
			c.last = t.InvoiceDate
		}
	}

	out := make([]CustomerMetrics, 0, len(order))
	for _, id := range order {
		c := byCustomer[id]
		m := CustomerMetrics{
			CustomerID:    id,
			OrderCount:    len(c.invoices),
			TotalSpent:    c.spent,
			TotalQuantity: c.quantity,
			FirstOrder:    c.first,
			LastOrder:     c.last,
		}
		if m.OrderCount > 0 {
			m.AvgOrderValue = m.TotalSpent / float64(m.OrderCount)
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalSpent > out[j].TotalSpent })
	return out
}

// ProductBreakdown aggregates the snapshot per product, sorted by total
// revenue descending. Description is taken from the first row seen for each
// stock code.
func (d *Dataset) ProductBreakdown() []ProductMetrics {
	type prodAccum struct {
		description string
		revenue     float64
		quantity    float64
		invoices    map[string]struct{}
		customers   map[string]struct{}
	}

	byProduct := make(map[string]*prodAccum)
	order := make([]string, 0)
	for _, t := range d.rows {
		p, ok := byProduct[t.StockCode]
		if !ok {
			p = &prodAccum{
				description: t.Description,
				invoices:    make(map[string]struct{}),
				customers:   make(map[string]struct{}),
			}
			byProduct[t.StockCode] = p
			order = append(order, t.StockCode)
		}
		p.revenue += t.TotalPrice
		p.quantity += t.Quantity
		p.invoices[t.InvoiceNo] = struct{}{}
		p.customers[t.CustomerID] = struct{}{}
	}

	out := make([]ProductMetrics, 0, len(order))
	for _, code := range order {
		p := byProduct[code]
		m := ProductMetrics{
			StockCode:     code,
			Description:   p.description,
			TotalQuantity: p.quantity,
			TotalRevenue:  p.revenue,
			OrderCount:    len(p.invoices),
			CustomerCount: len(p.customers),
		}
		if m.TotalQuantity > 0 {
			m.AvgPrice = m.TotalRevenue / m.TotalQuantity
		}
		if m.OrderCount > 0 {
			m.AvgQuantityPerOrder = m.TotalQuantity / float64(m.OrderCount)
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalRevenue > out[j].TotalRevenue })
	return out
}

// KPIs computes the headline metrics for the snapshot. Revenue growth
// compares the first and last calendar months of the series and is 0 when
// only a single month is present or the first month has zero revenue.
func (d *Dataset) KPIs() KPIReport {
	invoices := make(map[string]float64)
	invoiceQty := make(map[string]float64)
	customers := make(map[string]struct{})
	products := make(map[string]struct{})

	var totalRevenue float64
	for _, t := range d.rows {
		totalRevenue += t.TotalPrice
		invoices[t.InvoiceNo] += t.TotalPrice
		invoiceQty[t.InvoiceNo] += t.Quantity
		customers[t.CustomerID] = struct{}{}
		products[t.StockCode] = struct{}{}
	}

	report := KPIReport{
		TotalRevenue:   totalRevenue,
		TotalOrders:    len(invoices),
		TotalCustomers: len(customers),
		TotalProducts:  len(products),
		DateRangeStart: d.start,
		DateRangeEnd:   d.end,
	}

	if len(invoices) > 0 {
		var orderSum, qtySum float64
		for _, v := range invoices {
			orderSum += v
		}
		for _, q := range invoiceQty {
			qtySum += q
		}
		report.AvgOrderValue = orderSum / float64(len(invoices))
		report.AvgItemsPerOrder = qtySum / float64(len(invoices))
	}

	series := d.MonthlySeries()
	if len(series) > 1 && series[0].Revenue != 0 {
		first := series[0].Revenue
		last := series[len(series)-1].Revenue
		report.RevenueGrowthPct = (last - first) / first * 100
	}
	return report
}
