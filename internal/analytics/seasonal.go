package analytics

import (
	"math"
	"sort"
	"strconv"

	"retailpulse/internal/dataset"
)

// SeasonalPatterns aggregates revenue, orders and customers by calendar
// month, weekday and hour of day, and derives peak periods plus a
// seasonality strength score.
//
// The score is the coefficient of variation of monthly revenue (sample
// standard deviation over mean) scaled to percent and capped at 100. Fewer
// than two observed months, or a zero mean, score 0.
func SeasonalPatterns(ds *dataset.Dataset) SeasonalReport {
	type bucket struct {
		revenue   float64
		invoices  map[string]struct{}
		customers map[string]struct{}
	}
	newBucket := func() *bucket {
		return &bucket{invoices: make(map[string]struct{}), customers: make(map[string]struct{})}
	}
	add := func(b *bucket, t dataset.Transaction) {
		b.revenue += t.TotalPrice
		b.invoices[t.InvoiceNo] = struct{}{}
		b.customers[t.CustomerID] = struct{}{}
	}

	type monthKey struct{ year, month int }
	months := make(map[monthKey]*bucket)
	monthNames := make(map[monthKey]string)
	weekdays := make(map[int]*bucket)
	weekdayNames := make(map[int]string)
	hours := make(map[int]*bucket)

	for _, t := range ds.Rows() {
		mk := monthKey{t.Year, t.Month}
		if months[mk] == nil {
			months[mk] = newBucket()
			monthNames[mk] = t.MonthName
		}
		add(months[mk], t)

		if weekdays[t.Weekday] == nil {
			weekdays[t.Weekday] = newBucket()
			weekdayNames[t.Weekday] = t.WeekdayName
		}
		add(weekdays[t.Weekday], t)

		if hours[t.Hour] == nil {
			hours[t.Hour] = newBucket()
		}
		add(hours[t.Hour], t)
	}

	report := SeasonalReport{}

	monthKeys := make([]monthKey, 0, len(months))
	for k := range months {
		monthKeys = append(monthKeys, k)
	}
	sort.Slice(monthKeys, func(i, j int) bool {
		if monthKeys[i].year != monthKeys[j].year {
			return monthKeys[i].year < monthKeys[j].year
		}
		return monthKeys[i].month < monthKeys[j].month
	})
	for _, k := range monthKeys {
		b := months[k]
		report.MonthlyPatterns = append(report.MonthlyPatterns, MonthPattern{
			Year:      k.year,
			Month:     k.month,
			MonthName: monthNames[k],
			Revenue:   b.revenue,
			Orders:    len(b.invoices),
			Customers: len(b.customers),
		})
	}

	weekdayKeys := make([]int, 0, len(weekdays))
	for k := range weekdays {
		weekdayKeys = append(weekdayKeys, k)
	}
	sort.Ints(weekdayKeys)
	for _, k := range weekdayKeys {
		b := weekdays[k]
		report.WeekdayPatterns = append(report.WeekdayPatterns, PeriodStat{
			Label:     weekdayNames[k],
			Revenue:   b.revenue,
			Orders:    len(b.invoices),
			Customers: len(b.customers),
		})
	}

	hourKeys := make([]int, 0, len(hours))
	for k := range hours {
		hourKeys = append(hourKeys, k)
	}
	sort.Ints(hourKeys)
	for _, k := range hourKeys {
		b := hours[k]
		report.HourlyPatterns = append(report.HourlyPatterns, PeriodStat{
			Label:     strconv.Itoa(k),
			Revenue:   b.revenue,
			Orders:    len(b.invoices),
			Customers: len(b.customers),
		})
	}

	// Peaks are the argmax of revenue; ties resolve to the earliest bucket.
	if i := argmaxMonth(report.MonthlyPatterns); i >= 0 {
		report.PeakMonth = report.MonthlyPatterns[i].MonthName
	}
	if i := argmaxPeriod(report.WeekdayPatterns); i >= 0 {
		report.PeakWeekday = report.WeekdayPatterns[i].Label
	}
	if i := argmaxPeriod(report.HourlyPatterns); i >= 0 {
		report.PeakHour = hourKeys[i]
	}

	report.SeasonalityScore = seasonalityScore(report.MonthlyPatterns)
	return report
}

func argmaxMonth(patterns []MonthPattern) int {
	best := -1
	for i, p := range patterns {
		if best < 0 || p.Revenue > patterns[best].Revenue {
			best = i
		}
	}
	return best
}

func argmaxPeriod(patterns []PeriodStat) int {
	best := -1
	for i, p := range patterns {
		if best < 0 || p.Revenue > patterns[best].Revenue {
			best = i
		}
	}
	return best
}

// seasonalityScore computes std/mean of monthly revenue on a 0..100 scale.
func seasonalityScore(patterns []MonthPattern) float64 {
	if len(patterns) < 2 {
		return 0
	}

	var sum float64
	for _, p := range patterns {
		sum += p.Revenue
	}
	mean := sum / float64(len(patterns))
	if mean == 0 {
		return 0
	}

	var sq float64
	for _, p := range patterns {
		sq += (p.Revenue - mean) * (p.Revenue - mean)
	}
	std := math.Sqrt(sq / float64(len(patterns)-1))

	return math.Min(std/mean*100, 100)
}
