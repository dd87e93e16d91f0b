package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/dataset"
)

func TestSeasonalPatterns(t *testing.T) {
	ds := dataset.New([]dataset.Transaction{
		// January: two invoices, two customers, 300 revenue.
		txn("I1", "P1", "C1", 1, 100, time.Date(2011, time.January, 3, 9, 0, 0, 0, time.UTC)),  // Monday
		txn("I2", "P1", "C2", 1, 200, time.Date(2011, time.January, 4, 14, 0, 0, 0, time.UTC)), // Tuesday
		// February: one invoice, 700 revenue.
		txn("I3", "P1", "C1", 1, 700, time.Date(2011, time.February, 7, 9, 0, 0, 0, time.UTC)), // Monday
	})

	report := SeasonalPatterns(ds)

	require.Len(t, report.MonthlyPatterns, 2)
	jan := report.MonthlyPatterns[0]
	assert.Equal(t, 2011, jan.Year)
	assert.Equal(t, 1, jan.Month)
	assert.Equal(t, "January", jan.MonthName)
	assert.Equal(t, 300.0, jan.Revenue)
	assert.Equal(t, 2, jan.Orders)
	assert.Equal(t, 2, jan.Customers)

	assert.Equal(t, "February", report.PeakMonth)

	require.Len(t, report.WeekdayPatterns, 2)
	assert.Equal(t, "Monday", report.WeekdayPatterns[0].Label)
	assert.Equal(t, 800.0, report.WeekdayPatterns[0].Revenue)
	assert.Equal(t, "Monday", report.PeakWeekday)

	require.Len(t, report.HourlyPatterns, 2)
	assert.Equal(t, "9", report.HourlyPatterns[0].Label)
	assert.Equal(t, 9, report.PeakHour)

	// Monthly revenues 300 and 700: mean 500, sample std ~282.84.
	assert.InDelta(t, 56.57, report.SeasonalityScore, 0.01)
}

func TestSeasonalityScore(t *testing.T) {
	tests := []struct {
		name     string
		revenues []float64
		want     float64
	}{
		{"single month", []float64{500}, 0},
		{"no variation", []float64{100, 100, 100}, 0},
		{"zero mean", []float64{0, 0}, 0},
		{"capped at 100", []float64{1, 10000}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patterns := make([]MonthPattern, len(tt.revenues))
			for i, r := range tt.revenues {
				patterns[i] = MonthPattern{Revenue: r}
			}
			assert.InDelta(t, tt.want, seasonalityScore(patterns), 1e-9)
		})
	}
}

func TestGeographicBreakdown(t *testing.T) {
	rows := []dataset.Transaction{
		txn("I1", "P1", "C1", 1, 300, day(2011, time.March, 1)),
		txn("I2", "P1", "C2", 1, 100, day(2011, time.March, 2)),
		txn("I3", "P1", "C3", 1, 600, day(2011, time.March, 3)),
	}
	rows[0].Country = "United Kingdom"
	rows[1].Country = "France"
	rows[2].Country = "Germany"

	stats := GeographicBreakdown(dataset.New(rows))
	require.Len(t, stats, 3)

	assert.Equal(t, "Germany", stats[0].Country)
	assert.Equal(t, 600.0, stats[0].TotalRevenue)
	assert.InDelta(t, 60.0, stats[0].RevenuePercentage, 1e-9)

	assert.Equal(t, "United Kingdom", stats[1].Country)
	assert.InDelta(t, 30.0, stats[1].RevenuePercentage, 1e-9)

	assert.Equal(t, "France", stats[2].Country)
	assert.InDelta(t, 10.0, stats[2].RevenuePercentage, 1e-9)
}

func TestCompileBusinessReport(t *testing.T) {
	reference := day(2011, time.December, 10)
	ds := fiveCustomerSet(reference)
	rfm, err := ComputeRFM(ds, reference, nil)
	require.NoError(t, err)

	report := CompileBusinessReport(ds, rfm, nil)

	assert.Equal(t, 1500.0, report.Summary.TotalRevenue)
	assert.Equal(t, 5, report.Summary.TotalCustomers)
	assert.Equal(t, 5, report.Customers.TotalCustomers)
	assert.NotEmpty(t, report.Geographic)
	assert.NotEmpty(t, report.Recommendations)

	// Champions exist, so a retention item opens the list, and the two
	// generic items always close it.
	assert.Equal(t, "Customer Retention", report.Recommendations[0].Category)
	last := report.Recommendations[len(report.Recommendations)-1]
	assert.Equal(t, "Product Strategy", last.Category)
}
