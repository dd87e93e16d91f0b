package exporter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	"retailpulse/internal/forecast"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteRFM(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	report := &analytics.RFMReport{
		ReferenceDate: time.Date(2011, time.December, 10, 0, 0, 0, 0, time.UTC),
		Records: []analytics.RFMRecord{
			{
				CustomerID: "C1", RecencyDays: 1, Frequency: 5, Monetary: 500,
				RScore: 5, FScore: 5, MScore: 5, Composite: "555",
				Segment: "Champions", AvgOrderValue: 100, LifetimeValue: 2500,
			},
		},
	}
	require.NoError(t, w.WriteRFM(report))

	rows := readCSV(t, filepath.Join(dir, "rfm_segments.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "CustomerID", rows[0][0])
	assert.Equal(t, []string{
		"C1", "1", "5", "500.00", "5", "5", "5", "555", "Champions", "100.00", "2500.00",
	}, rows[1])
}

func TestWriteABC(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	report := &analytics.ABCReport{
		Products: []analytics.ProductABC{
			{
				StockCode: "P1", Description: "widget", TotalQuantity: 10,
				TotalRevenue: 100, OrderCount: 3, CustomerCount: 2, AvgPrice: 10,
				CumulativeRevenue: 100, RevenuePercentage: 100, Category: "A",
			},
		},
	}
	require.NoError(t, w.WriteABC(report))

	rows := readCSV(t, filepath.Join(dir, "product_abc.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "P1", rows[1][0])
	assert.Equal(t, "A", rows[1][9])
}

func TestWriteMonthlySeries(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	series := []dataset.MonthlyPoint{
		{Month: time.Date(2011, time.January, 1, 0, 0, 0, 0, time.UTC), Revenue: 1234.5, Orders: 10, Customers: 7, Quantity: 42, AvgOrderValue: 123.45},
	}
	require.NoError(t, w.WriteMonthlySeries(series))

	rows := readCSV(t, filepath.Join(dir, "monthly_series.csv"))
	require.Len(t, rows, 2)
	assert.Equal(t, "2011-01", rows[1][0])
	assert.Equal(t, "1234.50", rows[1][1])
}

func TestWriteForecast(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	report := &forecast.Report{
		ForecastMonths: []time.Time{
			time.Date(2012, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2012, time.February, 1, 0, 0, 0, 0, time.UTC),
		},
		Ensemble: &forecast.Result{
			Forecast:        []float64{100, 110},
			ConfidenceLower: []float64{90, 99},
			ConfidenceUpper: []float64{110, 121},
		},
	}
	require.NoError(t, w.WriteForecast(report))

	rows := readCSV(t, filepath.Join(dir, "revenue_forecast.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2012-01", "100.00", "90.00", "110.00"}, rows[1])
	assert.Equal(t, []string{"2012-02", "110.00", "99.00", "121.00"}, rows[2])
}

func TestWriteGeographic(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	countries := []analytics.CountryStats{
		{Country: "United Kingdom", TotalRevenue: 900, Orders: 9, Customers: 4, Quantity: 20, AvgOrderValue: 100, RevenuePercentage: 90},
		{Country: "France", TotalRevenue: 100, Orders: 1, Customers: 1, Quantity: 2, AvgOrderValue: 100, RevenuePercentage: 10},
	}
	require.NoError(t, w.WriteGeographic(countries))

	rows := readCSV(t, filepath.Join(dir, "geographic_analysis.csv"))
	require.Len(t, rows, 3)
	assert.Equal(t, "United Kingdom", rows[1][0])
	assert.Equal(t, "90.00", rows[1][6])
}

func TestWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w := NewCSVWriter(dir, nil)

	require.NoError(t, w.WriteGeographic(nil))
	_, err := os.Stat(filepath.Join(dir, "geographic_analysis.csv"))
	assert.NoError(t, err)
}
