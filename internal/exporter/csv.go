// Package exporter writes the compiled report tables to CSV files.
package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	"retailpulse/internal/forecast"
)

// CSVWriter writes report tables under a base output directory.
type CSVWriter struct {
	outputDir string
	logger    *slog.Logger
}

// NewCSVWriter creates a writer rooted at outputDir.
func NewCSVWriter(outputDir string, logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{outputDir: outputDir, logger: logger}
}

// writeTable writes one CSV file with a header row.
func (w *CSVWriter) writeTable(name string, headers []string, records [][]string) error {
	fullPath := filepath.Join(w.outputDir, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", fullPath, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(headers); err != nil {
		return fmt.Errorf("write headers: %w", err)
	}
	for i, record := range records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write record %d: %w", i, err)
		}
	}

	w.logger.Info("report table written", "path", fullPath, "rows", len(records))
	return writer.Error()
}

// WriteRFM writes the scored customer table.
func (w *CSVWriter) WriteRFM(report *analytics.RFMReport) error {
	headers := []string{
		"CustomerID", "RecencyDays", "Frequency", "Monetary",
		"RScore", "FScore", "MScore", "Composite", "Segment",
		"AvgOrderValue", "LifetimeValue",
	}
	records := make([][]string, 0, len(report.Records))
	for _, rec := range report.Records {
		records = append(records, []string{
			rec.CustomerID,
			strconv.Itoa(rec.RecencyDays),
			strconv.Itoa(rec.Frequency),
			formatFloat(rec.Monetary),
			strconv.Itoa(rec.RScore),
			strconv.Itoa(rec.FScore),
			strconv.Itoa(rec.MScore),
			rec.Composite,
			rec.Segment,
			formatFloat(rec.AvgOrderValue),
			formatFloat(rec.LifetimeValue),
		})
	}
	return w.writeTable("rfm_segments.csv", headers, records)
}

// WriteABC writes the product classification table.
func (w *CSVWriter) WriteABC(report *analytics.ABCReport) error {
	headers := []string{
		"StockCode", "Description", "TotalQuantity", "TotalRevenue",
		"OrderCount", "CustomerCount", "AvgPrice",
		"CumulativeRevenue", "RevenuePercentage", "Category",
	}
	records := make([][]string, 0, len(report.Products))
	for _, p := range report.Products {
		records = append(records, []string{
			p.StockCode,
			p.Description,
			formatFloat(p.TotalQuantity),
			formatFloat(p.TotalRevenue),
			strconv.Itoa(p.OrderCount),
			strconv.Itoa(p.CustomerCount),
			formatFloat(p.AvgPrice),
			formatFloat(p.CumulativeRevenue),
			formatFloat(p.RevenuePercentage),
			p.Category,
		})
	}
	return w.writeTable("product_abc.csv", headers, records)
}

// WriteMonthlySeries writes the monthly revenue series.
func (w *CSVWriter) WriteMonthlySeries(series []dataset.MonthlyPoint) error {
	headers := []string{"Month", "Revenue", "Orders", "Customers", "Quantity", "AvgOrderValue"}
	records := make([][]string, 0, len(series))
	for _, p := range series {
		records = append(records, []string{
			p.Month.Format("2006-01"),
			formatFloat(p.Revenue),
			strconv.Itoa(p.Orders),
			strconv.Itoa(p.Customers),
			formatFloat(p.Quantity),
			formatFloat(p.AvgOrderValue),
		})
	}
	return w.writeTable("monthly_series.csv", headers, records)
}

// WriteForecast writes the ensemble forecast with its confidence band.
func (w *CSVWriter) WriteForecast(report *forecast.Report) error {
	headers := []string{"Month", "Forecast", "ConfidenceLower", "ConfidenceUpper"}
	records := make([][]string, 0, len(report.Ensemble.Forecast))
	for i, v := range report.Ensemble.Forecast {
		records = append(records, []string{
			report.ForecastMonths[i].Format("2006-01"),
			formatFloat(v),
			formatFloat(report.Ensemble.ConfidenceLower[i]),
			formatFloat(report.Ensemble.ConfidenceUpper[i]),
		})
	}
	return w.writeTable("revenue_forecast.csv", headers, records)
}

// WriteGeographic writes the per-country rollup.
func (w *CSVWriter) WriteGeographic(countries []analytics.CountryStats) error {
	headers := []string{"Country", "TotalRevenue", "Orders", "Customers", "Quantity", "AvgOrderValue", "RevenuePercentage"}
	records := make([][]string, 0, len(countries))
	for _, c := range countries {
		records = append(records, []string{
			c.Country,
			formatFloat(c.TotalRevenue),
			strconv.Itoa(c.Orders),
			strconv.Itoa(c.Customers),
			formatFloat(c.Quantity),
			formatFloat(c.AvgOrderValue),
			formatFloat(c.RevenuePercentage),
		})
	}
	return w.writeTable("geographic_analysis.csv", headers, records)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
