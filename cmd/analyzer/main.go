// Command analyzer runs the full analysis pipeline against a transaction
// workbook and writes CSV reports: customer segments, product ABC tiers,
// the monthly revenue series, the revenue forecast and the geographic
// breakdown.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"

	"retailpulse/internal/analytics"
	"retailpulse/internal/dataset"
	"retailpulse/internal/exporter"
	"retailpulse/internal/forecast"
	"retailpulse/internal/sampledata"
)

func main() {
	input := flag.String("input", "data/online_retail.xlsx", "path to the transaction workbook")
	out := flag.String("out", "data/reports", "output directory for CSV reports")
	periods := flag.Int("periods", 6, "number of months to forecast")
	reference := flag.String("reference", "", "recency reference date (YYYY-MM-DD, defaults to day after last transaction)")
	sample := flag.Bool("sample", false, "generate a synthetic workbook at the input path before analysing")
	sampleRows := flag.Int("sample-rows", 50000, "synthetic transactions to generate with -sample")
	seed := flag.Int64("seed", 42, "random seed for -sample")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*input, *out, *periods, *reference, *sample, *sampleRows, *seed, logger); err != nil {
		logger.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(input, out string, periods int, reference string, sample bool, sampleRows int, seed int64, logger *slog.Logger) error {
	var refDate time.Time
	if reference != "" {
		parsed, err := time.Parse("2006-01-02", reference)
		if err != nil {
			return fmt.Errorf("invalid reference date %q: %w", reference, err)
		}
		refDate = parsed
	}

	if sample {
		logger.Info("generating synthetic workbook", "path", input, "rows", sampleRows)
		txns, err := sampledata.Generate(sampledata.Options{Transactions: sampleRows, Seed: seed}, logger)
		if err != nil {
			return fmt.Errorf("generate sample data: %w", err)
		}
		if err := sampledata.WriteWorkbook(input, txns, logger); err != nil {
			return fmt.Errorf("write sample workbook: %w", err)
		}
	}

	raw, err := dataset.LoadWorkbook(input, logger)
	if err != nil {
		return err
	}
	ds, stats, err := dataset.Clean(raw, logger)
	if err != nil {
		return err
	}
	logger.Info("dataset ready", "rows", ds.Len(), "dropped", stats.Dropped())

	writer := exporter.NewCSVWriter(out, logger)
	bar := progressbar.NewOptions(5,
		progressbar.OptionSetDescription("analysing"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	rfm, err := analytics.ComputeRFM(ds, refDate, logger)
	if err != nil {
		return fmt.Errorf("customer segmentation: %w", err)
	}
	if err := writer.WriteRFM(rfm); err != nil {
		return err
	}
	bar.Add(1)

	abc, err := analytics.ComputeABC(ds, logger)
	if err != nil {
		return fmt.Errorf("product classification: %w", err)
	}
	if err := writer.WriteABC(abc); err != nil {
		return err
	}
	bar.Add(1)

	if err := writer.WriteMonthlySeries(ds.MonthlySeries()); err != nil {
		return err
	}
	bar.Add(1)

	if err := writer.WriteGeographic(analytics.GeographicBreakdown(ds)); err != nil {
		return err
	}
	bar.Add(1)

	fc, err := forecast.BuildReport(ds, periods, logger)
	if err != nil {
		return fmt.Errorf("revenue forecast: %w", err)
	}
	if err := writer.WriteForecast(fc); err != nil {
		return err
	}
	bar.Add(1)
	bar.Finish()

	business := analytics.CompileBusinessReport(ds, rfm, logger)
	logger.Info("analysis complete",
		"total_revenue", business.Summary.TotalRevenue,
		"customers", business.Summary.TotalCustomers,
		"revenue_growth_pct", business.Summary.RevenueGrowth,
		"top_segment", business.Customers.TopSegment,
		"forecast_total", fc.Summary.TotalForecast,
		"forecast_growth_pct", fc.Summary.GrowthRatePct,
		"output_dir", out,
	)
	return nil
}
