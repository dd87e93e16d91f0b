// Command sampledata writes a synthetic retail transaction workbook so the
// analyzer and web server can run without real data.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"retailpulse/internal/sampledata"
)

func main() {
	out := flag.String("out", "data/sample_online_retail.xlsx", "output workbook path")
	rows := flag.Int("rows", 50000, "number of transactions to generate")
	start := flag.String("start", "2010-12-01", "first possible transaction date (YYYY-MM-DD)")
	end := flag.String("end", "2011-12-31", "last possible transaction date (YYYY-MM-DD)")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	opts, err := parseOptions(*rows, *start, *end, *seed)
	if err != nil {
		logger.Error("invalid options", "error", err)
		os.Exit(1)
	}

	txns, err := sampledata.Generate(opts, logger)
	if err != nil {
		logger.Error("generation failed", "error", err)
		os.Exit(1)
	}
	if err := sampledata.WriteWorkbook(*out, txns, logger); err != nil {
		logger.Error("write failed", "error", err)
		os.Exit(1)
	}
}

func parseOptions(rows int, start, end string, seed int64) (sampledata.Options, error) {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return sampledata.Options{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return sampledata.Options{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return sampledata.Options{
		Transactions: rows,
		Start:        startDate,
		End:          endDate,
		Seed:         seed,
	}, nil
}
