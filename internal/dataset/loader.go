package dataset

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Column headers expected in the raw retail workbook (UCI Online Retail
// layout). Matching is case-insensitive and whitespace-tolerant.
var requiredColumns = []string{
	"InvoiceNo", "StockCode", "Description", "Quantity",
	"InvoiceDate", "UnitPrice", "CustomerID", "Country",
}

// dateLayouts tried in order when a cell holds a textual timestamp.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"1/2/2006 15:04",
	"1/2/06 15:04",
	"2006-01-02",
}

// LoadWorkbook reads raw transactions from the first sheet of an Excel
// workbook. Rows that cannot be parsed are skipped and counted; cleaning
// decides what survives into the analysis set.
func LoadWorkbook(path string, logger *slog.Logger) ([]Transaction, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet %q has no data rows", sheets[0])
	}

	columns, err := mapColumns(rows[0])
	if err != nil {
		return nil, fmt.Errorf("map header row: %w", err)
	}

	txns := make([]Transaction, 0, len(rows)-1)
	skipped := 0
	for i, row := range rows[1:] {
		t, ok := parseRow(row, columns)
		if !ok {
			skipped++
			if skipped <= 5 {
				logger.Debug("skipping unparseable row", "row", i+2)
			}
			continue
		}
		txns = append(txns, t)
	}

	logger.Info("workbook loaded",
		"path", path,
		"sheet", sheets[0],
		"rows", len(txns),
		"skipped", skipped,
	)

	if len(txns) == 0 {
		return nil, fmt.Errorf("no parseable rows in %s", path)
	}
	return txns, nil
}

// mapColumns resolves the position of each required column in the header row.
func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(requiredColumns))
	for i, cell := range header {
		name := strings.TrimSpace(cell)
		for _, want := range requiredColumns {
			if strings.EqualFold(name, want) {
				columns[want] = i
			}
		}
	}
	for _, want := range requiredColumns {
		if _, ok := columns[want]; !ok {
			return nil, fmt.Errorf("missing column %q in header %v", want, header)
		}
	}
	return columns, nil
}

func parseRow(row []string, columns map[string]int) (Transaction, bool) {
	cell := func(name string) string {
		idx := columns[name]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	qty, err := strconv.ParseFloat(cell("Quantity"), 64)
	if err != nil {
		return Transaction{}, false
	}
	price, err := strconv.ParseFloat(cell("UnitPrice"), 64)
	if err != nil {
		return Transaction{}, false
	}
	date, ok := parseDate(cell("InvoiceDate"))
	if !ok {
		return Transaction{}, false
	}

	return Transaction{
		InvoiceNo:   cell("InvoiceNo"),
		StockCode:   cell("StockCode"),
		Description: cell("Description"),
		Quantity:    qty,
		InvoiceDate: date,
		UnitPrice:   price,
		CustomerID:  cell("CustomerID"),
		Country:     cell("Country"),
	}, true
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	// Excel serial date: days since 1899-12-30.
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		epoch := time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)
		days := int(serial)
		frac := serial - float64(days)
		return epoch.AddDate(0, 0, days).Add(time.Duration(frac * 24 * float64(time.Hour))), true
	}
	return time.Time{}, false
}
