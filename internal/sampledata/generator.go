// Package sampledata produces a seeded synthetic retail transaction set
// for demos and tests. The generated workbook uses the same column layout
// the loader expects, so the full pipeline can run without real data.
package sampledata

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"retailpulse/internal/dataset"
)

type product struct {
	Code        string
	Description string
	Price       float64
}

var catalog = []product{
	{"P001", "Wireless Bluetooth Headphones", 89.99},
	{"P002", "Smartphone Case - Premium", 24.99},
	{"P003", "USB-C Charging Cable", 12.99},
	{"P004", "Portable Power Bank 10000mAh", 49.99},
	{"P005", "Wireless Mouse - Ergonomic", 34.99},
	{"P006", "Laptop Stand - Adjustable", 29.99},
	{"P007", "Bluetooth Speaker - Waterproof", 79.99},
	{"P008", "Phone Screen Protector", 9.99},
	{"P009", "Wireless Charging Pad", 39.99},
	{"P010", "Gaming Keyboard - RGB", 129.99},
	{"P011", "Webcam HD 1080p", 59.99},
	{"P012", "Microphone - USB Condenser", 89.99},
	{"P013", "Tablet Stand - Foldable", 19.99},
	{"P014", "Cable Organizer Set", 14.99},
	{"P015", "Desk Lamp - LED Touch", 44.99},
}

var countries = []string{
	"United Kingdom", "Germany", "France", "Netherlands", "Spain",
	"Italy", "Belgium", "Switzerland", "Austria", "Portugal",
}

// Options controls the shape of the generated set. Zero values fall back
// to the defaults used by the sampledata command.
type Options struct {
	Transactions int
	Start        time.Time
	End          time.Time
	Seed         int64
}

func (o Options) withDefaults() Options {
	if o.Transactions <= 0 {
		o.Transactions = 50000
	}
	if o.Start.IsZero() {
		o.Start = time.Date(2010, 12, 1, 0, 0, 0, 0, time.UTC)
	}
	if o.End.IsZero() {
		o.End = time.Date(2011, 12, 31, 0, 0, 0, 0, time.UTC)
	}
	if o.Seed == 0 {
		o.Seed = 42
	}
	return o
}

// Generate builds a deterministic synthetic transaction set with seasonal
// demand (holiday peak in November and December, a slump in January and
// February) and a mix of repeat and one-off customers. Rows come back
// sorted by invoice date.
func Generate(opts Options, logger *slog.Logger) ([]dataset.Transaction, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts = opts.withDefaults()
	if !opts.End.After(opts.Start) {
		return nil, fmt.Errorf("sample data range %s..%s is empty",
			opts.Start.Format("2006-01-02"), opts.End.Format("2006-01-02"))
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	rangeDays := int(opts.End.Sub(opts.Start).Hours() / 24)

	txns := make([]dataset.Transaction, 0, opts.Transactions)
	for i := 0; i < opts.Transactions; i++ {
		date := opts.Start.AddDate(0, 0, rng.Intn(rangeDays))
		boost := seasonalBoost(rng, date.Month())

		p := catalog[rng.Intn(len(catalog))]

		var qty int
		if rng.Float64() < 0.1 {
			qty = 10 + rng.Intn(41)
		} else {
			qty = 1 + rng.Intn(5)
		}
		qty = int(float64(qty) * boost)
		if qty < 1 {
			qty = 1
		}

		var customerID int
		if rng.Float64() < 0.7 {
			customerID = 1000 + rng.Intn(4001)
		} else {
			customerID = 5001 + rng.Intn(3000)
		}

		var invoiceNo string
		if rng.Float64() < 0.3 {
			invoiceNo = fmt.Sprintf("INV-%d-%03d", customerID, 1+rng.Intn(10))
		} else {
			invoiceNo = fmt.Sprintf("INV-%d", 10000+rng.Intn(90000))
		}

		txns = append(txns, dataset.Transaction{
			InvoiceNo:   invoiceNo,
			StockCode:   p.Code,
			Description: p.Description,
			Quantity:    float64(qty),
			InvoiceDate: date,
			UnitPrice:   p.Price,
			CustomerID:  fmt.Sprintf("%d", customerID),
			Country:     countries[rng.Intn(len(countries))],
		})
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].InvoiceDate.Before(txns[j].InvoiceDate)
	})

	totalRevenue := 0.0
	customers := make(map[string]struct{})
	for _, t := range txns {
		totalRevenue += t.Quantity * t.UnitPrice
		customers[t.CustomerID] = struct{}{}
	}
	logger.Info("sample data generated",
		"transactions", len(txns),
		"customers", len(customers),
		"total_revenue", totalRevenue,
		"start", txns[0].InvoiceDate.Format("2006-01-02"),
		"end", txns[len(txns)-1].InvoiceDate.Format("2006-01-02"),
	)
	return txns, nil
}

// seasonalBoost returns the demand multiplier for a month. Weights follow
// observed retail behaviour: most orders are unaffected, with occasional
// larger holiday baskets.
func seasonalBoost(rng *rand.Rand, month time.Month) float64 {
	r := rng.Float64()
	switch {
	case month == time.November || month == time.December:
		switch {
		case r < 0.9:
			return 1
		case r < 0.98:
			return 1.5
		default:
			return 2
		}
	case month == time.January || month == time.February:
		switch {
		case r < 0.3:
			return 0.5
		case r < 0.8:
			return 0.7
		default:
			return 1
		}
	default:
		switch {
		case r < 0.3:
			return 0.8
		case r < 0.8:
			return 1
		default:
			return 1.2
		}
	}
}

// WriteWorkbook saves transactions to an Excel workbook in the column
// layout the loader reads back.
func WriteWorkbook(path string, txns []dataset.Transaction, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if len(txns) == 0 {
		return fmt.Errorf("no transactions to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	header := []interface{}{
		"InvoiceNo", "StockCode", "Description", "Quantity",
		"InvoiceDate", "UnitPrice", "CustomerID", "Country",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, t := range txns {
		row := []interface{}{
			t.InvoiceNo,
			t.StockCode,
			t.Description,
			t.Quantity,
			t.InvoiceDate.Format("2006-01-02 15:04:05"),
			t.UnitPrice,
			t.CustomerID,
			t.Country,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name for row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	logger.Info("sample workbook written", "path", path, "rows", len(txns))
	return nil
}
