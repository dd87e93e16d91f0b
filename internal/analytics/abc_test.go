package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/dataset"
)

func TestComputeABC(t *testing.T) {
	// Revenues 80, 15, 5: cumulative shares land exactly on the 80 and 95
	// boundaries, which are inclusive.
	ds := dataset.New([]dataset.Transaction{
		txn("I1", "P-A", "C1", 1, 80, day(2011, time.March, 1)),
		txn("I2", "P-B", "C1", 1, 15, day(2011, time.March, 2)),
		txn("I3", "P-C", "C2", 1, 5, day(2011, time.March, 3)),
	})

	report, err := ComputeABC(ds, nil)
	require.NoError(t, err)
	require.Len(t, report.Products, 3)

	assert.Equal(t, "P-A", report.Products[0].StockCode)
	assert.Equal(t, "A", report.Products[0].Category)
	assert.InDelta(t, 80.0, report.Products[0].RevenuePercentage, 1e-9)

	assert.Equal(t, "P-B", report.Products[1].StockCode)
	assert.Equal(t, "B", report.Products[1].Category)
	assert.InDelta(t, 95.0, report.Products[1].RevenuePercentage, 1e-9)

	assert.Equal(t, "P-C", report.Products[2].StockCode)
	assert.Equal(t, "C", report.Products[2].Category)
	assert.InDelta(t, 100.0, report.Products[2].RevenuePercentage, 1e-9)
	assert.InDelta(t, 100.0, report.Products[2].CumulativeRevenue, 1e-9)
}

func TestComputeABCCategorySummaries(t *testing.T) {
	// A single product takes the whole revenue; B and C must still appear.
	ds := dataset.New([]dataset.Transaction{
		txn("I1", "P1", "C1", 1, 100, day(2011, time.March, 1)),
	})

	report, err := ComputeABC(ds, nil)
	require.NoError(t, err)
	require.Len(t, report.Categories, 3)

	assert.Equal(t, "A", report.Categories[0].Category)
	assert.Equal(t, 1, report.Categories[0].ProductCount)
	assert.InDelta(t, 100.0, report.Categories[0].RevenuePercentage, 1e-9)

	assert.Equal(t, "B", report.Categories[1].Category)
	assert.Zero(t, report.Categories[1].ProductCount)
	assert.Equal(t, "C", report.Categories[2].Category)
	assert.Zero(t, report.Categories[2].ProductCount)
}

func TestComputeABCRanksByRevenue(t *testing.T) {
	ds := dataset.New([]dataset.Transaction{
		txn("I1", "P-low", "C1", 1, 10, day(2011, time.March, 1)),
		txn("I2", "P-high", "C1", 1, 1000, day(2011, time.March, 2)),
		txn("I3", "P-mid", "C1", 1, 100, day(2011, time.March, 3)),
	})

	report, err := ComputeABC(ds, nil)
	require.NoError(t, err)
	assert.Equal(t, "P-high", report.Products[0].StockCode)
	assert.Equal(t, "P-mid", report.Products[1].StockCode)
	assert.Equal(t, "P-low", report.Products[2].StockCode)
}

func TestComputeABCZeroRevenue(t *testing.T) {
	ds := dataset.New([]dataset.Transaction{
		txn("I1", "P1", "C1", 0, 10, day(2011, time.March, 1)),
	})

	_, err := ComputeABC(ds, nil)
	var degenerate *DegenerateInputError
	require.ErrorAs(t, err, &degenerate)
	assert.Equal(t, "total revenue", degenerate.Quantity)
}

func TestComputeABCEmptyDataset(t *testing.T) {
	_, err := ComputeABC(dataset.New(nil), nil)
	var insufficient *InsufficientDataError
	require.ErrorAs(t, err, &insufficient)
}
