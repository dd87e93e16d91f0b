package analytics

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"retailpulse/internal/dataset"
)

// minCustomersForRFM is the floor for quintile scoring: cutting five buckets
// needs at least five distinct customers.
const minCustomersForRFM = 5

// ComputeRFM scores every customer in the snapshot on recency, frequency and
// monetary value and assigns a segment label. reference is the anchor for
// recency; pass the zero time to default to the day after the latest invoice.
//
// The computation is deterministic for a fixed snapshot and reference date,
// and emits exactly one record per distinct customer.
func ComputeRFM(ds *dataset.Dataset, reference time.Time, logger *slog.Logger) (*RFMReport, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if reference.IsZero() {
		reference = ds.End().AddDate(0, 0, 1)
	}

	type custAccum struct {
		latest   time.Time
		invoices map[string]struct{}
		monetary float64
	}

	byCustomer := make(map[string]*custAccum)
	order := make([]string, 0)
	for _, t := range ds.Rows() {
		c, ok := byCustomer[t.CustomerID]
		if !ok {
			c = &custAccum{invoices: make(map[string]struct{})}
			byCustomer[t.CustomerID] = c
			order = append(order, t.CustomerID)
		}
		if t.InvoiceDate.After(c.latest) {
			c.latest = t.InvoiceDate
		}
		c.invoices[t.InvoiceNo] = struct{}{}
		c.monetary += t.TotalPrice
	}

	if len(order) < minCustomersForRFM {
		return nil, &InsufficientDataError{
			Requirement: "distinct customers",
			Got:         len(order),
			Need:        minCustomersForRFM,
		}
	}

	// Deterministic customer order regardless of map iteration.
	sort.Strings(order)

	recency := make([]float64, len(order))
	frequency := make([]float64, len(order))
	monetary := make([]float64, len(order))
	for i, id := range order {
		c := byCustomer[id]
		recency[i] = float64(int(reference.Sub(c.latest).Hours() / 24))
		frequency[i] = float64(len(c.invoices))
		monetary[i] = c.monetary
	}

	// Recency buckets invert to scores: the most recent bucket scores 5.
	recencyBins, err := quantileCut(recency, quintileBuckets)
	if err != nil {
		return nil, &InsufficientDataError{
			Requirement: fmt.Sprintf("distinct recency values (%v)", err),
			Got:         distinctCount(recency),
			Need:        quintileBuckets,
		}
	}

	// Frequency is ranked first so duplicate counts never collapse an edge.
	freqBins, err := quantileCut(rankFirst(frequency), quintileBuckets)
	if err != nil {
		return nil, fmt.Errorf("cut frequency ranks: %w", err)
	}

	monetaryBins, err := quantileCut(monetary, quintileBuckets)
	if err != nil {
		return nil, &InsufficientDataError{
			Requirement: fmt.Sprintf("distinct monetary values (%v)", err),
			Got:         distinctCount(monetary),
			Need:        quintileBuckets,
		}
	}

	records := make([]RFMRecord, len(order))
	for i, id := range order {
		r := quintileBuckets - recencyBins[i] // inverted
		f := freqBins[i] + 1
		m := monetaryBins[i] + 1

		rec := RFMRecord{
			CustomerID:  id,
			RecencyDays: int(recency[i]),
			Frequency:   int(frequency[i]),
			Monetary:    monetary[i],
			RScore:      r,
			FScore:      f,
			MScore:      m,
			Composite:   fmt.Sprintf("%d%d%d", r, f, m),
			ScoreTotal:  r + f + m,
		}
		rec.Segment = SegmentFor(rec.Composite)
		rec.AvgOrderValue = rec.Monetary / float64(rec.Frequency)
		rec.LifetimeValue = rec.Monetary * float64(rec.Frequency)
		records[i] = rec
	}

	logger.Info("rfm analysis completed",
		"customers", len(records),
		"reference_date", reference.Format("2006-01-02"),
	)

	return &RFMReport{ReferenceDate: reference, Records: records}, nil
}

// Insights summarises the segmentation and derives textual recommendations.
func (r *RFMReport) Insights() CustomerInsights {
	insights := CustomerInsights{
		TotalCustomers:      len(r.Records),
		SegmentDistribution: make(map[string]int),
		SegmentValue:        make(map[string]float64),
	}

	var totalMonetary float64
	repeat := 0
	for _, rec := range r.Records {
		insights.SegmentDistribution[rec.Segment]++
		insights.SegmentValue[rec.Segment] += rec.Monetary
		totalMonetary += rec.Monetary
		if rec.Frequency > 1 {
			repeat++
		}
	}

	if len(r.Records) > 0 {
		insights.AvgCustomerValue = totalMonetary / float64(len(r.Records))
		insights.RepeatCustomerRate = float64(repeat) / float64(len(r.Records)) * 100
	}

	insights.ChampionsCount = insights.SegmentDistribution[SegmentChampions]
	insights.AtRiskCount = insights.SegmentDistribution[SegmentAtRisk]
	insights.LostCount = insights.SegmentDistribution[SegmentLost]
	insights.TopSegment = topSegment(insights.SegmentDistribution)

	if insights.ChampionsCount > 0 && totalMonetary > 0 {
		pct := insights.SegmentValue[SegmentChampions] / totalMonetary * 100
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Champions generate %.1f%% of revenue - focus on retention and upselling", pct))
	}
	if insights.AtRiskCount > 0 {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("At Risk customers (%d) need immediate attention - implement retention campaigns", insights.AtRiskCount))
	}
	if insights.LostCount > 0 {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Lost customers (%d) - consider re-engagement campaigns", insights.LostCount))
	}
	if insights.RepeatCustomerRate < 50 {
		insights.Recommendations = append(insights.Recommendations,
			fmt.Sprintf("Repeat customer rate is %.1f%% - implement loyalty programs", insights.RepeatCustomerRate))
	}

	return insights
}

// topSegment returns the most populous segment, breaking count ties by label
// so the result is stable.
func topSegment(distribution map[string]int) string {
	best := ""
	bestCount := -1
	for label, count := range distribution {
		if count > bestCount || (count == bestCount && label < best) {
			best = label
			bestCount = count
		}
	}
	return best
}

func distinctCount(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}
