package forecast

import (
	"math"
)

// seasonalPeriod is the fixed cycle length of the additive decomposition.
const seasonalPeriod = 12

// minMonthsForDecomposition is the history floor for a genuine seasonal
// decomposition: two full cycles.
const minMonthsForDecomposition = 2 * seasonalPeriod

// Decomposition separates a series into trend, seasonal and residual
// components. Positions where a component is undefined (the edges of the
// centered moving averages) hold NaN.
type Decomposition struct {
	Observed []float64
	Trend    []float64
	Seasonal []float64
	Residual []float64

	// TrendOnly marks the degraded form used when history is shorter than
	// two seasonal cycles: a 3-month centered moving average with a zero
	// seasonal component.
	TrendOnly bool
}

// Decompose performs an additive decomposition with a fixed 12-month period
// when at least 24 months of history are available. Shorter histories get
// the trend-only form instead; this degradation is part of the forecasting
// contract, not an optimization.
func Decompose(values []float64) Decomposition {
	if len(values) < minMonthsForDecomposition {
		return trendOnlyDecomposition(values)
	}

	n := len(values)
	trend := centeredMovingAverage(values, seasonalPeriod)

	// Seasonal component: mean detrended value per cycle position,
	// centered so the 12 means sum to zero, then tiled across the series.
	sums := make([]float64, seasonalPeriod)
	counts := make([]int, seasonalPeriod)
	for i := 0; i < n; i++ {
		if math.IsNaN(trend[i]) {
			continue
		}
		pos := i % seasonalPeriod
		sums[pos] += values[i] - trend[i]
		counts[pos]++
	}

	averages := make([]float64, seasonalPeriod)
	var total float64
	for pos := range averages {
		if counts[pos] > 0 {
			averages[pos] = sums[pos] / float64(counts[pos])
		}
		total += averages[pos]
	}
	center := total / seasonalPeriod
	for pos := range averages {
		averages[pos] -= center
	}

	seasonal := make([]float64, n)
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		seasonal[i] = averages[i%seasonalPeriod]
		if math.IsNaN(trend[i]) {
			residual[i] = math.NaN()
		} else {
			residual[i] = values[i] - trend[i] - seasonal[i]
		}
	}

	return Decomposition{
		Observed: append([]float64(nil), values...),
		Trend:    trend,
		Seasonal: seasonal,
		Residual: residual,
	}
}

// trendOnlyDecomposition smooths with a 3-month centered moving average and
// reports a zero seasonal component.
func trendOnlyDecomposition(values []float64) Decomposition {
	n := len(values)
	trend := make([]float64, n)
	seasonal := make([]float64, n)
	residual := make([]float64, n)

	for i := 0; i < n; i++ {
		if i == 0 || i == n-1 {
			trend[i] = math.NaN()
			residual[i] = math.NaN()
			continue
		}
		trend[i] = (values[i-1] + values[i] + values[i+1]) / 3
		residual[i] = values[i] - trend[i]
	}

	return Decomposition{
		Observed:  append([]float64(nil), values...),
		Trend:     trend,
		Seasonal:  seasonal,
		Residual:  residual,
		TrendOnly: true,
	}
}

// centeredMovingAverage computes the 2x12-style centered moving average used
// for even periods: a window of period+1 values with half weight on the two
// endpoints. The first and last period/2 positions are NaN.
func centeredMovingAverage(values []float64, period int) []float64 {
	n := len(values)
	out := make([]float64, n)
	half := period / 2

	for i := 0; i < n; i++ {
		if i < half || i >= n-half {
			out[i] = math.NaN()
			continue
		}
		sum := values[i-half]/2 + values[i+half]/2
		for j := i - half + 1; j <= i+half-1; j++ {
			sum += values[j]
		}
		out[i] = sum / float64(period)
	}
	return out
}

// TrendValues returns the non-NaN trend values in order.
func (d Decomposition) TrendValues() []float64 {
	out := make([]float64, 0, len(d.Trend))
	for _, v := range d.Trend {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// SeasonalStrength is the population standard deviation of the seasonal
// component, ignoring NaN positions.
func (d Decomposition) SeasonalStrength() float64 {
	vals := make([]float64, 0, len(d.Seasonal))
	for _, v := range d.Seasonal {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	return populationStd(vals)
}
