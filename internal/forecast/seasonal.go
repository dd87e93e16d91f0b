package forecast

import (
	"fmt"
)

// Seasonal forecasts by extending the decomposed trend linearly and
// re-applying the trailing 12-month seasonal pattern.
//
// With fewer than 24 months of history the decomposition cannot separate a
// seasonal component, so the estimator delegates entirely to Polynomial with
// the same parameters and returns its result unchanged. This fallback is a
// hard contract relied on by the ensemble.
//
// The seasonal horizon is capped at one full cycle; requests beyond 12
// periods return 12 values and leave truncation to the ensemble.
func Seasonal(values []float64, periods int) (*Result, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods must be positive, got %d", periods)
	}
	if len(values) < minMonthsForDecomposition {
		return Polynomial(values, DefaultPolynomialDegree, periods)
	}

	decomp := Decompose(values)
	trendData := decomp.TrendValues()
	if len(trendData) < 2 {
		return nil, fmt.Errorf("trend component too short: %d points", len(trendData))
	}

	coeffs, err := polyFit(trendData, 1)
	if err != nil {
		return nil, fmt.Errorf("trend fit: %w", err)
	}

	// Trailing full cycle of the seasonal component.
	pattern := decomp.Seasonal[len(decomp.Seasonal)-seasonalPeriod:]

	horizon := periods
	if horizon > seasonalPeriod {
		horizon = seasonalPeriod
	}

	forecast := make([]float64, horizon)
	for i := 0; i < horizon; i++ {
		trendValue := polyEval(coeffs, float64(len(trendData)+i))
		forecast[i] = trendValue + pattern[i]
	}

	// Band from the trend fit residuals; the seasonal component is treated
	// as deterministic.
	yhat := fitted(coeffs, len(trendData))
	interval := confidenceZ * residualStd(trendData, yhat)

	upper := make([]float64, horizon)
	lower := make([]float64, horizon)
	for i, v := range forecast {
		upper[i] = v + interval
		lower[i] = v - interval
	}

	return &Result{
		Method:          MethodSeasonal,
		Forecast:        forecast,
		ConfidenceUpper: upper,
		ConfidenceLower: lower,
		Fit:             &ModelFit{R2: rSquared(trendData, yhat)},
	}, nil
}
