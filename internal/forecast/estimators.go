package forecast

import (
	"fmt"
)

// DefaultPolynomialDegree is the feature-expansion degree used by the
// polynomial estimator and by the ensemble.
const DefaultPolynomialDegree = 2

// Linear forecasts the next periods values with an ordinary least squares
// fit of revenue on month index. The confidence band is a symmetric
// ±1.96σ of the in-sample residuals.
func Linear(values []float64, periods int) (*Result, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods must be positive, got %d", periods)
	}
	coeffs, err := polyFit(values, 1)
	if err != nil {
		return nil, fmt.Errorf("linear fit: %w", err)
	}
	return modelResult(MethodLinear, coeffs, values, periods), nil
}

// Polynomial forecasts with an explicit polynomial feature expansion before
// the least-squares fit. Degree 0 or negative falls back to the default.
func Polynomial(values []float64, degree, periods int) (*Result, error) {
	if periods < 1 {
		return nil, fmt.Errorf("periods must be positive, got %d", periods)
	}
	if degree < 1 {
		degree = DefaultPolynomialDegree
	}
	coeffs, err := polyFit(values, degree)
	if err != nil {
		return nil, fmt.Errorf("polynomial fit (degree %d): %w", degree, err)
	}
	return modelResult(MethodPolynomial, coeffs, values, periods), nil
}

// modelResult builds forecast, band and fit metrics for a fitted polynomial
// model over x = 0..len(values)-1.
func modelResult(method Method, coeffs []float64, values []float64, periods int) *Result {
	n := len(values)
	yhat := fitted(coeffs, n)
	interval := confidenceZ * residualStd(values, yhat)

	forecast := make([]float64, periods)
	upper := make([]float64, periods)
	lower := make([]float64, periods)
	for i := 0; i < periods; i++ {
		v := polyEval(coeffs, float64(n+i))
		forecast[i] = v
		upper[i] = v + interval
		lower[i] = v - interval
	}

	mae := meanAbsoluteError(values, yhat)
	return &Result{
		Method:          method,
		Forecast:        forecast,
		ConfidenceUpper: upper,
		ConfidenceLower: lower,
		Fit:             &ModelFit{R2: rSquared(values, yhat), MAE: &mae},
	}
}
