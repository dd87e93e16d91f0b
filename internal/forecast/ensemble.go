package forecast

import (
	"log/slog"
)

// singleModelBand is the ad hoc relative band applied when only one
// estimator succeeds and no cross-model disagreement exists.
const singleModelBand = 0.10

// Ensemble runs the linear, polynomial and seasonal estimators and combines
// whichever succeed. A single estimator's failure is logged and skipped;
// only total failure surfaces as UnavailableError.
//
// With two or more results, all forecasts are truncated to the shortest
// returned length (with a warning when that is below the requested horizon),
// point forecasts are averaged arithmetically and the confidence band is
// ±1.96 times the cross-model standard deviation at each step, so model
// disagreement becomes the uncertainty estimate. A lone result is passed
// through with a ±10% band.
func Ensemble(values []float64, periods int, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	type attempt struct {
		method Method
		run    func() (*Result, error)
	}
	attempts := []attempt{
		{MethodLinear, func() (*Result, error) { return Linear(values, periods) }},
		{MethodPolynomial, func() (*Result, error) { return Polynomial(values, DefaultPolynomialDegree, periods) }},
		{MethodSeasonal, func() (*Result, error) { return Seasonal(values, periods) }},
	}

	var results []*Result
	var methods []Method
	failures := make(map[Method]error)
	for _, a := range attempts {
		res, err := a.run()
		if err != nil {
			logger.Warn("estimator unavailable", "method", string(a.method), "error", err)
			failures[a.method] = err
			continue
		}
		results = append(results, res)
		methods = append(methods, a.method)
	}

	switch len(results) {
	case 0:
		return nil, &UnavailableError{Failures: failures}
	case 1:
		only := results[0]
		upper := make([]float64, len(only.Forecast))
		lower := make([]float64, len(only.Forecast))
		for i, v := range only.Forecast {
			upper[i] = v * (1 + singleModelBand)
			lower[i] = v * (1 - singleModelBand)
		}
		return &Result{
			Method:          MethodEnsemble,
			Forecast:        append([]float64(nil), only.Forecast...),
			ConfidenceUpper: upper,
			ConfidenceLower: lower,
			Individual:      map[Method][]float64{methods[0]: append([]float64(nil), only.Forecast...)},
			MethodsUsed:     methods,
		}, nil
	}

	minLen := len(results[0].Forecast)
	for _, r := range results[1:] {
		if len(r.Forecast) < minLen {
			minLen = len(r.Forecast)
		}
	}
	truncated := minLen != periods
	if truncated {
		logger.Warn("truncating forecasts to shortest model output",
			"actual_periods", minLen,
			"requested_periods", periods,
		)
	}

	combined := make([]float64, minLen)
	std := make([]float64, minLen)
	upper := make([]float64, minLen)
	lower := make([]float64, minLen)
	step := make([]float64, len(results))
	for i := 0; i < minLen; i++ {
		for j, r := range results {
			step[j] = r.Forecast[i]
		}
		combined[i] = mean(step)
		std[i] = populationStd(step)
		upper[i] = combined[i] + confidenceZ*std[i]
		lower[i] = combined[i] - confidenceZ*std[i]
	}

	individual := make(map[Method][]float64, len(results))
	for j, r := range results {
		individual[methods[j]] = append([]float64(nil), r.Forecast[:minLen]...)
	}

	return &Result{
		Method:          MethodEnsemble,
		Forecast:        combined,
		ConfidenceUpper: upper,
		ConfidenceLower: lower,
		Individual:      individual,
		MethodsUsed:     methods,
		ForecastStd:     std,
		Truncated:       truncated,
	}, nil
}
