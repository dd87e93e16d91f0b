package forecast

import (
	"fmt"
	"strings"
	"time"
)

// Method identifies a forecasting estimator or the ensemble combiner.
type Method string

const (
	MethodLinear     Method = "linear"
	MethodPolynomial Method = "polynomial"
	MethodSeasonal   Method = "seasonal"
	MethodEnsemble   Method = "ensemble"
)

// ModelFit carries in-sample quality metrics. MAE is absent for methods that
// fit only a trend component.
type ModelFit struct {
	R2  float64  `json:"r2_score"`
	MAE *float64 `json:"mae,omitempty"`
}

// Result is the output of a single estimator or of the ensemble. Forecast,
// ConfidenceUpper and ConfidenceLower always share one length, which may be
// shorter than the requested horizon after ensemble truncation.
type Result struct {
	Method          Method    `json:"method"`
	Forecast        []float64 `json:"forecast"`
	ConfidenceUpper []float64 `json:"confidence_upper"`
	ConfidenceLower []float64 `json:"confidence_lower"`

	// Fit is present only for model-based methods; the ensemble derives its
	// band from cross-model disagreement instead.
	Fit *ModelFit `json:"fit,omitempty"`

	// Ensemble-only fields.
	Individual  map[Method][]float64 `json:"individual_forecasts,omitempty"`
	MethodsUsed []Method             `json:"methods_used,omitempty"`
	ForecastStd []float64            `json:"forecast_std,omitempty"`
	Truncated   bool                 `json:"truncated,omitempty"`
}

// Periods returns the actual forecast length.
func (r *Result) Periods() int { return len(r.Forecast) }

// GrowthRate is (last-first)/first as a percentage, defined as 0 for series
// shorter than two points or a zero first value.
func (r *Result) GrowthRate() float64 {
	return growthRate(r.Forecast)
}

func growthRate(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	first, last := values[0], values[len(values)-1]
	if first == 0 {
		return 0
	}
	return (last - first) / first * 100
}

// Summary condenses a forecast result for reporting.
type Summary struct {
	Method        Method    `json:"forecast_type"`
	Periods       int       `json:"forecast_periods"`
	TotalForecast float64   `json:"total_forecasted_revenue"`
	AvgMonthly    float64   `json:"avg_monthly_forecast"`
	GrowthRatePct float64   `json:"forecast_growth_rate"`
	Fit           *ModelFit `json:"model_performance,omitempty"`
}

// Summarise builds the Summary for a result.
func (r *Result) Summarise() Summary {
	var total float64
	for _, v := range r.Forecast {
		total += v
	}
	s := Summary{
		Method:        r.Method,
		Periods:       len(r.Forecast),
		TotalForecast: total,
		GrowthRatePct: r.GrowthRate(),
		Fit:           r.Fit,
	}
	if len(r.Forecast) > 0 {
		s.AvgMonthly = total / float64(len(r.Forecast))
	}
	return s
}

// Recommendation is one tagged advisory in the forecast report.
type Recommendation struct {
	Type     string `json:"type"` // Positive, Warning or Info
	Message  string `json:"message"`
	Priority string `json:"priority"` // High, Medium or Low
}

// Report is the full forecast bundle handed to the presentation layer.
type Report struct {
	RequestedPeriods int              `json:"requested_periods"`
	ForecastMonths   []time.Time      `json:"forecast_months"`
	Ensemble         *Result          `json:"ensemble"`
	Summary          Summary          `json:"summary"`
	Recommendations  []Recommendation `json:"recommendations"`
}

// UnavailableError means every estimator failed; it lists each failure so
// the caller can see which preconditions were not met.
type UnavailableError struct {
	Failures map[Method]error
}

func (e *UnavailableError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, m := range []Method{MethodLinear, MethodPolynomial, MethodSeasonal} {
		if err, ok := e.Failures[m]; ok {
			parts = append(parts, fmt.Sprintf("%s: %v", m, err))
		}
	}
	return "no forecasting method could be executed: " + strings.Join(parts, "; ")
}
