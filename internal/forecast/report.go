package forecast

import (
	"fmt"
	"log/slog"
	"time"

	"retailpulse/internal/dataset"
)

// strongSeasonalityFloor is the absolute seasonal-component deviation above
// which the report flags strong seasonal patterns. The threshold is in
// revenue units, so it only triggers at retail-dataset scale.
const strongSeasonalityFloor = 10000.0

// BuildReport aggregates the snapshot to a monthly revenue series, runs the
// ensemble and packages summary, per-model series and recommendations.
func BuildReport(ds *dataset.Dataset, periods int, logger *slog.Logger) (*Report, error) {
	if logger == nil {
		logger = slog.Default()
	}

	series := ds.MonthlySeries()
	if len(series) == 0 {
		return nil, fmt.Errorf("empty monthly series")
	}

	values := make([]float64, len(series))
	for i, p := range series {
		values[i] = p.Revenue
	}

	logger.Info("time series prepared", "months", len(values), "periods", periods)

	ensemble, err := Ensemble(values, periods, logger)
	if err != nil {
		return nil, err
	}

	lastMonth := series[len(series)-1].Month
	months := make([]time.Time, len(ensemble.Forecast))
	for i := range months {
		months[i] = lastMonth.AddDate(0, i+1, 0)
	}

	summary := ensemble.Summarise()
	report := &Report{
		RequestedPeriods: periods,
		ForecastMonths:   months,
		Ensemble:         ensemble,
		Summary:          summary,
		Recommendations:  forecastRecommendations(summary, Decompose(values)),
	}

	logger.Info("forecast report built",
		"methods_used", len(ensemble.MethodsUsed),
		"actual_periods", len(ensemble.Forecast),
		"growth_rate_pct", summary.GrowthRatePct,
	)

	return report, nil
}

// forecastRecommendations tags advisories from the growth outlook and the
// strength of the decomposed seasonal component.
func forecastRecommendations(summary Summary, decomp Decomposition) []Recommendation {
	var recs []Recommendation

	switch growth := summary.GrowthRatePct; {
	case growth > 10:
		recs = append(recs, Recommendation{
			Type:     "Positive",
			Message:  fmt.Sprintf("Strong growth forecasted (%.1f%%) - consider expanding inventory and marketing", growth),
			Priority: "High",
		})
	case growth > 0:
		recs = append(recs, Recommendation{
			Type:     "Positive",
			Message:  fmt.Sprintf("Moderate growth forecasted (%.1f%%) - maintain current strategies", growth),
			Priority: "Medium",
		})
	default:
		recs = append(recs, Recommendation{
			Type:     "Warning",
			Message:  fmt.Sprintf("Declining trend forecasted (%.1f%%) - review business strategies", growth),
			Priority: "High",
		})
	}

	if decomp.SeasonalStrength() > strongSeasonalityFloor {
		recs = append(recs, Recommendation{
			Type:     "Info",
			Message:  "Strong seasonal patterns detected - plan inventory accordingly",
			Priority: "Medium",
		})
	}

	return recs
}
