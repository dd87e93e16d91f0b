package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear(t *testing.T) {
	t.Run("extends exact line", func(t *testing.T) {
		values := []float64{1, 3, 5, 7} // y = 1 + 2x
		res, err := Linear(values, 2)
		require.NoError(t, err)

		assert.Equal(t, MethodLinear, res.Method)
		require.Len(t, res.Forecast, 2)
		assert.InDelta(t, 9.0, res.Forecast[0], 1e-9)
		assert.InDelta(t, 11.0, res.Forecast[1], 1e-9)

		// A perfect fit has zero residual spread, so the band collapses.
		assert.InDelta(t, res.Forecast[0], res.ConfidenceUpper[0], 1e-9)
		assert.InDelta(t, res.Forecast[0], res.ConfidenceLower[0], 1e-9)

		require.NotNil(t, res.Fit)
		assert.InDelta(t, 1.0, res.Fit.R2, 1e-9)
		require.NotNil(t, res.Fit.MAE)
		assert.InDelta(t, 0.0, *res.Fit.MAE, 1e-9)
	})

	t.Run("noisy series has a band", func(t *testing.T) {
		values := []float64{1, 4, 5, 8, 9, 13}
		res, err := Linear(values, 1)
		require.NoError(t, err)
		assert.Greater(t, res.ConfidenceUpper[0], res.Forecast[0])
		assert.Less(t, res.ConfidenceLower[0], res.Forecast[0])
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := Linear([]float64{1, 2, 3}, 0)
		assert.Error(t, err)
		_, err = Linear([]float64{1}, 3)
		assert.Error(t, err)
	})
}

func TestPolynomial(t *testing.T) {
	t.Run("extends exact quadratic", func(t *testing.T) {
		values := []float64{1, 2, 5, 10, 17} // y = 1 + x^2
		res, err := Polynomial(values, 2, 2)
		require.NoError(t, err)

		assert.Equal(t, MethodPolynomial, res.Method)
		require.Len(t, res.Forecast, 2)
		assert.InDelta(t, 26.0, res.Forecast[0], 1e-6)
		assert.InDelta(t, 37.0, res.Forecast[1], 1e-6)
		assert.InDelta(t, 1.0, res.Fit.R2, 1e-9)
	})

	t.Run("non-positive degree falls back to default", func(t *testing.T) {
		values := []float64{1, 2, 5, 10, 17}
		res, err := Polynomial(values, 0, 1)
		require.NoError(t, err)
		assert.InDelta(t, 26.0, res.Forecast[0], 1e-6)
	})

	t.Run("rejects too short history", func(t *testing.T) {
		_, err := Polynomial([]float64{1, 2}, 2, 3)
		assert.Error(t, err)
	})
}

func TestResultGrowthRate(t *testing.T) {
	tests := []struct {
		name     string
		forecast []float64
		want     float64
	}{
		{"rising", []float64{100, 150}, 50},
		{"falling", []float64{100, 50}, -50},
		{"flat", []float64{100, 100}, 0},
		{"single point", []float64{100}, 0},
		{"zero first value", []float64{0, 100}, 0},
		{"empty", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Result{Forecast: tt.forecast}
			assert.InDelta(t, tt.want, r.GrowthRate(), 1e-9)
		})
	}
}

func TestSummarise(t *testing.T) {
	r := &Result{
		Method:   MethodLinear,
		Forecast: []float64{100, 200, 300},
	}
	s := r.Summarise()
	assert.Equal(t, MethodLinear, s.Method)
	assert.Equal(t, 3, s.Periods)
	assert.InDelta(t, 600.0, s.TotalForecast, 1e-9)
	assert.InDelta(t, 200.0, s.AvgMonthly, 1e-9)
	assert.InDelta(t, 200.0, s.GrowthRatePct, 1e-9)
}
