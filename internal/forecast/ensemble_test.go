package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsembleAgreeingModels(t *testing.T) {
	// A perfect line is reproduced exactly by the linear fit, the quadratic
	// fit and the seasonal fallback, so the ensemble has zero cross-model
	// spread.
	values := make([]float64, 10)
	for i := range values {
		values[i] = float64(2*i + 1)
	}

	res, err := Ensemble(values, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, MethodEnsemble, res.Method)
	assert.ElementsMatch(t, []Method{MethodLinear, MethodPolynomial, MethodSeasonal}, res.MethodsUsed)
	require.Len(t, res.Forecast, 3)
	assert.False(t, res.Truncated)

	for i, want := range []float64{21, 23, 25} {
		assert.InDelta(t, want, res.Forecast[i], 1e-6)
		assert.InDelta(t, want, res.ConfidenceUpper[i], 1e-5)
		assert.InDelta(t, want, res.ConfidenceLower[i], 1e-5)
		assert.InDelta(t, 0.0, res.ForecastStd[i], 1e-6)
	}

	require.Len(t, res.Individual, 3)
	for _, m := range res.MethodsUsed {
		assert.Len(t, res.Individual[m], 3)
	}
}

func TestEnsembleTruncatesToShortest(t *testing.T) {
	// With two full cycles of history the seasonal estimator caps its
	// horizon at 12, which truncates the whole ensemble.
	values := periodicSeries(30, 1000, 50)

	res, err := Ensemble(values, 20, nil)
	require.NoError(t, err)

	assert.True(t, res.Truncated)
	assert.Len(t, res.Forecast, 12)
	assert.Len(t, res.ConfidenceUpper, 12)
	assert.Len(t, res.ForecastStd, 12)
	for _, f := range res.Individual {
		assert.Len(t, f, 12)
	}
}

func TestEnsembleSingleModel(t *testing.T) {
	// Two observations support only the linear fit; the lone survivor is
	// passed through with a fixed relative band.
	values := []float64{100, 200}

	res, err := Ensemble(values, 2, nil)
	require.NoError(t, err)

	assert.Equal(t, MethodEnsemble, res.Method)
	assert.Equal(t, []Method{MethodLinear}, res.MethodsUsed)
	require.Len(t, res.Forecast, 2)
	assert.InDelta(t, 300.0, res.Forecast[0], 1e-9)
	assert.InDelta(t, 330.0, res.ConfidenceUpper[0], 1e-9)
	assert.InDelta(t, 270.0, res.ConfidenceLower[0], 1e-9)
	assert.Nil(t, res.ForecastStd)
}

func TestEnsembleAllModelsFail(t *testing.T) {
	_, err := Ensemble([]float64{42}, 3, nil)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Len(t, unavailable.Failures, 3)
	assert.Contains(t, err.Error(), "no forecasting method could be executed")
}

func TestEnsembleDisagreementWidensBand(t *testing.T) {
	// A convex series makes the quadratic fit diverge from the linear one,
	// so the cross-model band must open up.
	values := []float64{1, 2, 4, 8, 16, 32, 64, 128, 256, 512}

	res, err := Ensemble(values, 3, nil)
	require.NoError(t, err)
	assert.Greater(t, res.ConfidenceUpper[0], res.Forecast[0])
	assert.Less(t, res.ConfidenceLower[0], res.Forecast[0])
	assert.Greater(t, res.ForecastStd[0], 0.0)
}
