package forecast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolyFit(t *testing.T) {
	t.Run("recovers exact line", func(t *testing.T) {
		y := []float64{1, 3, 5, 7, 9} // y = 1 + 2x
		coeffs, err := polyFit(y, 1)
		require.NoError(t, err)
		require.Len(t, coeffs, 2)
		assert.InDelta(t, 1.0, coeffs[0], 1e-9)
		assert.InDelta(t, 2.0, coeffs[1], 1e-9)
	})

	t.Run("recovers exact quadratic", func(t *testing.T) {
		// y = 1 + 2x + 3x^2
		y := []float64{1, 6, 17, 34, 57, 86}
		coeffs, err := polyFit(y, 2)
		require.NoError(t, err)
		require.Len(t, coeffs, 3)
		assert.InDelta(t, 1.0, coeffs[0], 1e-6)
		assert.InDelta(t, 2.0, coeffs[1], 1e-6)
		assert.InDelta(t, 3.0, coeffs[2], 1e-6)
	})

	t.Run("too few observations", func(t *testing.T) {
		_, err := polyFit([]float64{5}, 1)
		assert.Error(t, err)
		_, err = polyFit([]float64{5, 6}, 2)
		assert.Error(t, err)
	})
}

func TestSolveLinearSystem(t *testing.T) {
	t.Run("two by two", func(t *testing.T) {
		a := [][]float64{{2, 1}, {1, 3}}
		b := []float64{5, 10}
		x, err := solveLinearSystem(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 1.0, x[0], 1e-9)
		assert.InDelta(t, 3.0, x[1], 1e-9)
	})

	t.Run("needs pivoting", func(t *testing.T) {
		a := [][]float64{{0, 1}, {1, 0}}
		b := []float64{2, 3}
		x, err := solveLinearSystem(a, b)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, x[0], 1e-9)
		assert.InDelta(t, 2.0, x[1], 1e-9)
	})

	t.Run("singular system", func(t *testing.T) {
		a := [][]float64{{1, 2}, {2, 4}}
		b := []float64{3, 6}
		_, err := solveLinearSystem(a, b)
		assert.Error(t, err)
	})
}

func TestPolyEval(t *testing.T) {
	coeffs := []float64{1, 2, 3} // 1 + 2x + 3x^2
	assert.Equal(t, 1.0, polyEval(coeffs, 0))
	assert.Equal(t, 6.0, polyEval(coeffs, 1))
	assert.Equal(t, 17.0, polyEval(coeffs, 2))
}

func TestResidualStd(t *testing.T) {
	t.Run("perfect fit", func(t *testing.T) {
		y := []float64{1, 2, 3}
		assert.Zero(t, residualStd(y, y))
	})

	t.Run("constant offset", func(t *testing.T) {
		y := []float64{1, 2, 3}
		yhat := []float64{2, 3, 4}
		// Residuals are all -1; spread around their own mean is zero.
		assert.Zero(t, residualStd(y, yhat))
	})

	t.Run("alternating residuals", func(t *testing.T) {
		y := []float64{1, -1, 1, -1}
		yhat := []float64{0, 0, 0, 0}
		assert.InDelta(t, 1.0, residualStd(y, yhat), 1e-9)
	})
}

func TestRSquared(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
		yhat []float64
		want float64
	}{
		{"perfect fit", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"mean predictor", []float64{1, 2, 3}, []float64{2, 2, 2}, 0},
		{"constant series perfect", []float64{5, 5, 5}, []float64{5, 5, 5}, 1},
		{"constant series missed", []float64{5, 5, 5}, []float64{4, 4, 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, rSquared(tt.y, tt.yhat), 1e-9)
		})
	}
}

func TestMeanAbsoluteError(t *testing.T) {
	assert.Zero(t, meanAbsoluteError(nil, nil))
	assert.InDelta(t, 1.5, meanAbsoluteError([]float64{1, 2}, []float64{2, 4}), 1e-9)
}

func TestPopulationStd(t *testing.T) {
	assert.Zero(t, populationStd(nil))
	assert.Zero(t, populationStd([]float64{4, 4, 4}))
	// Values 2 and 4: mean 3, population std 1.
	assert.InDelta(t, 1.0, populationStd([]float64{2, 4}), 1e-9)
	assert.False(t, math.IsNaN(populationStd([]float64{1})))
}
