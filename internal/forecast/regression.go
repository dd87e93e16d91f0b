package forecast

import (
	"fmt"
	"math"
)

// confidenceZ is the z value for the symmetric 95% interval built from
// residual standard deviation. Residuals are assumed approximately normal;
// the band is an approximation, not an exact predictive interval.
const confidenceZ = 1.96

// polyFit fits y observed at x = 0..len(y)-1 with a polynomial of the given
// degree by solving the normal equations. Returns the coefficients c[0..d]
// of c0 + c1*x + ... + cd*x^d.
func polyFit(y []float64, degree int) ([]float64, error) {
	n := len(y)
	if n < degree+1 {
		return nil, fmt.Errorf("need at least %d observations for degree %d, have %d", degree+1, degree, n)
	}

	size := degree + 1
	// Normal equations: (X'X) c = X'y with X the Vandermonde matrix.
	xtx := make([][]float64, size)
	xty := make([]float64, size)
	for i := range xtx {
		xtx[i] = make([]float64, size)
	}

	for xi := 0; xi < n; xi++ {
		powers := make([]float64, size)
		p := 1.0
		for k := 0; k < size; k++ {
			powers[k] = p
			p *= float64(xi)
		}
		for i := 0; i < size; i++ {
			for j := 0; j < size; j++ {
				xtx[i][j] += powers[i] * powers[j]
			}
			xty[i] += powers[i] * y[xi]
		}
	}

	coeffs, err := solveLinearSystem(xtx, xty)
	if err != nil {
		return nil, fmt.Errorf("solve normal equations: %w", err)
	}
	return coeffs, nil
}

// solveLinearSystem solves Ax=b with Gaussian elimination and partial
// pivoting. A and b are modified in place.
func solveLinearSystem(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) < 1e-12 {
			return nil, fmt.Errorf("singular system at column %d", col)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}
	return x, nil
}

// polyEval evaluates the polynomial at x.
func polyEval(coeffs []float64, x float64) float64 {
	v := 0.0
	for k := len(coeffs) - 1; k >= 0; k-- {
		v = v*x + coeffs[k]
	}
	return v
}

// fitted returns the in-sample predictions for x = 0..n-1.
func fitted(coeffs []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = polyEval(coeffs, float64(i))
	}
	return out
}

// residualStd is the population standard deviation of y - yhat.
func residualStd(y, yhat []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var mean float64
	residuals := make([]float64, len(y))
	for i := range y {
		residuals[i] = y[i] - yhat[i]
		mean += residuals[i]
	}
	mean /= float64(len(residuals))

	var sq float64
	for _, r := range residuals {
		sq += (r - mean) * (r - mean)
	}
	return math.Sqrt(sq / float64(len(residuals)))
}

// rSquared is the coefficient of determination of yhat against y.
func rSquared(y, yhat []float64) float64 {
	var mean float64
	for _, v := range y {
		mean += v
	}
	mean /= float64(len(y))

	var ssTot, ssRes float64
	for i := range y {
		ssTot += (y[i] - mean) * (y[i] - mean)
		ssRes += (y[i] - yhat[i]) * (y[i] - yhat[i])
	}
	if ssTot == 0 {
		if ssRes == 0 {
			return 1
		}
		return 0
	}
	return 1 - ssRes/ssTot
}

// meanAbsoluteError of yhat against y.
func meanAbsoluteError(y, yhat []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	var sum float64
	for i := range y {
		sum += math.Abs(y[i] - yhat[i])
	}
	return sum / float64(len(y))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationStd is the standard deviation with zero delta degrees of freedom.
func populationStd(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)))
}
