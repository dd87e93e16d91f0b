package analytics

import (
	"fmt"
	"sort"
)

// quintileBuckets is the number of buckets all RFM metrics are cut into.
const quintileBuckets = 5

// quantileEdges computes the n+1 bucket edges for values using linear
// interpolation between order statistics. Edges must be strictly increasing
// for the cut to be well defined; duplicate edges mean the value distribution
// cannot support n distinct buckets.
func quantileEdges(values []float64, n int) ([]float64, error) {
	if len(values) < n {
		return nil, fmt.Errorf("need at least %d values for %d buckets, have %d", n, n, len(values))
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	edges := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		edges[i] = interpolatedQuantile(sorted, float64(i)/float64(n))
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] <= edges[i-1] {
			return nil, fmt.Errorf("duplicate bucket edge %.6g at quantile %.1f", edges[i], float64(i)/float64(n))
		}
	}
	return edges, nil
}

// quantileCut assigns each value to a 0-based bucket using right-inclusive
// intervals over the computed edges, so a value equal to an interior edge
// lands in the lower bucket. The minimum value always lands in bucket 0.
func quantileCut(values []float64, n int) ([]int, error) {
	edges, err := quantileEdges(values, n)
	if err != nil {
		return nil, err
	}

	bins := make([]int, len(values))
	for i, v := range values {
		bin := n - 1
		for j := 1; j < n; j++ {
			if v <= edges[j] {
				bin = j - 1
				break
			}
		}
		bins[i] = bin
	}
	return bins, nil
}

// rankFirst assigns ascending ranks 1..n with ties broken by input position,
// so equal values never share a rank and quantile edges over the ranks are
// always distinct.
func rankFirst(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for pos, i := range idx {
		ranks[i] = float64(pos + 1)
	}
	return ranks
}

// interpolatedQuantile returns the q-th quantile (0..1) of a sorted slice.
func interpolatedQuantile(sorted []float64, q float64) float64 {
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	frac := pos - float64(lo)
	if lo+1 >= len(sorted) {
		return sorted[lo]
	}
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
