// Package statutil provides the quantile and interpolation helpers used
// by the summarizer and the target solver.
package statutil

import (
	"math"
	"sort"
)

// Quantile returns the type-7 (linear interpolation between order
// statistics) sample quantile of xs at probability p in [0, 1]. The
// input is not modified. Returns NaN for an empty sample.
//
// The type-7 definition is the reproducibility contract for every
// quantile reported by the summarizer: h = (n-1)p, and the result
// interpolates linearly between the order statistics bracketing h.
func Quantile(xs []float64, p float64) float64 {
	if len(xs) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}

// InterpolateX solves for x at the given y along the segment between
// (x1, y1) and (x2, y2). A degenerate segment (y1 == y2) returns x1.
func InterpolateX(x1, y1, x2, y2, y float64) float64 {
	if y2 == y1 {
		return x1
	}
	return x1 + (x2-x1)*(y-y1)/(y2-y1)
}
