// Package admission implements the online admission-control decision core:
// quota tracking, per-candidate scoring, critical-attribute detection, the
// adaptive threshold, and the rate-deflation feedback loop.
package admission

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of data, or 0 for an empty slice.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// Median returns the true median of data (not the (max-min)/2 approximation
// some variants of this controller mistakenly use).
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)
	mid := n / 2
	if n%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// StdDev returns the sample (n-1) standard deviation of data, or 0 for
// fewer than two samples.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return stat.StdDev(data, nil)
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sigmoid is the tanh-based sigmoid used by the sigmoid deflation law:
// bounded in (-1, 1), 0 at x=0.
func Sigmoid(x float64) float64 {
	return math.Tanh(x)
}

// Percentile returns the p-th percentile (0-100) of data using linear
// interpolation between closest ranks.
func Percentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, data)
	sort.Float64s(sorted)
	if n == 1 {
		return sorted[0]
	}
	rank := p / 100.0 * float64(n-1)
	lowerIdx := int(math.Floor(rank))
	upperIdx := int(math.Ceil(rank))
	if lowerIdx == upperIdx {
		return sorted[lowerIdx]
	}
	if upperIdx >= n {
		return sorted[n-1]
	}
	lowerVal, upperVal := sorted[lowerIdx], sorted[upperIdx]
	return lowerVal + (upperVal-lowerVal)*(rank-float64(lowerIdx))
}
