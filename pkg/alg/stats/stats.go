// Package stats holds the small numeric helpers the trackers share.
package stats

import (
	"cmp"

	"gonum.org/v1/gonum/stat"
)

// Mean returns the arithmetic mean of values, or 0 for none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	return stat.Mean(values, nil)
}

// Clamp restricts val to [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return max(lo, min(val, hi))
}

// Sum adds up values.
func Sum[T cmp.Ordered](values []T) T {
	var total T

	for _, v := range values {
		total += v
	}

	return total
}

// Proportion is the share of whole covered by parts, clamped to [0, 1].
// Parts may overlap the end of whole, hence the clamp. A non-positive whole
// yields 0.
func Proportion(parts []int, whole int) float64 {
	if whole <= 0 {
		return 0
	}

	return Clamp(float64(Sum(parts))/float64(whole), 0, 1)
}
