// Package floatutils provides utilities for working with floats
package floatutils

import (
	"math"
)

// Clip clips a floating point to within a minimum and maximum value.
// If the floating point exceeds max, then the function returns the max
// If min exceeds the floating point, then the function returns the min
func Clip(value, min, max float64) float64 {
	clipped := math.Min(value, max)
	return math.Max(clipped, min)
}

// MaxSlice gets the maximum value and indices of the maximum values in
// a slice of float64. Indices are returned in increasing order. The
// slice must not be empty.
func MaxSlice(values []float64) (max float64, indices []int) {
	max, indices = values[0], []int{0}

	for i := 1; i < len(values); i++ {
		if values[i] > max {
			max = values[i]
			indices = indices[:0]
			indices = append(indices, i)
		} else if values[i] == max {
			indices = append(indices, i)
		}
	}
	return
}

// Normalize returns the position of value in [min, max] scaled to
// [0, 1]. If min == max, Normalize returns 0.5.
func Normalize(value, min, max float64) float64 {
	if max == min {
		return 0.5
	}
	return Clip((value-min)/(max-min), 0, 1)
}
