package common

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Grid helpers shared by the table computer and its self-check, using gonum for the
// vector work

// Linspace returns n evenly spaced points from start to end inclusive.
// The last point is exactly end for n >= 2; n == 1 yields [start]; n <= 0 yields nil.
func Linspace(start, end float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}

	grid := floats.Span(make([]float64, n), start, end)
	grid[n-1] = end
	return grid
}

// IsStrictlyIncreasing reports whether every element is greater than the one before it
func IsStrictlyIncreasing(data []float64) bool {
	for i := 1; i < len(data); i++ {
		if !(data[i] > data[i-1]) {
			return false
		}
	}
	return true
}

// AllFinite reports whether data holds no NaN or infinity
func AllFinite(data []float64) bool {
	if floats.HasNaN(data) {
		return false
	}
	for _, v := range data {
		if math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// MaxAbsDeviation returns the largest |data[i] - target|, the L-infinity distance
// from a constant vector
func MaxAbsDeviation(data []float64, target float64) float64 {
	if len(data) == 0 {
		return 0
	}
	ref := make([]float64, len(data))
	for i := range ref {
		ref[i] = target
	}
	return floats.Distance(data, ref, math.Inf(1))
}

// IsPowerOfTwo checks if n is a power of two
func IsPowerOfTwo(n int) bool {
	return n > 0 && (n&(n-1)) == 0
}
