package spectral

import "math"

// ModelOrder returns the autoregressive model order used for a window of sampleCount
// samples: floor(n / ln(2n)). It returns 0 for sampleCount < 1.
func ModelOrder(sampleCount int) int {
	if sampleCount < 1 {
		return 0
	}
	return int(math.Floor(orderRatio(sampleCount)))
}

// ModelOrderNearest rounds n / ln(2n) half up instead of truncating, matching
// firmware headers that declare the order as ((int)(n / log(2*n) + 0.5)).
func ModelOrderNearest(sampleCount int) int {
	if sampleCount < 1 {
		return 0
	}
	return int(orderRatio(sampleCount) + 0.5)
}

func orderRatio(sampleCount int) float64 {
	n := float64(sampleCount)
	return n / math.Log(2*n)
}
