package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// FFT is the reference transform the basis table is checked against
type FFT struct{}

// NewFFT creates a new FFT calculator
func NewFFT() *FFT {
	return &FFT{}
}

// Compute returns the DFT of a real signal. Periods that are not a power of two
// (1225 for the firmware grid) go through go-dsp's Bluestein path.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// ComputePeriodic returns the DTFT of x sampled at k/period for k in [0, period).
// x may be longer than period: e^{-j2π(k/period)i} repeats every period samples, so x is
// folded onto one period before the transform.
func (f *FFT) ComputePeriodic(x []float64, period int) []complex128 {
	if period < 1 {
		return []complex128{}
	}
	return f.Compute(Fold(x, period))
}

// Fold sums x into period buckets by index modulo period
func Fold(x []float64, period int) []float64 {
	folded := make([]float64, period)
	for i, v := range x {
		folded[i%period] += v
	}
	return folded
}
