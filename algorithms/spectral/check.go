package spectral

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/RyanBlaney/exptable/algorithms/common"
	"github.com/RyanBlaney/exptable/logging"
)

// CheckError reports a table that failed one of the self-checks
type CheckError struct {
	Check  string
	Detail string
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("basis table failed %s check: %s", e.Check, e.Detail)
}

// CheckReport summarizes a successful Verify
type CheckReport struct {
	MaxMagnitudeError  float64
	Period             int // grid period used for the FFT cross-check; 0 when skipped
	MaxProjectionError float64
}

// Checker validates a BasisTable before it is emitted
type Checker struct {
	MagnitudeTolerance  float64 // allowed | |cell| - 1 |
	ProjectionTolerance float64 // allowed difference between table projection and FFT
	MaxPeriod           int     // largest FFT length searched for the cross-check

	fft    *FFT
	logger logging.Logger
}

// NewChecker creates a checker with default tolerances
func NewChecker(logger logging.Logger) *Checker {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Checker{
		MagnitudeTolerance:  1e-9,
		ProjectionTolerance: 1e-6,
		MaxPeriod:           1 << 16,
		fft:                 NewFFT(),
		logger:              logger.WithFields(logging.Fields{"component": "basis_check"}),
	}
}

// Verify checks the grid shape against the requested endpoints, the unit magnitude of
// every cell, and, when the grid sits on a common harmonic period, the table projection
// against an FFT of the same probe
func (c *Checker) Verify(t *BasisTable, start, end float64) (CheckReport, error) {
	var report CheckReport

	if err := c.checkGrid(t.grid, start, end); err != nil {
		return report, err
	}

	for i, row := range t.rows {
		mags := make([]float64, len(row.Real))
		for bin := range mags {
			mags[bin] = math.Hypot(row.Real[bin], row.Imag[bin])
		}
		dev := common.MaxAbsDeviation(mags, 1)
		if !(dev <= c.MagnitudeTolerance) {
			return report, &CheckError{
				Check:  "magnitude",
				Detail: fmt.Sprintf("row %d deviates from unit magnitude by %g", i, dev),
			}
		}
		report.MaxMagnitudeError = math.Max(report.MaxMagnitudeError, dev)
	}

	period := HarmonicPeriod(t.grid, c.MaxPeriod)
	if period == 0 {
		c.logger.Debug("grid has no harmonic period, skipping FFT cross-check", logging.Fields{
			"max_period": c.MaxPeriod,
		})
		return report, nil
	}

	maxErr, err := c.crossCheck(t, period)
	if err != nil {
		return report, err
	}
	report.Period = period
	report.MaxProjectionError = maxErr

	c.logger.Debug("FFT cross-check passed", logging.Fields{
		"period":    period,
		"radix2":    common.IsPowerOfTwo(period),
		"max_error": maxErr,
	})

	return report, nil
}

func (c *Checker) checkGrid(grid []float64, start, end float64) error {
	n := len(grid)
	switch {
	case !common.AllFinite(grid):
		return &CheckError{Check: "grid", Detail: "grid holds non-finite frequencies"}
	case grid[0] != start:
		return &CheckError{Check: "grid", Detail: fmt.Sprintf("first point %v, want %v", grid[0], start)}
	case n >= 2 && grid[n-1] != end:
		return &CheckError{Check: "grid", Detail: fmt.Sprintf("last point %v, want %v", grid[n-1], end)}
	case start < end && !common.IsStrictlyIncreasing(grid):
		return &CheckError{Check: "grid", Detail: "grid is not strictly increasing"}
	}
	return nil
}

// crossCheck projects a fixed probe through the table and compares every bin with the
// FFT of the probe at k/period
func (c *Checker) crossCheck(t *BasisTable, period int) (float64, error) {
	probe := make([]float64, t.Order())
	for i := range probe {
		probe[i] = 1 / float64(i+1)
	}

	projected, err := t.Project(probe)
	if err != nil {
		return 0, err
	}
	spectrum := c.fft.ComputePeriodic(probe, period)

	var maxErr float64
	for bin, f := range t.grid {
		k := int(math.Round(f*float64(period))) % period
		if k < 0 {
			k += period
		}
		got, want := projected[bin], spectrum[k]
		if !scalar.EqualWithinAbs(real(got), real(want), c.ProjectionTolerance) ||
			!scalar.EqualWithinAbs(imag(got), imag(want), c.ProjectionTolerance) {
			return 0, &CheckError{
				Check:  "projection",
				Detail: fmt.Sprintf("bin %d (f=%g): table gives %v, FFT gives %v", bin, f, got, want),
			}
		}
		maxErr = math.Max(maxErr, math.Max(math.Abs(real(got)-real(want)), math.Abs(imag(got)-imag(want))))
	}

	return maxErr, nil
}

// HarmonicPeriod returns the smallest P in [1, maxPeriod] for which every grid
// frequency is an integer multiple of 1/P, or 0 when there is none
func HarmonicPeriod(grid []float64, maxPeriod int) int {
	for p := 1; p <= maxPeriod; p++ {
		aligned := true
		for _, f := range grid {
			d := f * float64(p)
			if math.Abs(d-math.Round(d)) > 1e-8 {
				aligned = false
				break
			}
		}
		if aligned {
			return p
		}
	}
	return 0
}
