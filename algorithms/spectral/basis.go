package spectral

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/exptable/algorithms/common"
)

// BasisRow holds the complex exponentials of one model-order index over the whole
// frequency grid, split into real and imaginary parts like the firmware struct
type BasisRow struct {
	Real []float64
	Imag []float64
}

// BasisTable holds e^{-j2πf·i} for every model-order index i and grid frequency f.
// Frequencies are normalized (cycles per sample).
type BasisTable struct {
	grid []float64
	rows []BasisRow
}

// ComputeBasis builds the evenly spaced grid from start to end (inclusive) with bins
// points and evaluates the table for indices [0, order)
func ComputeBasis(start, end float64, bins, order int) (*BasisTable, error) {
	if bins < 1 {
		return nil, fmt.Errorf("frequency grid needs at least one bin, got %d", bins)
	}
	return NewBasisTable(common.Linspace(start, end, bins), order)
}

// NewBasisTable evaluates the table over an arbitrary grid. The grid is copied.
//
// Each cell is evaluated directly rather than through an FFT: the grid is independent
// of the order and does not have to sit on integer harmonics.
func NewBasisTable(grid []float64, order int) (*BasisTable, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("empty frequency grid")
	}
	if order < 1 {
		return nil, fmt.Errorf("model order must be positive, got %d", order)
	}

	t := &BasisTable{
		grid: append([]float64(nil), grid...),
		rows: make([]BasisRow, order),
	}

	for i := 0; i < order; i++ {
		row := BasisRow{
			Real: make([]float64, len(grid)),
			Imag: make([]float64, len(grid)),
		}
		for bin, f := range t.grid {
			angle := -2 * math.Pi * f * float64(i)
			row.Real[bin] = math.Cos(angle)
			row.Imag[bin] = math.Sin(angle)
		}
		t.rows[i] = row
	}

	return t, nil
}

// Order returns the number of rows
func (t *BasisTable) Order() int {
	return len(t.rows)
}

// Bins returns the number of grid points
func (t *BasisTable) Bins() int {
	return len(t.grid)
}

// Grid returns a copy of the frequency grid
func (t *BasisTable) Grid() []float64 {
	return append([]float64(nil), t.grid...)
}

// Row returns row i. The slices are shared with the table and must not be modified.
func (t *BasisTable) Row(i int) BasisRow {
	return t.rows[i]
}

// At returns the cell for index i at grid position bin
func (t *BasisTable) At(i, bin int) complex128 {
	return complex(t.rows[i].Real[bin], t.rows[i].Imag[bin])
}

// Project evaluates Σ x[i]·e^{-j2πf·i} at every grid frequency, which is how the
// estimator evaluates its AR polynomial against the table. len(x) may not exceed Order.
func (t *BasisTable) Project(x []float64) ([]complex128, error) {
	if len(x) > len(t.rows) {
		return nil, fmt.Errorf("projection of %d coefficients exceeds model order %d", len(x), len(t.rows))
	}

	out := make([]complex128, len(t.grid))
	for bin := range t.grid {
		var re, im float64
		for i, c := range x {
			re += c * t.rows[i].Real[bin]
			im += c * t.rows[i].Imag[bin]
		}
		out[bin] = complex(re, im)
	}
	return out, nil
}
