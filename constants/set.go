package constants

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Names are the definition names of the four constants
type Names struct {
	SampleCount string
	FreqBins    string
	FreqStart   string
	FreqEnd     string
}

// Set is the validated constant set consumed by the rest of the pipeline
type Set struct {
	SampleCount int     // samples held by the bounded queue
	FreqBins    int     // points on the frequency grid
	FreqStart   float64 // first grid frequency, cycles per sample
	FreqEnd     float64 // last grid frequency, cycles per sample
}

// optional is a value that stays unknown until a source defines it
type optional[T any] struct {
	value T
	known bool
}

// Load resolves the sample count from queue and the grid constants from grid,
// then validates all four in one step. Every problem found is reported together.
func Load(queue, grid Provider, names Names) (Set, error) {
	var (
		sampleCount optional[int]
		freqBins    optional[int]
		freqStart   optional[float64]
		freqEnd     optional[float64]
		problems    []string
	)

	resolve := func(p Provider, name string, parse func(Definition) error) {
		def, ok := p.Lookup(name)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s is not defined in %s", name, p.Source()))
			return
		}
		if err := parse(def); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %s: %v", def.Where(), name, err))
		}
	}

	resolve(queue, names.SampleCount, func(d Definition) error { return parseInt(d.Value, &sampleCount) })
	resolve(grid, names.FreqBins, func(d Definition) error { return parseInt(d.Value, &freqBins) })
	resolve(grid, names.FreqStart, func(d Definition) error { return parseReal(d.Value, &freqStart) })
	resolve(grid, names.FreqEnd, func(d Definition) error { return parseReal(d.Value, &freqEnd) })

	if sampleCount.known && sampleCount.value < 1 {
		problems = append(problems, fmt.Sprintf("%s must be positive, got %d", names.SampleCount, sampleCount.value))
	}
	if freqBins.known && freqBins.value < 1 {
		problems = append(problems, fmt.Sprintf("%s must be positive, got %d", names.FreqBins, freqBins.value))
	}

	if len(problems) > 0 {
		return Set{}, &ConfigurationError{Problems: problems}
	}

	return Set{
		SampleCount: sampleCount.value,
		FreqBins:    freqBins.value,
		FreqStart:   freqStart.value,
		FreqEnd:     freqEnd.value,
	}, nil
}

// parseInt accepts C integer literals: decimal, 0x hex, 0 octal, with u/l suffixes
func parseInt(lit string, dst *optional[int]) error {
	s := strings.TrimRight(lit, "uUlL")
	n, err := strconv.ParseInt(s, 0, 0)
	if err != nil {
		return fmt.Errorf("%q is not an integer literal", lit)
	}
	dst.value, dst.known = int(n), true
	return nil
}

// parseReal accepts finite C floating literals, with an optional f/l suffix
func parseReal(lit string, dst *optional[float64]) error {
	s := lit
	if !strings.HasPrefix(strings.ToLower(strings.TrimLeft(s, "+-")), "0x") {
		s = strings.TrimRight(s, "fFlL")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%q is not a finite real literal", lit)
	}
	dst.value, dst.known = v, true
	return nil
}
