package stats

import (
	"errors"
	"fmt"
)

// ErrDegenerateSample indicates a sample too small for the requested statistic.
var ErrDegenerateSample = errors.New("stats: degenerate sample")

// DegenerateSampleError carries the size that was rejected.
type DegenerateSampleError struct {
	Op   string
	N    int
	Need int
}

func (e *DegenerateSampleError) Error() string {
	return fmt.Sprintf("stats: %s needs at least %d values, got %d", e.Op, e.Need, e.N)
}

// Unwrap lets errors.Is match ErrDegenerateSample.
func (e *DegenerateSampleError) Unwrap() error { return ErrDegenerateSample }

func requireN(op string, xs []float64, need int) error {
	if len(xs) < need {
		return &DegenerateSampleError{Op: op, N: len(xs), Need: need}
	}

	return nil
}
