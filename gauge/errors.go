package gauge

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

var (
	// ErrNotSpecialUnitary indicates a link whose determinant is not 1+0i
	// within tolerance.
	ErrNotSpecialUnitary = errors.New("gauge: link is not special unitary")

	// ErrShapeMismatch indicates that the stream length does not match the
	// declared lattice shape.
	ErrShapeMismatch = errors.New("gauge: stream length does not match shape")

	// ErrIO indicates a read or write failure other than a short stream.
	ErrIO = errors.New("gauge: i/o failure")

	// ErrLinkCount indicates a link or transform slice of the wrong length.
	ErrLinkCount = errors.New("gauge: link count does not match shape")

	// ErrNeedRandSource indicates a stochastic builder without an RNG.
	ErrNeedRandSource = errors.New("gauge: random source required")
)

// UnitarityError reports the first link that failed the determinant test.
type UnitarityError struct {
	Site      lattice.Site
	Direction lattice.Direction
	Link      int // ordinal of the link in stream order
	Deviation su3.Deviation
	Tolerance float64
}

func (e *UnitarityError) Error() string {
	return fmt.Sprintf("gauge: link %d at %s in %s direction is not special unitary: det=%v, relative deviations %g and %g (tolerance %g)",
		e.Link, e.Site, e.Direction, e.Deviation.Det, e.Deviation.Real, e.Deviation.Imag, e.Tolerance)
}

// Unwrap lets errors.Is match ErrNotSpecialUnitary.
func (e *UnitarityError) Unwrap() error { return ErrNotSpecialUnitary }

// ShapeMismatchError reports a stream whose length disagrees with Shape.
// Got is the number of bytes observed; with Trailing set the stream had at
// least one byte beyond Want.
type ShapeMismatchError struct {
	Shape    lattice.Shape
	Want     int64
	Got      int64
	Trailing bool
}

func (e *ShapeMismatchError) Error() string {
	if e.Trailing {
		return fmt.Sprintf("gauge: shape %s needs %d bytes but the stream has trailing data", e.Shape, e.Want)
	}

	return fmt.Sprintf("gauge: shape %s needs %d bytes but the stream has %d", e.Shape, e.Want, e.Got)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error { return ErrShapeMismatch }

func ioErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrIO, err)
}
