package lattice

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadShape indicates an extent smaller than 1 in some direction, or a
// volume above MaxVolume.
var ErrBadShape = errors.New("lattice: invalid shape")

// MaxVolume bounds the number of sites a Shape may describe. Byte counts of
// four 144-byte links per site stay within int64 below it.
const MaxVolume = math.MaxInt64 / (Dims * 144)

// Dims is the number of space-time dimensions.
const Dims = 4

// Direction selects one axis of the lattice.
type Direction int

const (
	// X is the first spatial direction.
	X Direction = iota
	// Y is the second spatial direction.
	Y
	// Z is the third spatial direction.
	Z
	// T is the temporal direction.
	T
)

// Directions lists all axes in storage order.
var Directions = [Dims]Direction{X, Y, Z, T}

// SpatialDirections lists the three spatial axes.
var SpatialDirections = [Dims - 1]Direction{X, Y, Z}

var directionNames = [Dims]string{"x", "y", "z", "t"}

// String returns "x", "y", "z" or "t".
func (d Direction) String() string {
	if d < X || d > T {
		return fmt.Sprintf("Direction(%d)", int(d))
	}

	return directionNames[d]
}

// Spatial reports whether d is one of X, Y, Z.
func (d Direction) Spatial() bool { return d >= X && d < T }

// Valid reports whether d names an axis.
func (d Direction) Valid() bool { return d >= X && d <= T }

// Shape holds the extent of the lattice in each direction, indexed by Direction.
type Shape [Dims]int

// Volume returns Lx·Ly·Lz·Lt.
func (s Shape) Volume() int {
	return s[X] * s[Y] * s[Z] * s[T]
}

// Validate returns ErrBadShape if any extent is smaller than 1 or the
// volume exceeds MaxVolume.
func (s Shape) Validate() error {
	for _, d := range Directions {
		if s[d] < 1 {
			return fmt.Errorf("%v: extent %s=%d must be at least 1: %w", s, d, s[d], ErrBadShape)
		}
	}
	vol := 1
	for _, d := range Directions {
		if vol > MaxVolume/s[d] {
			return fmt.Errorf("%v: volume exceeds %d sites: %w", s, MaxVolume, ErrBadShape)
		}
		vol *= s[d]
	}

	return nil
}

// String renders the shape as "LxxLyxLzxLt".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%dx%dx%d", s[X], s[Y], s[Z], s[T])
}

// ParseShape reads four extents separated by commas or 'x', in x, y, z, t
// order: "24,24,24,48" and "24x24x24x48" are equivalent. The result is
// validated.
func ParseShape(text string) (Shape, error) {
	var s Shape
	parts := strings.FieldsFunc(strings.TrimSpace(text), func(r rune) bool {
		return r == ',' || r == 'x' || r == 'X'
	})
	if len(parts) != Dims {
		return s, fmt.Errorf("lattice: shape %q: want %d extents, got %d: %w", text, Dims, len(parts), ErrBadShape)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return s, fmt.Errorf("lattice: shape %q: %w: %w", text, ErrBadShape, err)
		}
		s[i] = n
	}
	if err := s.Validate(); err != nil {
		return s, err
	}

	return s, nil
}

// Site is a lattice point (x, y, z, t), indexed by Direction.
type Site [Dims]int

// String renders the site as "(x, y, z, t)".
func (s Site) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", s[X], s[Y], s[Z], s[T])
}

// Plane is an unordered pair of distinct directions with Mu < Nu.
type Plane struct {
	Mu, Nu Direction
}

// Temporal reports whether the plane contains the time axis.
func (p Plane) Temporal() bool { return p.Mu == T || p.Nu == T }

// String renders the plane as e.g. "xt".
func (p Plane) String() string { return p.Mu.String() + p.Nu.String() }

// Planes returns the six planes in lexicographic order:
// xy, xz, xt, yz, yt, zt.
func Planes() []Plane {
	out := make([]Plane, 0, 6)
	for mu := X; mu <= T; mu++ {
		for nu := mu + 1; nu <= T; nu++ {
			out = append(out, Plane{Mu: mu, Nu: nu})
		}
	}

	return out
}
