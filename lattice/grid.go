package lattice

// Grid is an immutable periodic 4D grid. Safe for concurrent use.
type Grid struct {
	shape   Shape
	strides Shape // index stride per direction: x=1, y=Lx, z=Lx·Ly, t=Lx·Ly·Lz
	volume  int
}

// NewGrid validates shape and precomputes strides.
// Returns ErrBadShape if any extent is smaller than 1 or the volume exceeds
// MaxVolume.
func NewGrid(shape Shape) (*Grid, error) {
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{shape: shape, volume: shape.Volume()}
	stride := 1
	for _, d := range Directions {
		g.strides[d] = stride
		stride *= shape[d]
	}

	return g, nil
}

// MustGrid is NewGrid that panics on error. For fixtures and constants.
func MustGrid(shape Shape) *Grid {
	g, err := NewGrid(shape)
	if err != nil {
		panic(err)
	}

	return g
}

// Shape returns the extents.
func (g *Grid) Shape() Shape { return g.shape }

// Volume returns the number of sites.
func (g *Grid) Volume() int { return g.volume }

// InBounds reports whether every coordinate of s lies in [0, extent).
func (g *Grid) InBounds(s Site) bool {
	for _, d := range Directions {
		if s[d] < 0 || s[d] >= g.shape[d] {
			return false
		}
	}

	return true
}

// MovePoint returns s shifted by amount steps along d, wrapped with floored
// modulo so negative amounts walk backwards around the torus.
//
//	MovePoint(MovePoint(s, d, k), d, -k) == s
//	MovePoint(s, d, extent[d]) == s
func (g *Grid) MovePoint(s Site, d Direction, amount int) Site {
	n := g.shape[d]
	v := (s[d] + amount) % n
	if v < 0 {
		v += n
	}
	s[d] = v

	return s
}

// Index maps an in-bounds site to its storage position:
// ((t·Lz + z)·Ly + y)·Lx + x.
func (g *Grid) Index(s Site) int {
	return s[X]*g.strides[X] + s[Y]*g.strides[Y] + s[Z]*g.strides[Z] + s[T]*g.strides[T]
}

// Coordinate converts a storage index back to a site.
func (g *Grid) Coordinate(idx int) Site {
	var s Site
	for _, d := range Directions {
		s[d] = idx % g.shape[d]
		idx /= g.shape[d]
	}

	return s
}

// Sites returns every site in storage order (t outer, then z, y, x inner).
// Allocates Volume() sites; hot loops should iterate indices with Coordinate.
func (g *Grid) Sites() []Site {
	out := make([]Site, g.volume)
	for i := range out {
		out[i] = g.Coordinate(i)
	}

	return out
}
