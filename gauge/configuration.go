package gauge

import (
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

// Configuration is an immutable gauge field: one su3.Matrix per
// (site, direction). It has no mutators; every method is safe for
// concurrent use.
type Configuration struct {
	grid  *lattice.Grid
	links []su3.Matrix // site-major: links[grid.Index(s)*Dims + d]
}

// newConfiguration takes ownership of links; len(links) must be Volume·4.
func newConfiguration(grid *lattice.Grid, links []su3.Matrix) *Configuration {
	return &Configuration{grid: grid, links: links}
}

// Grid returns the lattice the configuration lives on.
func (c *Configuration) Grid() *lattice.Grid { return c.grid }

// Shape returns the lattice extents.
func (c *Configuration) Shape() lattice.Shape { return c.grid.Shape() }

// NumLinks returns Volume·4.
func (c *Configuration) NumLinks() int { return len(c.links) }

// Link returns U_d(s). s must be in bounds.
func (c *Configuration) Link(s lattice.Site, d lattice.Direction) su3.Matrix {
	return c.links[c.grid.Index(s)*lattice.Dims+int(d)]
}

// LinkAt returns the link with stream ordinal i (site index·4 + direction).
func (c *Configuration) LinkAt(i int) su3.Matrix {
	return c.links[i]
}
