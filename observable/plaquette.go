package observable

import (
	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/lattice"
)

// Plaquette returns tr(U_mu(s) U_nu(s+mu) U_mu(s+nu)^† U_nu(s)^†)/3 for
// the plane p = (mu, nu).
func (e *Evaluator) Plaquette(s lattice.Site, p lattice.Plane) complex128 {
	w := e.walkFrom(s)
	w.forward(p.Mu, 1)
	w.forward(p.Nu, 1)
	w.backward(p.Mu, 1)
	w.backward(p.Nu, 1)

	return w.acc.NormTrace()
}

// MeanPlaquette averages Plaquette over the six planes at s. The spatial and
// temporal partial means go to the plaquette trace channel.
func (e *Evaluator) MeanPlaquette(s lattice.Site) complex128 {
	var spatial, temporal complex128
	for _, p := range lattice.Planes() {
		v := e.Plaquette(s, p)
		if p.Temporal() {
			temporal += v
		} else {
			spatial += v
		}
	}
	if e.ctx.Enabled(diag.Plaquette) {
		e.ctx.Tracef(diag.Plaquette, "site %s: spatial %v temporal %v", s, spatial/3, temporal/3)
	}

	return (spatial + temporal) / 6
}

// OverallPlaquetteMean is the mean of real(MeanPlaquette) over all sites.
func (e *Evaluator) OverallPlaquetteMean() float64 {
	var sum float64
	for idx := 0; idx < e.grid.Volume(); idx++ {
		sum += real(e.MeanPlaquette(e.grid.Coordinate(idx)))
	}
	mean := sum / float64(e.grid.Volume())
	e.ctx.Tracef(diag.Plaquette, "overall plaquette mean %.16g", mean)

	return mean
}
