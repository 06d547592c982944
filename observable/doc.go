// Package observable evaluates gauge-invariant observables on a loaded
// configuration: plaquettes and rectangular Wilson loops, together with the
// lattice-wide averages a sweep reports.
//
// Every value is the trace of an ordered product of links around a closed
// path, normalized by 1/3 so the free field (all links identity) gives
// exactly 1. An Evaluator only reads its configuration; all methods are safe
// for concurrent use.
//
// Wilson loops are anchored at the starting site and walk backwards first:
// T steps against the time direction, R steps against the spatial direction,
// then T forward and R forward, back to the start. A forward step multiplies
// by U_d(p) and moves to p+d; a backward step moves to p-d and multiplies by
// U_d(p)^†. With this orientation
//
//	W(s, i, 1, 1) = conj(P(s - t - i; plane (i, t)))
//
// so the 1×1 loop is the conjugate of the plaquette anchored at the loop's
// far corner.
package observable
