// SPDX-License-Identifier: MIT
// Package: su3
//
// Purpose:
//   - Single source of truth for the special-unitarity checks applied to
//     stored link variables.
//   - All checks are pure and allocate nothing.

package su3

import "math"

// DefaultTolerance is the relative tolerance the determinant test uses.
// Random and RandomNear draws meet it. Products of links, such as gauge
// transformed ones, may exceed it; load those with a looser tolerance.
const DefaultTolerance = 1.5e-15

// RelativeDifference returns |(value-target)/min(value, target)|.
//
// A zero or sign-crossing denominator yields +Inf or a large value and NaN
// propagates; none of these pass a "< tol" test.
func RelativeDifference(value, target float64) float64 {
	return math.Abs((value - target) / math.Min(value, target))
}

// Deviation reports how far a matrix is from having determinant 1+0i.
type Deviation struct {
	Det  complex128 // computed determinant
	Real float64    // RelativeDifference(real(Det), 1)
	Imag float64    // RelativeDifference(imag(Det)+1, 1)
}

// Within reports whether both deviations are strictly below tol.
func (d Deviation) Within(tol float64) bool {
	return d.Real < tol && d.Imag < tol
}

// CheckSpecialUnitary computes the determinant of m and reports its deviation
// from 1+0i together with the verdict under tol.
//
// The imaginary part is shifted by +1 so both components go through the same
// relative comparison against 1.
func CheckSpecialUnitary(m Matrix, tol float64) (Deviation, bool) {
	det := m.Det()
	d := Deviation{
		Det:  det,
		Real: RelativeDifference(real(det), 1.0),
		Imag: RelativeDifference(imag(det)+1.0, 1.0),
	}

	return d, d.Within(tol)
}

// IsUnitary reports whether m·m^† equals the identity within eps entrywise.
// The loader only checks the determinant; this stronger test is for
// fixtures and diagnostics.
func IsUnitary(m Matrix, eps float64) bool {
	return m.Mul(m.Dagger()).ApproxEqual(Identity(), eps)
}
