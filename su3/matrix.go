// SPDX-License-Identifier: MIT

package su3

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"
)

// N is the number of colors (matrix rank).
const N = 3

// invN normalizes traces so that the identity maps to exactly 1.
const invN = 1.0 / N

// Matrix is a 3×3 complex matrix in row-major order: M[row][col].
type Matrix [N][N]complex128

// Identity returns the 3×3 identity.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
}

// Diag returns the diagonal matrix diag(a, b, c).
func Diag(a, b, c complex128) Matrix {
	return Matrix{
		{a, 0, 0},
		{0, b, 0},
		{0, 0, c},
	}
}

// Mul returns the ordered product a·b. Matrix multiplication does not
// commute; path products must be accumulated in traversal order.
func (a Matrix) Mul(b Matrix) Matrix {
	var r Matrix
	var i, j int
	for i = 0; i < N; i++ {
		for j = 0; j < N; j++ {
			r[i][j] = a[i][0]*b[0][j] + a[i][1]*b[1][j] + a[i][2]*b[2][j]
		}
	}

	return r
}

// Dagger returns the conjugate transpose a^†.
func (a Matrix) Dagger() Matrix {
	var r Matrix
	var i, j int
	for i = 0; i < N; i++ {
		for j = 0; j < N; j++ {
			r[i][j] = cmplx.Conj(a[j][i])
		}
	}

	return r
}

// Det returns the determinant by cofactor expansion along the first row.
func (a Matrix) Det() complex128 {
	return a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
		a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
		a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
}

// Trace returns the sum of the diagonal.
func (a Matrix) Trace() complex128 {
	return a[0][0] + a[1][1] + a[2][2]
}

// NormTrace returns Trace()/3, so the identity yields exactly 1 and any
// unitary matrix yields a value of modulus <= 1.
func (a Matrix) NormTrace() complex128 {
	return a.Trace() * complex(invN, 0)
}

// Scale returns s·a.
func (a Matrix) Scale(s complex128) Matrix {
	var r Matrix
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			r[i][j] = s * a[i][j]
		}
	}

	return r
}

// Sub returns a - b.
func (a Matrix) Sub(b Matrix) Matrix {
	var r Matrix
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			r[i][j] = a[i][j] - b[i][j]
		}
	}

	return r
}

// FrobeniusNorm returns sqrt(Σ|a_ij|²).
func (a Matrix) FrobeniusNorm() float64 {
	var s, v float64
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			v = cmplx.Abs(a[i][j])
			s += v * v
		}
	}

	return math.Sqrt(s)
}

// ApproxEqual reports whether every entry of a and b differs by at most eps
// in modulus.
func (a Matrix) ApproxEqual(b Matrix, eps float64) bool {
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if cmplx.Abs(a[i][j]-b[i][j]) > eps {
				return false
			}
		}
	}

	return true
}

// IsFinite reports whether no entry has a NaN or infinite component.
func (a Matrix) IsFinite() bool {
	for i := 0; i < N; i++ {
		for j := 0; j < N; j++ {
			if cmplx.IsNaN(a[i][j]) || cmplx.IsInf(a[i][j]) {
				return false
			}
		}
	}

	return true
}

// String renders the matrix one row per line, entries as "(re, im)".
func (a Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < N; i++ {
		sb.WriteString("[")
		for j := 0; j < N; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "(%g, %g)", real(a[i][j]), imag(a[i][j]))
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
