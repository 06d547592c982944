// SPDX-License-Identifier: MIT

package su3

import (
	"math"
	"math/cmplx"
	"math/rand"
)

type vec3 [N]complex128

// maxDraws bounds the redraws in Random and RandomNear.
const maxDraws = 64

// Random draws a special-unitary matrix from rng.
//
// Rows u and v come from Gram-Schmidt over Gaussian complex vectors; the third
// row is conj(u × v), which makes the rows orthonormal with det = |u×v|² = 1.
// The third row is then divided by the computed determinant, and a draw whose
// determinant still fails CheckSpecialUnitary at DefaultTolerance is
// replaced, so stored draws pass the loader's default test.
// The same seed always yields the same matrix.
func Random(rng *rand.Rand) Matrix {
	var m Matrix
	for i := 0; i < maxDraws; i++ {
		var ok bool
		if m, ok = unitDet(draw(rng)); ok {
			break
		}
	}

	return m
}

func draw(rng *rand.Rand) Matrix {
	u := normalize(gaussianVec(rng))

	// v = r - <u,r> u, retried in the (measure-zero) degenerate case
	var v vec3
	for {
		r := gaussianVec(rng)
		p := inner(u, r)
		for i := 0; i < N; i++ {
			r[i] -= p * u[i]
		}
		if norm(r) > 1e-8 {
			v = normalize(r)
			break
		}
	}

	w := cross(u, v)
	for i := 0; i < N; i++ {
		w[i] = cmplx.Conj(w[i])
	}

	return Matrix{u, v, w}
}

// RandomNear returns g·diag(e^{ia}, e^{ib}, e^{-i(a+b)})·g^† with
// |a|, |b| <= eps and g = Random(rng): a special-unitary matrix whose distance
// from the identity is controlled by eps. Small eps models a smooth field.
// Like Random, the result passes CheckSpecialUnitary at DefaultTolerance.
func RandomNear(rng *rand.Rand, eps float64) Matrix {
	var m Matrix
	for i := 0; i < maxDraws; i++ {
		a := eps * (2*rng.Float64() - 1)
		b := eps * (2*rng.Float64() - 1)
		d := Diag(cmplx.Rect(1, a), cmplx.Rect(1, b), cmplx.Rect(1, -a-b))
		g := Random(rng)

		var ok bool
		if m, ok = unitDet(g.Mul(d).Mul(g.Dagger())); ok {
			break
		}
	}

	return m
}

// unitDet divides the last row of m by det(m) and reports whether the result
// passes the determinant test at DefaultTolerance.
func unitDet(m Matrix) (Matrix, bool) {
	det := m.Det()
	if det == 0 {
		return m, false
	}
	for j := 0; j < N; j++ {
		m[N-1][j] /= det
	}
	_, ok := CheckSpecialUnitary(m, DefaultTolerance)

	return m, ok
}

func gaussianVec(rng *rand.Rand) vec3 {
	var v vec3
	for i := 0; i < N; i++ {
		v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}

	return v
}

// inner returns <a,b> = Σ conj(a_i) b_i.
func inner(a, b vec3) complex128 {
	var s complex128
	for i := 0; i < N; i++ {
		s += cmplx.Conj(a[i]) * b[i]
	}

	return s
}

func norm(a vec3) float64 {
	return math.Sqrt(real(inner(a, a)))
}

func normalize(a vec3) vec3 {
	inv := complex(1/norm(a), 0)
	for i := 0; i < N; i++ {
		a[i] *= inv
	}

	return a
}

func cross(a, b vec3) vec3 {
	return vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
