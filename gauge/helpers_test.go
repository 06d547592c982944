package gauge_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

// encode serializes cfg into a fresh byte slice.
func encode(t testing.TB, cfg *gauge.Configuration) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gauge.Encode(&buf, cfg))

	return buf.Bytes()
}

// exactConfig builds a configuration whose links have determinant exactly 1
// in floating point, cycling through a few distinct matrices.
func exactConfig(t testing.TB, shape lattice.Shape) *gauge.Configuration {
	t.Helper()
	pool := []su3.Matrix{
		su3.Identity(),
		su3.Diag(1i, -1i, 1),
		su3.Diag(-1, -1, 1),
		{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		{{0, 0, 1i}, {1i, 0, 0}, {0, -1, 0}},
	}
	links := make([]su3.Matrix, shape.Volume()*lattice.Dims)
	for i := range links {
		links[i] = pool[i%len(pool)]
	}
	cfg, err := gauge.FromLinks(shape, links)
	require.NoError(t, err)

	return cfg
}

// setEntry overwrites entry (row,col) of link k in an encoded stream.
func setEntry(data []byte, k, row, col int, v complex128) {
	off := k*gauge.BytesPerLink + (row*su3.N+col)*gauge.BytesPerEntry
	binary.NativeEndian.PutUint64(data[off:], math.Float64bits(real(v)))
	binary.NativeEndian.PutUint64(data[off+8:], math.Float64bits(imag(v)))
}
