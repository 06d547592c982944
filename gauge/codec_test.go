package gauge_test

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

var small = lattice.Shape{2, 2, 2, 3}

// TestLayoutConstants pins the on-disk sizes.
func TestLayoutConstants(t *testing.T) {
	assert.Equal(t, 144, gauge.BytesPerLink)
	assert.Equal(t, 576, gauge.BytesPerSite)
	assert.Equal(t, int64(24*24*24*48*576), gauge.ExpectedBytes(lattice.Shape{24, 24, 24, 48}))
}

// TestDecode_Identity loads the free field under the default tolerance.
func TestDecode_Identity(t *testing.T) {
	id, err := gauge.Identity(small)
	require.NoError(t, err)
	data := encode(t, id)
	require.Len(t, data, int(gauge.ExpectedBytes(small)))

	cfg, err := gauge.Decode(bytes.NewReader(data), small)
	require.NoError(t, err)
	assert.Equal(t, small, cfg.Shape())
	assert.Equal(t, small.Volume()*4, cfg.NumLinks())
	for i := 0; i < cfg.NumLinks(); i++ {
		require.Equal(t, su3.Identity(), cfg.LinkAt(i))
	}
}

// TestDecode_ExactRoundTrip checks ordering: each link lands at its site and
// direction, bit for bit.
func TestDecode_ExactRoundTrip(t *testing.T) {
	src := exactConfig(t, small)
	cfg, err := gauge.Decode(bytes.NewReader(encode(t, src)), small)
	require.NoError(t, err)

	g := cfg.Grid()
	for _, s := range g.Sites() {
		for _, d := range lattice.Directions {
			require.Equal(t, src.Link(s, d), cfg.Link(s, d), "link %s at %v", d, s)
			require.Equal(t, src.LinkAt(g.Index(s)*4+int(d)), cfg.Link(s, d))
		}
	}
}

// TestDecode_RandomRoundTrip decodes Haar-random links; their determinants
// carry rounding error, so the tolerance is relaxed.
func TestDecode_RandomRoundTrip(t *testing.T) {
	src, err := gauge.Random(small, gauge.WithSeed(7))
	require.NoError(t, err)

	cfg, err := gauge.Decode(bytes.NewReader(encode(t, src)), small, gauge.WithTolerance(1e-12))
	require.NoError(t, err)
	for i := 0; i < src.NumLinks(); i++ {
		require.Equal(t, src.LinkAt(i), cfg.LinkAt(i))
	}
}

// TestDecode_Truncated reports a shape mismatch instead of zero-filling.
func TestDecode_Truncated(t *testing.T) {
	data := encode(t, exactConfig(t, small))
	for _, cut := range []int{0, 1, gauge.BytesPerLink, len(data) - gauge.BytesPerSite, len(data) - 1} {
		cfg, err := gauge.Decode(bytes.NewReader(data[:cut]), small)
		require.Nil(t, cfg)
		require.ErrorIs(t, err, gauge.ErrShapeMismatch, "cut=%d", cut)

		var sme *gauge.ShapeMismatchError
		require.True(t, errors.As(err, &sme))
		assert.Equal(t, int64(cut), sme.Got)
		assert.Equal(t, gauge.ExpectedBytes(small), sme.Want)
		assert.False(t, sme.Trailing)
	}
}

// TestDecode_WrongShape reads a larger stream with a smaller shape.
func TestDecode_WrongShape(t *testing.T) {
	data := encode(t, exactConfig(t, small))
	_, err := gauge.Decode(bytes.NewReader(data), lattice.Shape{2, 2, 2, 2})

	var sme *gauge.ShapeMismatchError
	require.ErrorAs(t, err, &sme)
	assert.True(t, sme.Trailing)
	assert.Contains(t, err.Error(), "trailing data")
}

// TestDecode_BadShape rejects non-positive extents before reading.
func TestDecode_BadShape(t *testing.T) {
	_, err := gauge.Decode(bytes.NewReader(nil), lattice.Shape{2, 0, 2, 2})
	assert.ErrorIs(t, err, lattice.ErrBadShape)
}

// TestDecode_HugeShape reports an oversized shape against a short stream as
// a mismatch, and an overflowing one as a bad shape, without allocating for
// the declared volume.
func TestDecode_HugeShape(t *testing.T) {
	one, err := gauge.Identity(lattice.Shape{1, 1, 1, 1})
	require.NoError(t, err)
	data := encode(t, one)

	huge := lattice.Shape{1000, 1000, 1000, 1000}
	_, err = gauge.Decode(bytes.NewReader(data), huge)
	var sme *gauge.ShapeMismatchError
	require.ErrorAs(t, err, &sme)
	assert.Equal(t, int64(1000*1000*1000*1000)*gauge.BytesPerSite, sme.Want)
	assert.Equal(t, int64(gauge.BytesPerSite), sme.Got)

	recs, err := gauge.Inspect(bytes.NewReader(data), huge, 0)
	require.ErrorIs(t, err, gauge.ErrShapeMismatch)
	assert.Len(t, recs, lattice.Dims)

	_, err = gauge.Decode(bytes.NewReader(data), lattice.Shape{100000, 100000, 100000, 100000})
	assert.ErrorIs(t, err, lattice.ErrBadShape)
}

// TestDecode_PerturbedLink identifies the exact offending link.
func TestDecode_PerturbedLink(t *testing.T) {
	id, err := gauge.Identity(small)
	require.NoError(t, err)
	data := encode(t, id)

	g := id.Grid()
	bad := lattice.Site{1, 0, 1, 2}
	k := g.Index(bad)*lattice.Dims + int(lattice.Z)
	setEntry(data, k, 0, 0, 1.001)

	cfg, err := gauge.Decode(bytes.NewReader(data), small)
	require.Nil(t, cfg, "no partial configuration on failure")
	require.ErrorIs(t, err, gauge.ErrNotSpecialUnitary)

	var ue *gauge.UnitarityError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, bad, ue.Site)
	assert.Equal(t, lattice.Z, ue.Direction)
	assert.Equal(t, k, ue.Link)
	assert.InDelta(t, 0.001, ue.Deviation.Real, 1e-12)
	assert.Zero(t, ue.Deviation.Imag)
	assert.Equal(t, gauge.DefaultTolerance, ue.Tolerance)
	assert.Contains(t, err.Error(), "(1, 0, 1, 2) in z direction")
}

// TestDecode_ImaginaryDeterminant flags a determinant with a phase.
func TestDecode_ImaginaryDeterminant(t *testing.T) {
	id, err := gauge.Identity(small)
	require.NoError(t, err)
	data := encode(t, id)
	setEntry(data, 0, 2, 2, complex(0.6, 0.8)) // det = e^{i·0.927}

	_, err = gauge.Decode(bytes.NewReader(data), small)
	var ue *gauge.UnitarityError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, lattice.Site{}, ue.Site)
	assert.Equal(t, lattice.X, ue.Direction)
	assert.InDelta(t, 0.4/0.6, ue.Deviation.Real, 1e-12)
	assert.InDelta(t, 0.8, ue.Deviation.Imag, 1e-12)
}

// TestDecode_ToleranceOption lets a custom tolerance accept a small error.
func TestDecode_ToleranceOption(t *testing.T) {
	id, err := gauge.Identity(small)
	require.NoError(t, err)
	data := encode(t, id)
	setEntry(data, 5, 1, 1, 1+1e-10)

	_, err = gauge.Decode(bytes.NewReader(data), small)
	require.ErrorIs(t, err, gauge.ErrNotSpecialUnitary)

	_, err = gauge.Decode(bytes.NewReader(data), small, gauge.WithTolerance(1e-9))
	require.NoError(t, err)

	assert.Panics(t, func() { gauge.WithTolerance(0) })
	assert.Panics(t, func() { gauge.WithTolerance(-1) })
}

type failingReader struct {
	after int
	err   error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, f.err
	}
	n := len(p)
	if n > f.after {
		n = f.after
	}
	for i := 0; i < n; i++ {
		p[i] = 0
	}
	f.after -= n

	return n, nil
}

// TestDecode_IOError separates read failures from short streams.
func TestDecode_IOError(t *testing.T) {
	boom := errors.New("disk on fire")
	_, err := gauge.Decode(&failingReader{after: 10, err: boom}, small)
	require.ErrorIs(t, err, gauge.ErrIO)
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, gauge.ErrShapeMismatch)
}

// TestInspect_Limit reads only the first links in stream order.
func TestInspect_Limit(t *testing.T) {
	src := exactConfig(t, small)
	data := encode(t, src)

	recs, err := gauge.Inspect(bytes.NewReader(data), small, 6)
	require.NoError(t, err)
	require.Len(t, recs, 6)
	assert.Equal(t, lattice.Site{0, 0, 0, 0}, recs[3].Site)
	assert.Equal(t, lattice.T, recs[3].Direction)
	assert.Equal(t, lattice.Site{1, 0, 0, 0}, recs[4].Site)
	assert.Equal(t, lattice.X, recs[4].Direction)
	for i, r := range recs {
		assert.Equal(t, i, r.Link)
		assert.Equal(t, src.LinkAt(i), r.Matrix)
		assert.Equal(t, complex128(1), r.Deviation.Det)
	}

	// the sample needs only its own bytes
	recs, err = gauge.Inspect(bytes.NewReader(data[:2*gauge.BytesPerLink]), small, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	all, err := gauge.Inspect(bytes.NewReader(data), small, 0)
	require.NoError(t, err)
	assert.Len(t, all, src.NumLinks())
}

// TestInspect_StopsAtInvalid returns the good prefix with the error.
func TestInspect_StopsAtInvalid(t *testing.T) {
	id, err := gauge.Identity(small)
	require.NoError(t, err)
	data := encode(t, id)
	setEntry(data, 2, 0, 0, 2)

	recs, err := gauge.Inspect(bytes.NewReader(data), small, 10)
	require.ErrorIs(t, err, gauge.ErrNotSpecialUnitary)
	assert.Len(t, recs, 2)

	_, err = gauge.Inspect(bytes.NewReader(data[:10]), small, 1)
	assert.ErrorIs(t, err, gauge.ErrShapeMismatch)
}

// TestDecode_LinkTrace emits one record per link on the link channel.
func TestDecode_LinkTrace(t *testing.T) {
	var logBuf bytes.Buffer
	set := diag.Set(0).With(diag.Link)
	ctx := diag.NewContext(diag.NewLogger(&logBuf, "info", "text", set), set)

	shape := lattice.Shape{1, 1, 1, 1}
	id, err := gauge.Identity(shape)
	require.NoError(t, err)
	_, err = gauge.Decode(bytes.NewReader(encode(t, id)), shape, gauge.WithContext(ctx))
	require.NoError(t, err)

	assert.Equal(t, 4, bytes.Count(logBuf.Bytes(), []byte("channel=link")))
	assert.Contains(t, logBuf.String(), "direction=t")
}

// TestEncode_WriteError surfaces writer failures as ErrIO.
func TestEncode_WriteError(t *testing.T) {
	id, err := gauge.Identity(lattice.Shape{4, 4, 4, 4})
	require.NoError(t, err)
	err = gauge.Encode(errWriter{}, id)
	assert.ErrorIs(t, err, gauge.ErrIO)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

type errWriter struct{}

func (errWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }
