package gauge_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
)

// FileSuite round-trips one fixture through every container.
type FileSuite struct {
	suite.Suite
	dir   string
	shape lattice.Shape
	cfg   *gauge.Configuration
}

func (s *FileSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.shape = lattice.Shape{2, 3, 2, 2}
	s.cfg = exactConfig(s.T(), s.shape)
}

func (s *FileSuite) roundTrip(name string) {
	path := filepath.Join(s.dir, name)
	s.Require().NoError(gauge.Save(path, s.cfg))

	got, err := gauge.Load(path, s.shape)
	s.Require().NoError(err)
	s.Equal(s.shape, got.Shape())
	for i := 0; i < s.cfg.NumLinks(); i++ {
		s.Require().Equal(s.cfg.LinkAt(i), got.LinkAt(i))
	}
}

func (s *FileSuite) TestRaw()  { s.roundTrip("config.bin") }
func (s *FileSuite) TestGzip() { s.roundTrip("config.bin.gz") }
func (s *FileSuite) TestZstd() { s.roundTrip("config.bin.zst") }

func (s *FileSuite) TestRawSizeCheckedFirst() {
	path := filepath.Join(s.dir, "config.bin")
	s.Require().NoError(gauge.Save(path, s.cfg))

	_, err := gauge.Load(path, lattice.Shape{2, 3, 2, 3})
	var sme *gauge.ShapeMismatchError
	s.Require().ErrorAs(err, &sme)
	s.Equal(gauge.ExpectedBytes(s.shape), sme.Got)
	s.False(sme.Trailing)

	_, err = gauge.Load(path, lattice.Shape{2, 3, 2, 1})
	s.Require().ErrorAs(err, &sme)
	s.True(sme.Trailing)
}

func (s *FileSuite) TestCompressedWrongShape() {
	path := filepath.Join(s.dir, "config.bin.zst")
	s.Require().NoError(gauge.Save(path, s.cfg))

	_, err := gauge.Load(path, lattice.Shape{2, 3, 2, 3})
	s.ErrorIs(err, gauge.ErrShapeMismatch)
}

func (s *FileSuite) TestCompressedHugeShape() {
	for _, name := range []string{"config.bin.gz", "config.bin.zst"} {
		path := filepath.Join(s.dir, name)
		s.Require().NoError(gauge.Save(path, s.cfg))

		_, err := gauge.Load(path, lattice.Shape{1000, 1000, 1000, 1000})
		s.ErrorIs(err, gauge.ErrShapeMismatch, name)

		_, err = gauge.Load(path, lattice.Shape{100000, 100000, 100000, 100000})
		s.ErrorIs(err, lattice.ErrBadShape, name)
	}
}

func (s *FileSuite) TestMissingFile() {
	_, err := gauge.Load(filepath.Join(s.dir, "nope.bin"), s.shape)
	s.ErrorIs(err, gauge.ErrIO)
	s.ErrorIs(err, os.ErrNotExist)

	_, err = gauge.OpenStream(filepath.Join(s.dir, "nope.gz"))
	s.ErrorIs(err, gauge.ErrIO)
}

func (s *FileSuite) TestCorruptGzip() {
	path := filepath.Join(s.dir, "junk.gz")
	s.Require().NoError(os.WriteFile(path, []byte("not gzip"), 0o600))

	_, err := gauge.Load(path, s.shape)
	s.ErrorIs(err, gauge.ErrIO)
}

func (s *FileSuite) TestBadShape() {
	_, err := gauge.Load(filepath.Join(s.dir, "x.bin"), lattice.Shape{0, 1, 1, 1})
	s.ErrorIs(err, lattice.ErrBadShape)
}

func TestFileSuite(t *testing.T) {
	suite.Run(t, new(FileSuite))
}

func TestCompressionFor(t *testing.T) {
	cases := map[string]gauge.Compression{
		"a.bin":       gauge.Raw,
		"a":           gauge.Raw,
		"a.bin.gz":    gauge.Gzip,
		"A.GZ":        gauge.Gzip,
		"a.zst":       gauge.Zstd,
		"dir/a.zstd":  gauge.Zstd,
		"a.gz/config": gauge.Raw,
	}
	for path, want := range cases {
		require.Equal(t, want, gauge.CompressionFor(path), path)
	}
}
