package gauge

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

// Layout constants of the binary format.
const (
	BytesPerEntry = 16                            // real + imaginary float64
	BytesPerLink  = su3.N * su3.N * BytesPerEntry // 144
	BytesPerSite  = lattice.Dims * BytesPerLink   // 576
	readBufSites  = 64                            // bufio size in sites
	maxPrealloc   = 1 << 16                       // links reserved before any are read
)

const (
	opDecode  = "gauge.Decode"
	opInspect = "gauge.Inspect"
	opEncode  = "gauge.Encode"
)

// ExpectedBytes returns the exact stream length for shape.
func ExpectedBytes(shape lattice.Shape) int64 {
	return int64(shape.Volume()) * BytesPerSite
}

// LinkRecord is one link as read from a stream, with its determinant check.
type LinkRecord struct {
	Link      int
	Site      lattice.Site
	Direction lattice.Direction
	Matrix    su3.Matrix
	Deviation su3.Deviation
}

// linkReader decodes and validates links one at a time.
type linkReader struct {
	r     io.Reader
	shape lattice.Shape
	want  int64
	read  int64
	n     int // links read so far
	opts  options
	log   *logrus.Entry
	buf   [BytesPerLink]byte
}

func newLinkReader(r io.Reader, shape lattice.Shape, want int64, o options) *linkReader {
	return &linkReader{
		r:     r,
		shape: shape,
		want:  want,
		opts:  o,
		log:   o.ctx.Logger("gauge"),
	}
}

// next reads the link for (s, d). A short stream is a shape mismatch, not an
// i/o failure.
func (lr *linkReader) next(op string, s lattice.Site, d lattice.Direction) (LinkRecord, error) {
	n, err := io.ReadFull(lr.r, lr.buf[:])
	lr.read += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return LinkRecord{}, &ShapeMismatchError{Shape: lr.shape, Want: lr.want, Got: lr.read}
		}
		return LinkRecord{}, ioErrorf(fmt.Sprintf("%s: link %d at %s %s", op, lr.n, s, d), err)
	}

	var m su3.Matrix
	var off int
	for a := 0; a < su3.N; a++ {
		for b := 0; b < su3.N; b++ {
			re := math.Float64frombits(binary.NativeEndian.Uint64(lr.buf[off:]))
			im := math.Float64frombits(binary.NativeEndian.Uint64(lr.buf[off+8:]))
			m[a][b] = complex(re, im)
			off += BytesPerEntry
		}
	}

	dev, ok := su3.CheckSpecialUnitary(m, lr.opts.tol)
	rec := LinkRecord{Link: lr.n, Site: s, Direction: d, Matrix: m, Deviation: dev}
	if lr.opts.ctx.Enabled(diag.Link) {
		lr.opts.ctx.TraceFields(diag.Link, "link", logrus.Fields{
			"link":      lr.n,
			"site":      s.String(),
			"direction": d.String(),
			"det":       fmt.Sprint(dev.Det),
			"matrix":    m.String(),
		})
	}
	lr.n++
	if !ok {
		lr.log.WithFields(logrus.Fields{
			"site":      s.String(),
			"direction": d.String(),
			"dev_real":  dev.Real,
			"dev_imag":  dev.Imag,
		}).Error("link is not special unitary")
		return rec, &UnitarityError{Site: s, Direction: d, Link: rec.Link, Deviation: dev, Tolerance: lr.opts.tol}
	}

	return rec, nil
}

// Decode reads a full configuration of the given shape from r.
//
// Every link's determinant is checked; the first failure aborts with
// *UnitarityError and no configuration is returned. A stream shorter than
// ExpectedBytes(shape), or one with trailing bytes, yields
// *ShapeMismatchError. Other read failures match ErrIO.
func Decode(r io.Reader, shape lattice.Shape, opts ...Option) (*Configuration, error) {
	grid, err := lattice.NewGrid(shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDecode, err)
	}
	o := gatherOptions(opts)
	want := ExpectedBytes(shape)
	br := bufio.NewReaderSize(r, readBufSites*BytesPerSite)
	lr := newLinkReader(br, shape, want, o)

	o.ctx.Tracef(diag.Load, "decoding %s configuration (%d bytes, tolerance %g)", shape, want, o.tol)

	vol := grid.Volume()
	links := make([]su3.Matrix, 0, min(vol*lattice.Dims, maxPrealloc))
	for idx := 0; idx < vol; idx++ {
		s := grid.Coordinate(idx)
		for _, d := range lattice.Directions {
			rec, err := lr.next(opDecode, s, d)
			if err != nil {
				return nil, err
			}
			links = append(links, rec.Matrix)
		}
	}

	if _, err := br.ReadByte(); err == nil {
		return nil, &ShapeMismatchError{Shape: shape, Want: want, Got: want + 1, Trailing: true}
	} else if !errors.Is(err, io.EOF) {
		return nil, ioErrorf(opDecode+": trailing check", err)
	}

	o.ctx.Tracef(diag.Load, "decoded %d links", lr.n)

	return newConfiguration(grid, links), nil
}

// Inspect reads and validates at most maxLinks links (0 means all) and
// returns them in stream order. It is the read-limit mode used for sampling
// a file; it never builds a Configuration. The first invalid link still
// aborts with *UnitarityError, and the records read before it are returned
// alongside the error.
func Inspect(r io.Reader, shape lattice.Shape, maxLinks int, opts ...Option) ([]LinkRecord, error) {
	grid, err := lattice.NewGrid(shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInspect, err)
	}
	o := gatherOptions(opts)
	total := grid.Volume() * lattice.Dims
	limit := total
	if maxLinks > 0 && maxLinks < total {
		limit = maxLinks
	}
	lr := newLinkReader(bufio.NewReader(r), shape, int64(limit)*BytesPerLink, o)

	o.ctx.Tracef(diag.Load, "inspecting %d of %d links", limit, total)

	out := make([]LinkRecord, 0, min(limit, maxPrealloc))
	for i := 0; i < limit; i++ {
		s := grid.Coordinate(i / lattice.Dims)
		d := lattice.Directions[i%lattice.Dims]
		rec, err := lr.next(opInspect, s, d)
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}

	return out, nil
}

// Encode writes cfg to w in the binary format Decode reads.
func Encode(w io.Writer, cfg *Configuration) error {
	bw := bufio.NewWriterSize(w, readBufSites*BytesPerSite)
	var buf [BytesPerLink]byte
	for i, m := range cfg.links {
		var off int
		for a := 0; a < su3.N; a++ {
			for b := 0; b < su3.N; b++ {
				binary.NativeEndian.PutUint64(buf[off:], math.Float64bits(real(m[a][b])))
				binary.NativeEndian.PutUint64(buf[off+8:], math.Float64bits(imag(m[a][b])))
				off += BytesPerEntry
			}
		}
		if _, err := bw.Write(buf[:]); err != nil {
			return ioErrorf(fmt.Sprintf("%s: link %d", opEncode, i), err)
		}
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(opEncode, err)
	}

	return nil
}
