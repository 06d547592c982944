package gauge

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/lattice"
)

const (
	opLoad = "gauge.Load"
	opSave = "gauge.Save"
	opOpen = "gauge.OpenStream"
)

// Compression selects the container of a configuration file.
type Compression int

const (
	// Raw is the plain binary format.
	Raw Compression = iota
	// Gzip is gzip-compressed binary (".gz").
	Gzip
	// Zstd is zstd-compressed binary (".zst").
	Zstd
)

// CompressionFor picks the container from the file extension.
func CompressionFor(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	default:
		return Raw
	}
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var first error
	for i := len(rc.closers) - 1; i >= 0; i-- {
		if err := rc.closers[i](); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// OpenStream opens path and returns the decompressed configuration stream.
func OpenStream(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, ioErrorf(opOpen, err)
	}
	rc := &readCloser{Reader: f, closers: []func() error{f.Close}}

	switch CompressionFor(path) {
	case Gzip:
		zr, err := gzip.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, ioErrorf(opOpen+": gzip", err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, zr.Close)
	case Zstd:
		zr, err := zstd.NewReader(f)
		if err != nil {
			_ = f.Close()
			return nil, ioErrorf(opOpen+": zstd", err)
		}
		rc.Reader = zr
		rc.closers = append(rc.closers, func() error { zr.Close(); return nil })
	}

	return rc, nil
}

// Load reads a configuration file of the given shape.
//
// For uncompressed files the on-disk size is compared with
// ExpectedBytes(shape) before any link is read, so a wrong shape fails fast
// with *ShapeMismatchError. Compressed files are checked while decoding.
func Load(path string, shape lattice.Shape, opts ...Option) (*Configuration, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opLoad, err)
	}
	o := gatherOptions(opts)
	log := o.ctx.Logger("gauge").WithField("path", path)

	if CompressionFor(path) == Raw {
		fi, err := os.Stat(filepath.Clean(path))
		if err != nil {
			return nil, ioErrorf(opLoad, err)
		}
		if want := ExpectedBytes(shape); fi.Size() != want {
			return nil, &ShapeMismatchError{Shape: shape, Want: want, Got: fi.Size(), Trailing: fi.Size() > want}
		}
	}

	rc, err := OpenStream(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	o.ctx.Tracef(diag.Load, "reading configuration from %s", path)
	cfg, err := Decode(rc, shape, opts...)
	if err != nil {
		return nil, err
	}
	log.WithField("shape", shape.String()).Info("configuration loaded")

	return cfg, nil
}

// Save writes cfg to path, compressing according to the extension.
func Save(path string, cfg *Configuration) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return ioErrorf(opSave, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = ioErrorf(opSave, cerr)
		}
	}()

	switch CompressionFor(path) {
	case Gzip:
		zw := gzip.NewWriter(f)
		if err = Encode(zw, cfg); err != nil {
			return err
		}
		if err = zw.Close(); err != nil {
			return ioErrorf(opSave+": gzip", err)
		}
	case Zstd:
		zw, zerr := zstd.NewWriter(f)
		if zerr != nil {
			return ioErrorf(opSave+": zstd", zerr)
		}
		if err = Encode(zw, cfg); err != nil {
			_ = zw.Close()
			return err
		}
		if err = zw.Close(); err != nil {
			return ioErrorf(opSave+": zstd", err)
		}
	default:
		err = Encode(f, cfg)
	}

	return err
}
