// Package gauge holds an SU(3) lattice gauge-field configuration and the
// binary codec it is stored in.
//
// What:
//
//   - Configuration maps (Site, Direction) to a link matrix. It is immutable
//     after construction and safe for concurrent reads.
//   - Decode/Load read the headerless double-precision format and validate
//     every link's determinant; Encode/Save write it.
//   - Inspect reads only the first N links for diagnostics.
//   - Identity, Random, FromLinks and Transform build configurations for
//     fixtures and tests.
//
// Binary format:
//
//	site order  t (outer), z, y, x (inner)
//	per site    directions x, y, z, t
//	per link    rows (outer), columns (inner)
//	per entry   real, imaginary as native-endian IEEE-754 float64
//
// 144 bytes per link, 576 per site. The stream carries no shape; callers
// supply it and any length mismatch is reported as *ShapeMismatchError.
//
// Errors:
//
//   - ErrNotSpecialUnitary (*UnitarityError): a link failed the determinant test.
//   - ErrShapeMismatch (*ShapeMismatchError): stream length differs from shape.
//   - ErrIO: the stream could not be read or written.
//   - ErrLinkCount: a link slice does not match the shape.
//   - ErrNeedRandSource: Random was called without WithSeed or WithRand.
package gauge
