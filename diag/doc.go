// Package diag carries the execution context every component receives at
// construction: a structured logger, the set of enabled trace channels and a
// run identifier.
//
// Trace channels are resolved once, from names or a verbosity level, into a
// bitset; hot paths test a mask.
//
// Channels:
//
//   - load:      loader progress (file, shape, byte counts)
//   - link:      every link read, with its determinant
//   - plaquette: per-site spatial/temporal plaquette split
//   - wilson:    per-(R,T) Wilson loop summaries
//   - stats:     aggregation details (jackknife bias, partial sums)
package diag
