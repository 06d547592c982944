// Package lattice models the periodic four-dimensional grid a gauge field
// lives on.
//
// What:
//
//   - Shape holds the extents (Lx, Ly, Lz, Lt); Site is an (x, y, z, t) tuple.
//   - Grid is immutable once built and maps sites to a dense index in the
//     storage order used by configuration files: t outermost, x innermost.
//   - MovePoint shifts a site along one direction by a signed amount with
//     floored-modulo wrap, so the space is a 4-torus.
//
// Complexity:
//
//   - MovePoint, Index, Coordinate, InBounds: O(1).
//
// Errors:
//
//   - ErrBadShape: an extent is smaller than 1, or the volume exceeds MaxVolume.
package lattice
