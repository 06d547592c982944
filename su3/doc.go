// Package su3 is a small, purpose-built numeric kernel for 3×3 complex
// matrices, the link variables of an SU(3) lattice gauge field.
//
// What:
//
//   - Matrix is a value type ([3][3]complex128, row-major); every operation
//     returns a fresh value and never mutates its operands.
//   - Mul, Dagger (conjugate transpose), Det, Trace and NormTrace (trace/3)
//     cover everything a closed-path product needs.
//   - CheckSpecialUnitary applies the loader's determinant test using
//     RelativeDifference, the same relative comparison the stored data was
//     validated with.
//   - Random draws a special-unitary matrix from a seeded *rand.Rand for
//     fixtures and property tests.
//
// Complexity:
//
//   - Mul: 27 complex multiply-adds. Det: 12. Dagger, Trace: O(1).
package su3
