// Package report writes the results of a sweep: the per-(R, T) CSV table,
// an optional plot of the Wilson loop means, and the YAML manifest of a
// batch run.
package report
