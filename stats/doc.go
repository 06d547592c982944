// Package stats aggregates per-site observable samples into the numbers a
// sweep reports: mean, population standard deviation and jackknife
// estimates.
//
// All functions are pure over their input slice and never mutate it.
// Empty samples are reported as *DegenerateSampleError rather than NaN.
// SumParallel is the partial-sum reduction used by the parallel Wilson loop
// mean; its result may differ from a sequential sum in the last bits.
package stats
