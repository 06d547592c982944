// SPDX-License-Identifier: MIT
// Package: stats
//
// Purpose:
//   - Delete-one jackknife over a sample of per-site measurements.
//
// Exposed API:
//   - LeaveOneOutMeans(xs) -> m_i = (Σx - x_i)/(n-1)      // O(n), one pass over a running sum
//   - Jackknife(xs)        -> JackknifeResult              // mean, bias, corrected estimate, error
//
// Determinism:
//   - Fixed left-to-right traversal; the input slice is never reordered.
//
// Definitions (n = len(xs), m_i the leave-one-out means, m̄ their average):
//   - Bias     = (n-1)(m̄ - mean)
//   - Estimate = n·mean - (n-1)·m̄
//   - StdErr   = sqrt((n-1)/n · Σ(m_i - m̄)²)

package stats

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const (
	opLeaveOneOut = "LeaveOneOutMeans"
	opJackknife   = "Jackknife"
)

// JackknifeResult bundles the jackknife statistics of one sample.
type JackknifeResult struct {
	N        int
	Mean     float64 // full-sample mean
	Average  float64 // mean of the leave-one-out means
	Bias     float64
	Estimate float64 // bias-corrected mean
	StdErr   float64
}

// LeaveOneOutMeans returns, for each i, the mean of xs with x_i removed.
//
// Errors:
//   - *DegenerateSampleError when len(xs) < 2.
//
// Complexity:
//   - Time O(n), Space O(n) for the output.
func LeaveOneOutMeans(xs []float64) ([]float64, error) {
	if err := requireN(opLeaveOneOut, xs, 2); err != nil {
		return nil, err
	}
	total := floats.Sum(xs)
	inv := 1 / float64(len(xs)-1)
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = (total - x) * inv
	}

	return out, nil
}

// Jackknife computes the delete-one jackknife statistics of xs.
//
// Errors:
//   - *DegenerateSampleError when len(xs) < 2.
//
// Notes:
//   - For the plain mean the bias is zero up to rounding; the fields are kept
//     so the same result type can describe nonlinear estimators.
func Jackknife(xs []float64) (JackknifeResult, error) {
	if err := requireN(opJackknife, xs, 2); err != nil {
		return JackknifeResult{}, err
	}
	loo, err := LeaveOneOutMeans(xs)
	if err != nil {
		return JackknifeResult{}, err
	}

	n := float64(len(xs))
	mean := stat.Mean(xs, nil)
	avg := stat.Mean(loo, nil)

	var ss float64
	for _, m := range loo {
		d := m - avg
		ss += d * d
	}

	return JackknifeResult{
		N:        len(xs),
		Mean:     mean,
		Average:  avg,
		Bias:     (n - 1) * (avg - mean),
		Estimate: n*mean - (n-1)*avg,
		StdErr:   math.Sqrt((n - 1) / n * ss),
	}, nil
}
