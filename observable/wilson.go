package observable

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/stats"
)

func checkLoop(d lattice.Direction, r, t int) {
	if !d.Spatial() {
		panic(fmt.Sprintf("observable: WilsonLoop: direction %s is not spatial", d))
	}
	if r < 0 || t < 0 {
		panic(fmt.Sprintf("observable: WilsonLoop: negative extent R=%d T=%d", r, t))
	}
}

// WilsonLoop returns the normalized trace of the R×T loop in the (d, t) plane
// that starts and ends at s. d must be spatial and r, t non-negative; anything
// else panics.
func (e *Evaluator) WilsonLoop(s lattice.Site, d lattice.Direction, r, t int) complex128 {
	checkLoop(d, r, t)
	w := e.walkFrom(s)
	w.backward(lattice.T, t)
	w.backward(d, r)
	w.forward(lattice.T, t)
	w.forward(d, r)

	return w.acc.NormTrace()
}

// MeanWilsonLoopAtPoint averages WilsonLoop over the three spatial directions.
func (e *Evaluator) MeanWilsonLoopAtPoint(s lattice.Site, r, t int) complex128 {
	var sum complex128
	for _, d := range lattice.SpatialDirections {
		sum += e.WilsonLoop(s, d, r, t)
	}

	return sum / complex(float64(len(lattice.SpatialDirections)), 0)
}

// WilsonLoopSample returns real(W) for every site and spatial direction,
// site-major in storage order.
func (e *Evaluator) WilsonLoopSample(r, t int) []float64 {
	checkLoop(lattice.X, r, t)
	vol := e.grid.Volume()
	out := make([]float64, 0, vol*len(lattice.SpatialDirections))
	for idx := 0; idx < vol; idx++ {
		s := e.grid.Coordinate(idx)
		for _, d := range lattice.SpatialDirections {
			out = append(out, real(e.WilsonLoop(s, d, r, t)))
		}
	}

	return out
}

// OverallMeanWilsonLoop returns the mean and population standard deviation of
// WilsonLoopSample(r, t).
func (e *Evaluator) OverallMeanWilsonLoop(r, t int) (stats.Summary, error) {
	sum, err := stats.Summarize(e.WilsonLoopSample(r, t))
	if err != nil {
		return stats.Summary{}, fmt.Errorf("observable: wilson R=%d T=%d: %w", r, t, err)
	}
	e.ctx.TraceFields(diag.Wilson, "wilson loop mean", logrus.Fields{
		"R": r, "T": t, "mean": sum.Mean, "std": sum.Std,
	})

	return sum, nil
}

// OverallMeanWilsonLoopParallel returns the same mean as OverallMeanWilsonLoop,
// summed by disjoint site ranges on concurrent workers. Rounding may differ
// from the sequential result in the last bits.
func (e *Evaluator) OverallMeanWilsonLoopParallel(ctx context.Context, r, t int) (float64, error) {
	checkLoop(lattice.X, r, t)
	vol := e.grid.Volume()
	sum, err := stats.SumParallel(ctx, vol, e.workers, func(idx int) float64 {
		s := e.grid.Coordinate(idx)
		var v float64
		for _, d := range lattice.SpatialDirections {
			v += real(e.WilsonLoop(s, d, r, t))
		}
		return v
	})
	if err != nil {
		return 0, fmt.Errorf("observable: parallel wilson R=%d T=%d: %w", r, t, err)
	}
	mean := sum / float64(vol*len(lattice.SpatialDirections))
	e.ctx.TraceFields(diag.Wilson, "wilson loop mean (parallel)", logrus.Fields{
		"R": r, "T": t, "mean": mean, "workers": stats.Workers(e.workers),
	})

	return mean, nil
}

// JackknifeWilson returns the leave-one-out means of WilsonLoopSample(r, t).
func (e *Evaluator) JackknifeWilson(r, t int) ([]float64, error) {
	loo, err := stats.LeaveOneOutMeans(e.WilsonLoopSample(r, t))
	if err != nil {
		return nil, fmt.Errorf("observable: jackknife R=%d T=%d: %w", r, t, err)
	}

	return loo, nil
}

// JackknifeWilsonMean returns the jackknife statistics of WilsonLoopSample(r, t).
func (e *Evaluator) JackknifeWilsonMean(r, t int) (stats.JackknifeResult, error) {
	res, err := stats.Jackknife(e.WilsonLoopSample(r, t))
	if err != nil {
		return stats.JackknifeResult{}, fmt.Errorf("observable: jackknife R=%d T=%d: %w", r, t, err)
	}
	e.ctx.TraceFields(diag.Stats, "jackknife", logrus.Fields{
		"R": r, "T": t, "estimate": res.Estimate, "stderr": res.StdErr, "bias": res.Bias,
	})

	return res, nil
}
