package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/lvlattice/config"
	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/observable"
	"github.com/katalvlaran/lvlattice/report"
	"github.com/katalvlaran/lvlattice/stats"
)

// Result is the outcome of one analysed configuration.
type Result struct {
	Input     string
	Shape     lattice.Shape
	Mode      report.Mode
	Plaquette float64
	Rows      []report.Row // R outer, T inner
	Elapsed   time.Duration
}

// ModeFor picks the table layout from the configuration.
func ModeFor(cfg *config.Config) report.Mode {
	switch {
	case cfg.Parallel:
		return report.Parallel
	case cfg.Jackknife:
		return report.Jackknife
	default:
		return report.Sequential
	}
}

// Sweep evaluates the Wilson loop mean for R in [1, rMax] and T in [1, tMax].
func Sweep(ctx context.Context, e *observable.Evaluator, mode report.Mode, rMax, tMax int, dctx *diag.Context) ([]report.Row, error) {
	dctx = diag.Resolve(dctx)
	rows := make([]report.Row, 0, rMax*tMax)
	for r := 1; r <= rMax; r++ {
		for t := 1; t <= tMax; t++ {
			if err := ctx.Err(); err != nil {
				return rows, err
			}
			row, err := sweepPoint(ctx, e, mode, r, t, dctx)
			if err != nil {
				return rows, err
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}

func sweepPoint(ctx context.Context, e *observable.Evaluator, mode report.Mode, r, t int, dctx *diag.Context) (report.Row, error) {
	row := report.Row{R: r, T: t}
	switch mode {
	case report.Parallel:
		mean, err := e.OverallMeanWilsonLoopParallel(ctx, r, t)
		if err != nil {
			return row, err
		}
		row.Mean = mean
	case report.Jackknife:
		sample := e.WilsonLoopSample(r, t)
		sum, err := stats.Summarize(sample)
		if err != nil {
			return row, err
		}
		jk, err := stats.Jackknife(sample)
		if err != nil {
			return row, err
		}
		row.Mean, row.Std, row.Jack = sum.Mean, sum.Std, jk
		dctx.TraceFields(diag.Stats, "jackknife", logrus.Fields{
			"R": r, "T": t, "estimate": jk.Estimate, "stderr": jk.StdErr,
		})
	default:
		sum, err := e.OverallMeanWilsonLoop(r, t)
		if err != nil {
			return row, err
		}
		row.Mean, row.Std = sum.Mean, sum.Std
	}

	return row, nil
}

// Analyze loads input and sweeps it according to cfg.
func Analyze(ctx context.Context, cfg *config.Config, dctx *diag.Context, input string) (*Result, error) {
	dctx = diag.Resolve(dctx)
	log := dctx.Logger("analysis").WithField("input", input)
	start := time.Now()

	shape, err := cfg.LatticeShape()
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	dctx.Tracef(diag.Load, "loading config %s", input)
	lat, err := gauge.Load(input, shape, gauge.WithTolerance(cfg.Tolerance), gauge.WithContext(dctx))
	if err != nil {
		return nil, fmt.Errorf("analysis: load %s: %w", input, err)
	}
	dctx.Tracef(diag.Load, "config loaded")

	e := observable.New(lat, observable.WithContext(dctx), observable.WithWorkers(cfg.Workers))
	res := &Result{Input: input, Shape: shape, Mode: ModeFor(cfg)}
	res.Plaquette = e.OverallPlaquetteMean()
	log.WithField("plaquette", res.Plaquette).Info("mean plaquette")

	res.Rows, err = Sweep(ctx, e, res.Mode, cfg.RMax, cfg.TMax, dctx)
	if err != nil {
		return nil, fmt.Errorf("analysis: sweep %s: %w", input, err)
	}
	res.Elapsed = time.Since(start)
	log.WithFields(logrus.Fields{
		"mode":    res.Mode.String(),
		"rows":    len(res.Rows),
		"elapsed": res.Elapsed.String(),
	}).Info("analysis complete")

	return res, nil
}

// Write stores the result table at path and, when plotPath is set, the plot.
func (r *Result) Write(path, plotPath string) error {
	if err := report.WriteCSVFile(path, r.Mode, r.Rows); err != nil {
		return err
	}
	if plotPath != "" {
		return report.Plot(plotPath, r.Mode, r.Rows)
	}

	return nil
}

// Run executes the root command: the read-limit inspection when
// cfg.ReadLimit > 0, the full analysis of cfg.Input otherwise.
func Run(ctx context.Context, cfg *config.Config, dctx *diag.Context, out io.Writer) error {
	if cfg.ReadLimit > 0 {
		_, err := InspectFile(cfg, dctx, cfg.Input, cfg.ReadLimit, out)
		return err
	}
	res, err := Analyze(ctx, cfg, dctx, cfg.Input)
	if err != nil {
		return err
	}
	if err := res.Write(cfg.Output, cfg.Plot); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}
	diag.Resolve(dctx).Logger("analysis").WithField("output", cfg.Output).Info("results written")

	return nil
}
