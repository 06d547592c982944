// Package lvlattice measures gauge-invariant observables on stored SU(3)
// lattice gauge configurations.
//
// A configuration is one 3×3 special-unitary link matrix per site and
// direction of a periodic 4D lattice. From it the module computes plaquettes
// (the smallest closed loops) and rectangular Wilson loops, averages them over
// the lattice and attaches statistical errors.
//
// Packages, bottom-up:
//
//	su3/         3×3 complex kernel: Mul, Dagger, Det, Trace, determinant check
//	lattice/     periodic 4D grid: shapes, sites, directions, MovePoint
//	gauge/       binary loader with per-link validation, encoder, builders
//	observable/  plaquettes, Wilson loops, lattice averages (sequential and parallel)
//	stats/       mean, population std, jackknife, parallel partial sums
//	diag/        execution context: logrus logger, trace channels, run id
//	config/      viper/cobra/.env configuration layering
//	report/      CSV tables, gonum plots, YAML batch manifests
//	analysis/    Load → Validate → Evaluate → Aggregate pipeline and batch runner
//	cmd/wilson/  command-line entry point
//
// Quick example:
//
//	cfg, err := gauge.Load("conf.bin", lattice.Shape{24, 24, 24, 48})
//	if err != nil {
//		return err // *gauge.UnitarityError, *gauge.ShapeMismatchError or gauge.ErrIO
//	}
//	e := observable.New(cfg)
//	fmt.Println(e.OverallPlaquetteMean())
//	w, _ := e.OverallMeanWilsonLoop(2, 3)
//	fmt.Println(w.Mean, w.Std)
package lvlattice
