package gauge

import (
	"math"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/su3"
)

// DefaultTolerance is the relative tolerance of the determinant test.
const DefaultTolerance = su3.DefaultTolerance

// Option configures Decode, Load and Inspect.
type Option func(*options)

type options struct {
	tol float64
	ctx *diag.Context
}

func gatherOptions(opts []Option) options {
	o := options{tol: DefaultTolerance}
	for _, opt := range opts {
		opt(&o)
	}
	o.ctx = diag.Resolve(o.ctx)

	return o
}

// WithTolerance overrides the relative determinant tolerance.
// Panics unless tol is finite and positive.
func WithTolerance(tol float64) Option {
	if !(tol > 0) || math.IsInf(tol, 1) {
		panic("gauge: WithTolerance: tol must be finite and positive")
	}

	return func(o *options) { o.tol = tol }
}

// WithContext attaches the run's execution context (logger, trace channels).
func WithContext(ctx *diag.Context) Option {
	return func(o *options) { o.ctx = ctx }
}
