package observable

import (
	"fmt"

	"github.com/katalvlaran/lvlattice/diag"
	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithContext attaches the run's execution context.
func WithContext(ctx *diag.Context) Option {
	return func(e *Evaluator) { e.ctx = ctx }
}

// WithWorkers bounds the goroutines used by the parallel mean; 0 means one
// per CPU. Panics on negative n.
func WithWorkers(n int) Option {
	if n < 0 {
		panic(fmt.Sprintf("observable: WithWorkers(%d): negative worker count", n))
	}

	return func(e *Evaluator) { e.workers = n }
}

// Evaluator computes observables over one configuration.
type Evaluator struct {
	cfg     *gauge.Configuration
	grid    *lattice.Grid
	ctx     *diag.Context
	workers int
}

// New returns an Evaluator reading cfg.
func New(cfg *gauge.Configuration, opts ...Option) *Evaluator {
	e := &Evaluator{cfg: cfg, grid: cfg.Grid()}
	for _, opt := range opts {
		opt(e)
	}
	e.ctx = diag.Resolve(e.ctx)

	return e
}

// Configuration returns the configuration being evaluated.
func (e *Evaluator) Configuration() *gauge.Configuration { return e.cfg }

// walker accumulates the ordered link product along a lattice path.
type walker struct {
	cfg  *gauge.Configuration
	grid *lattice.Grid
	pos  lattice.Site
	acc  su3.Matrix
}

func (e *Evaluator) walkFrom(s lattice.Site) *walker {
	return &walker{cfg: e.cfg, grid: e.grid, pos: s, acc: su3.Identity()}
}

// forward multiplies by U_d(pos) and steps to pos+d, n times.
func (w *walker) forward(d lattice.Direction, n int) {
	for i := 0; i < n; i++ {
		w.acc = w.acc.Mul(w.cfg.Link(w.pos, d))
		w.pos = w.grid.MovePoint(w.pos, d, 1)
	}
}

// backward steps to pos-d and multiplies by U_d(pos)^†, n times.
func (w *walker) backward(d lattice.Direction, n int) {
	for i := 0; i < n; i++ {
		w.pos = w.grid.MovePoint(w.pos, d, -1)
		w.acc = w.acc.Mul(w.cfg.Link(w.pos, d).Dagger())
	}
}
