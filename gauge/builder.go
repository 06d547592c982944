// SPDX-License-Identifier: MIT
// Package: gauge
//
// builder.go - deterministic constructors for configurations.
//
// Contract:
//   - Options are functional (BuildOption) and panic on meaningless input.
//   - Constructors validate early and return sentinel errors, never panic.
//   - Same shape, seed and options ⇒ identical configuration (links are drawn
//     in stream order).

package gauge

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/lvlattice/lattice"
	"github.com/katalvlaran/lvlattice/su3"
)

const (
	methodIdentity  = "Identity"
	methodRandom    = "Random"
	methodFromLinks = "FromLinks"
	methodTransform = "Transform"
)

// BuildOption customizes the stochastic builders.
type BuildOption func(*buildConfig)

type buildConfig struct {
	rng    *rand.Rand
	spread float64 // 0 ⇒ uniform random SU(3); >0 ⇒ su3.RandomNear(eps)
}

func newBuildConfig(opts ...BuildOption) buildConfig {
	var c buildConfig
	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// WithSeed seeds a fresh RNG; use it to freeze fixtures.
func WithSeed(seed int64) BuildOption {
	return func(c *buildConfig) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuildOption {
	if r == nil {
		panic("gauge: WithRand(nil)")
	}

	return func(c *buildConfig) { c.rng = r }
}

// WithSpread draws links near the identity (su3.RandomNear with eps)
// instead of uniformly, modelling a smooth field. Panics unless eps > 0.
func WithSpread(eps float64) BuildOption {
	if !(eps > 0) || math.IsInf(eps, 1) {
		panic("gauge: WithSpread: eps must be finite and positive")
	}

	return func(c *buildConfig) { c.spread = eps }
}

// Identity returns the configuration with every link equal to the identity
// (the free field: every plaquette and Wilson loop is exactly 1).
func Identity(shape lattice.Shape) (*Configuration, error) {
	grid, err := lattice.NewGrid(shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodIdentity, err)
	}
	links := make([]su3.Matrix, grid.Volume()*lattice.Dims)
	id := su3.Identity()
	for i := range links {
		links[i] = id
	}

	return newConfiguration(grid, links), nil
}

// Random returns a configuration of independently drawn SU(3) links.
// Requires WithSeed or WithRand (ErrNeedRandSource otherwise).
func Random(shape lattice.Shape, opts ...BuildOption) (*Configuration, error) {
	grid, err := lattice.NewGrid(shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodRandom, err)
	}
	cfg := newBuildConfig(opts...)
	if cfg.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodRandom, ErrNeedRandSource)
	}

	links := make([]su3.Matrix, grid.Volume()*lattice.Dims)
	for i := range links {
		if cfg.spread > 0 {
			links[i] = su3.RandomNear(cfg.rng, cfg.spread)
		} else {
			links[i] = su3.Random(cfg.rng)
		}
	}

	return newConfiguration(grid, links), nil
}

// FromLinks copies links (stream order: site index·4 + direction) into a new
// configuration. No unitarity check is made; Decode is the validating path.
func FromLinks(shape lattice.Shape, links []su3.Matrix) (*Configuration, error) {
	grid, err := lattice.NewGrid(shape)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", methodFromLinks, err)
	}
	if want := grid.Volume() * lattice.Dims; len(links) != want {
		return nil, fmt.Errorf("%s: got %d links, want %d: %w", methodFromLinks, len(links), want, ErrLinkCount)
	}
	cp := make([]su3.Matrix, len(links))
	copy(cp, links)

	return newConfiguration(grid, cp), nil
}

// Transform applies the gauge transformation g (one matrix per site, in
// storage order) and returns the new configuration:
//
//	U'_mu(x) = g(x) · U_mu(x) · g(x+mu)^†
//
// Every closed-loop trace is invariant under this map.
func Transform(cfg *Configuration, g []su3.Matrix) (*Configuration, error) {
	grid := cfg.grid
	if len(g) != grid.Volume() {
		return nil, fmt.Errorf("%s: got %d site matrices, want %d: %w", methodTransform, len(g), grid.Volume(), ErrLinkCount)
	}
	links := make([]su3.Matrix, len(cfg.links))
	for idx := 0; idx < grid.Volume(); idx++ {
		s := grid.Coordinate(idx)
		for _, mu := range lattice.Directions {
			next := grid.Index(grid.MovePoint(s, mu, 1))
			k := idx*lattice.Dims + int(mu)
			links[k] = g[idx].Mul(cfg.links[k]).Mul(g[next].Dagger())
		}
	}

	return newConfiguration(grid, links), nil
}

// RandomTransform draws one SU(3) matrix per site and applies Transform.
// Requires WithSeed or WithRand.
func RandomTransform(cfg *Configuration, opts ...BuildOption) (*Configuration, error) {
	bc := newBuildConfig(opts...)
	if bc.rng == nil {
		return nil, fmt.Errorf("%s: %w", methodTransform, ErrNeedRandSource)
	}
	g := make([]su3.Matrix, cfg.grid.Volume())
	for i := range g {
		g[i] = su3.Random(bc.rng)
	}

	return Transform(cfg, g)
}
