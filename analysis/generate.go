package analysis

import (
	"fmt"

	"github.com/katalvlaran/lvlattice/gauge"
	"github.com/katalvlaran/lvlattice/lattice"
)

// Fixture kinds understood by Generate.
const (
	KindIdentity = "identity"
	KindRandom   = "random"
	KindSmooth   = "smooth"
)

// Generate writes a synthetic configuration to path. Random and smooth
// fixtures are reproducible from seed; smooth draws links within spread of
// the identity.
func Generate(path string, shape lattice.Shape, kind string, seed int64, spread float64) (*gauge.Configuration, error) {
	var (
		cfg *gauge.Configuration
		err error
	)
	switch kind {
	case KindIdentity:
		cfg, err = gauge.Identity(shape)
	case KindRandom:
		cfg, err = gauge.Random(shape, gauge.WithSeed(seed))
	case KindSmooth:
		if !(spread > 0) {
			return nil, fmt.Errorf("analysis: smooth fixture needs a positive spread, got %g", spread)
		}
		cfg, err = gauge.Random(shape, gauge.WithSeed(seed), gauge.WithSpread(spread))
	default:
		return nil, fmt.Errorf("analysis: unknown fixture kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("analysis: generate: %w", err)
	}
	if err := gauge.Save(path, cfg); err != nil {
		return nil, fmt.Errorf("analysis: generate: %w", err)
	}

	return cfg, nil
}
