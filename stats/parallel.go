package stats

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// Workers resolves a worker count: n <= 0 means one per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}

	return n
}

// SumParallel returns Σ fn(i) for i in [0, n).
//
// The index range is split into at most Workers(workers) contiguous chunks.
// Each chunk is summed by its own goroutine into a private slot and the slots
// are added after all goroutines finish, so fn must be safe for concurrent
// use. The result can differ from a sequential sum in the last bits. A
// cancelled ctx stops chunks that have not started yet.
func SumParallel(ctx context.Context, n, workers int, fn func(i int) float64) (float64, error) {
	if n <= 0 {
		return 0, nil
	}
	w := Workers(workers)
	if w > n {
		w = n
	}
	chunk := (n + w - 1) / w
	partial := make([]float64, (n+chunk-1)/chunk)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w)
	for c := range partial {
		lo := c * chunk
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var s float64
			for i := lo; i < hi; i++ {
				s += fn(i)
			}
			partial[c] = s

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	return floats.Sum(partial), nil
}
