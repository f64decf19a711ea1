package poseidon

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/nume-crypto/poseidon/field"
)

// HashBatch computes Hash2 over every pair in inputs concurrently against
// one shared, read-only *Parameters, demonstrating the concurrency model's
// claim that a parameter block may be shared across goroutines without
// synchronization. Bounded to GOMAXPROCS workers, the same ceiling the
// teacher's parallelSolve worker pool uses for constraint solving, though
// here each unit of work is fully independent rather than level-dependent.
func HashBatch(ctx context.Context, params *Parameters, sbox SboxType, inputs [][2]field.Fe) ([]field.Fe, error) {
	out := make([]field.Fe, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pair := range inputs {
		i, pair := i, pair
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			h, err := Hash2(params, sbox, pair[:])
			if err != nil {
				return err
			}
			out[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
