package sim

import (
	"context"
	"sync"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/physics"
)

// Batch propagates several independent seeds concurrently. Each seed gets
// its own buffer, so no state is shared between goroutines.
type Batch struct {
	deriv physics.Accelerator
	opts  Options
}

func NewBatch(d physics.Accelerator, opts Options) *Batch {
	return &Batch{deriv: d, opts: opts}
}

// Run returns one trajectory per seed, in seed order. The context is checked
// before each seed starts; a running propagation always completes.
func (b *Batch) Run(ctx context.Context, seeds []Seed) ([]dynamo.Trajectory, error) {
	if err := dynamo.CheckBound("steps", b.opts.Steps); err != nil {
		return nil, err
	}

	results := make([]dynamo.Trajectory, len(seeds))
	errs := make([]error, len(seeds))

	var wg sync.WaitGroup
	for i := range seeds {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			default:
			}

			seed := seeds[idx]
			results[idx], errs[idx] = PropagateWith(seed.State, b.deriv, b.opts, seed.Bound)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
