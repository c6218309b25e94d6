package sim

import (
	"sync"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/physics"
)

// TrajectoryPool recycles trajectory buffers for per-frame propagation.
type TrajectoryPool struct {
	pool     sync.Pool
	capacity int
}

func NewTrajectoryPool(capacity int) *TrajectoryPool {
	return &TrajectoryPool{
		capacity: capacity,
		pool: sync.Pool{
			New: func() interface{} {
				return make(dynamo.Trajectory, 0, capacity)
			},
		},
	}
}

// Get returns an empty trajectory with at least the pool's capacity.
func (p *TrajectoryPool) Get() dynamo.Trajectory {
	return p.pool.Get().(dynamo.Trajectory)[:0]
}

// Put returns t to the pool. Undersized buffers are dropped.
func (p *TrajectoryPool) Put(t dynamo.Trajectory) {
	if cap(t) >= p.capacity {
		p.pool.Put(t[:0])
	}
}

// Propagate runs PropagateInto on a pooled buffer. Callers hand the result
// back with Put once they are done with it.
func (p *TrajectoryPool) Propagate(initial dynamo.State, d physics.Accelerator, opts Options, cond Condition) (dynamo.Trajectory, error) {
	return PropagateInto(p.Get(), initial, d, opts.Delta, opts.Steps, cond)
}
