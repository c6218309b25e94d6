package sim

import (
	"context"
	"math"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/physics"
)

// SeparatrixEpsilon offsets the seeds from the unstable equilibrium so the
// curves start moving.
const SeparatrixEpsilon = 1e-5

// Seed is an initial state together with the region its curve is confined to.
type Seed struct {
	State dynamo.State
	Bound Condition
}

// SeparatrixSeeds returns the two seeds next to the upright equilibrium that
// trace the limiting curves of the phase portrait. Without damping the curves
// are confined to the upper and lower halves of one period so they end at the
// opposite saddle instead of looping.
func SeparatrixSeeds(p dynamo.Params) [2]Seed {
	upper := Seed{
		State: dynamo.State{Angle: -math.Pi + SeparatrixEpsilon, Velocity: SeparatrixEpsilon},
	}
	lower := Seed{
		State: dynamo.State{Angle: math.Pi - SeparatrixEpsilon, Velocity: -SeparatrixEpsilon},
	}

	if p.Damping == 0 {
		ub := Unbounded()
		ub.MaxAngle = math.Pi
		ub.MinVelocity = 0
		upper.Bound = ub

		lb := Unbounded()
		lb.MinAngle = -math.Pi
		lb.MaxVelocity = 0
		lower.Bound = lb
	}
	return [2]Seed{upper, lower}
}

// Separatrices propagates both separatrix seeds for d concurrently. The
// upper curve comes first.
func Separatrices(ctx context.Context, d *physics.Derivative, opts Options) ([2]dynamo.Trajectory, error) {
	var out [2]dynamo.Trajectory
	seeds := SeparatrixSeeds(d.Params())
	curves, err := NewBatch(d, opts).Run(ctx, seeds[:])
	if err != nil {
		return out, err
	}
	copy(out[:], curves)
	return out, nil
}
