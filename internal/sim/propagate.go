package sim

import (
	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/integrators"
	"github.com/san-kum/phasependulum/internal/physics"
)

// Propagate integrates from initial for up to maxSteps steps and returns the
// visited states, oldest first. Before each step cond (if non-nil) is tested
// on the current state; the first rejected state ends the trajectory and is
// not included. The buffer starts at no more than DefaultSteps points and
// grows as needed, so a huge bound costs nothing until it is reached.
func Propagate(initial dynamo.State, d physics.Accelerator, delta float64, maxSteps int, cond Condition) (dynamo.Trajectory, error) {
	if err := dynamo.CheckBound("steps", maxSteps); err != nil {
		return nil, err
	}
	return PropagateInto(make(dynamo.Trajectory, 0, min(maxSteps, DefaultSteps)), initial, d, delta, maxSteps, cond)
}

// PropagateInto is like Propagate but appends to dst[:0], reusing its
// capacity. Nothing from dst's previous contents survives.
func PropagateInto(dst dynamo.Trajectory, initial dynamo.State, d physics.Accelerator, delta float64, maxSteps int, cond Condition) (dynamo.Trajectory, error) {
	if err := dynamo.CheckBound("steps", maxSteps); err != nil {
		return nil, err
	}

	states := dst[:0]
	state := initial
	for step := 0; step < maxSteps; step++ {
		if cond != nil && !cond.Keep(state) {
			break
		}
		states = append(states, state.Point())
		state = integrators.RK4(state, d, delta).State
	}
	return states, nil
}

// PropagateWith runs Propagate with the delta and step bound from opts.
func PropagateWith(initial dynamo.State, d physics.Accelerator, opts Options, cond Condition) (dynamo.Trajectory, error) {
	return Propagate(initial, d, opts.Delta, opts.Steps, cond)
}
