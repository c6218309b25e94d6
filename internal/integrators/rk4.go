package integrators

import (
	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/physics"
)

// slope evaluates f(s + k) = (velocity, acceleration) at the shifted state.
func slope(s dynamo.State, d physics.Accelerator, k dynamo.State) dynamo.State {
	shifted := s.Add(k)
	return dynamo.State{Angle: shifted.Velocity, Velocity: d.Accel(shifted)}
}

// RK4 advances s by one step of size delta using the classical 4th-order
// Runge-Kutta scheme on d(angle)/dt = velocity, d(velocity)/dt = d.Accel.
//
// The returned Acceleration is the weighted slope average used for the
// velocity update. It equals Δvelocity/delta in exact arithmetic but is
// summed before scaling, so the two can differ in the last bits. A zero
// delta yields a zero update and reports the slope average at s. The angle
// is not normalized.
func RK4(s dynamo.State, d physics.Accelerator, delta float64) dynamo.IntegrationResult {
	f1 := slope(s, d, dynamo.State{})
	k1 := f1.Scale(delta)
	f2 := slope(s, d, k1.Scale(0.5))
	k2 := f2.Scale(delta)
	f3 := slope(s, d, k2.Scale(0.5))
	k3 := f3.Scale(delta)
	f4 := slope(s, d, k3)
	k4 := f4.Scale(delta)

	dAngle := (k1.Angle + 2*k2.Angle + 2*k3.Angle + k4.Angle) / 6
	dVelocity := (k1.Velocity + 2*k2.Velocity + 2*k3.Velocity + k4.Velocity) / 6

	return dynamo.IntegrationResult{
		State: dynamo.State{
			Angle:    s.Angle + dAngle,
			Velocity: s.Velocity + dVelocity,
		},
		Acceleration: (f1.Velocity + 2*f2.Velocity + 2*f3.Velocity + f4.Velocity) / 6,
	}
}

// Stepper binds a derivative and a fixed step size.
type Stepper struct {
	Deriv physics.Accelerator
	Delta float64
}

func NewStepper(d physics.Accelerator, delta float64) Stepper {
	return Stepper{Deriv: d, Delta: delta}
}

func (st Stepper) Step(s dynamo.State) dynamo.IntegrationResult {
	return RK4(s, st.Deriv, st.Delta)
}

// Advance applies n steps and returns every intermediate result.
func (st Stepper) Advance(s dynamo.State, n int) ([]dynamo.IntegrationResult, error) {
	if err := dynamo.CheckBound("steps", n); err != nil {
		return nil, err
	}
	results := make([]dynamo.IntegrationResult, 0, n)
	for i := 0; i < n; i++ {
		r := st.Step(s)
		results = append(results, r)
		s = r.State
	}
	return results, nil
}
