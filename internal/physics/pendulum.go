package physics

import (
	"math"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// Accelerator evaluates the angular acceleration of a state.
type Accelerator interface {
	Accel(s dynamo.State) float64
}

// Derivative is the damped pendulum equation of motion closed over a frozen
// parameter snapshot. Configure it once per parameter change and evaluate it
// as often as needed.
type Derivative struct {
	params  dynamo.Params
	omegaSq float64 // gravity / length
}

// Configure validates p and returns the derivative for it. A zero length is
// rejected instead of producing Inf or NaN accelerations.
func Configure(p dynamo.Params) (*Derivative, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Derivative{
		params:  p,
		omegaSq: p.Gravity / p.Length,
	}, nil
}

// MustConfigure is like Configure but panics on invalid params.
func MustConfigure(p dynamo.Params) *Derivative {
	d, err := Configure(p)
	if err != nil {
		panic(err)
	}
	return d
}

func (d *Derivative) Params() dynamo.Params {
	return d.params
}

// Accel returns -damping*velocity - (gravity/length)*sin(angle).
func (d *Derivative) Accel(s dynamo.State) float64 {
	return -d.params.Damping*s.Velocity - d.omegaSq*math.Sin(s.Angle)
}

// Vector maps a phase-space point (angle, velocity) to (velocity, acceleration).
func (d *Derivative) Vector(p r2.Vec) r2.Vec {
	return r2.Vec{X: p.Y, Y: d.Accel(dynamo.State{Angle: p.X, Velocity: p.Y})}
}

// Energy is velocity²/2 - (gravity/length)*cos(angle), conserved when the
// damping is zero.
func (d *Derivative) Energy(s dynamo.State) float64 {
	return 0.5*s.Velocity*s.Velocity - d.omegaSq*math.Cos(s.Angle)
}

// SeparatrixEnergy is the energy of the unstable equilibrium at angle ±π.
// Undamped states below it librate, states above it rotate.
func (d *Derivative) SeparatrixEnergy() float64 {
	return d.omegaSq
}

// Rotates reports whether an undamped pendulum in state s goes over the top.
func (d *Derivative) Rotates(s dynamo.State) bool {
	return d.Energy(s) > d.SeparatrixEnergy()
}
