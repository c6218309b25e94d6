package dynamo

import (
	"fmt"
	"math"
)

// State is the pendulum configuration at an instant. Angle is in radians and
// is never normalized; Velocity is in radians per unit time.
type State struct {
	Angle    float64
	Velocity float64
}

func (s State) IsValid() bool {
	return isFinite(s.Angle) && isFinite(s.Velocity)
}

func (s State) Add(other State) State {
	return State{Angle: s.Angle + other.Angle, Velocity: s.Velocity + other.Velocity}
}

func (s State) Scale(factor float64) State {
	return State{Angle: s.Angle * factor, Velocity: s.Velocity * factor}
}

// Point returns the (angle, velocity) pair recorded in a trajectory.
func (s State) Point() Point {
	return Point{X: s.Angle, Y: s.Velocity}
}

func (s State) String() string {
	return fmt.Sprintf("(angle=%.6f, velocity=%.6f)", s.Angle, s.Velocity)
}

// Params holds the physical constants of the pendulum.
type Params struct {
	Gravity float64 `yaml:"gravity" json:"gravity"`
	Length  float64 `yaml:"length" json:"length"`
	Damping float64 `yaml:"damping" json:"damping"`
}

func DefaultParams() Params {
	return Params{
		Gravity: 9.8,
		Length:  10,
		Damping: 0,
	}
}

// Validate requires Gravity > 0, Length > 0 and Damping >= 0.
func (p Params) Validate() error {
	switch {
	case !(p.Gravity > 0) || math.IsInf(p.Gravity, 0):
		return &BoundError{Name: "gravity", Value: p.Gravity, Wrapped: ErrParameterBounds}
	case !(p.Length > 0) || math.IsInf(p.Length, 0):
		return &BoundError{Name: "length", Value: p.Length, Wrapped: ErrParameterBounds}
	case !(p.Damping >= 0) || math.IsInf(p.Damping, 0):
		return &BoundError{Name: "damping", Value: p.Damping, Wrapped: ErrParameterBounds}
	}
	return nil
}

// GetParams and SetParam address the constants by name, as used by the
// CLI's --set overrides and its configuration log.
func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": p.Gravity,
		"length":  p.Length,
		"damping": p.Damping,
	}
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		p.Gravity = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

// IntegrationResult is the state produced by one integration step together
// with the acceleration used to update the velocity.
type IntegrationResult struct {
	State
	Acceleration float64
}

// Point is a single (angle, velocity) sample of a trajectory.
type Point struct {
	X, Y float64
}

// Trajectory is an ordered sequence of phase-space points, oldest first.
type Trajectory []Point

// IsValid reports whether every point is finite.
func (t Trajectory) IsValid() bool {
	for _, p := range t {
		if !isFinite(p.X) || !isFinite(p.Y) {
			return false
		}
	}
	return true
}

// Last returns the final point and false when the trajectory is empty.
func (t Trajectory) Last() (Point, bool) {
	if len(t) == 0 {
		return Point{}, false
	}
	return t[len(t)-1], true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
