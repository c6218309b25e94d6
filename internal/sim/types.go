package sim

import (
	"math"

	"github.com/san-kum/phasependulum/internal/dynamo"
)

const (
	DefaultDelta = 0.1
	DefaultSteps = 1000
)

// Condition gates trajectory membership. Propagation stops at the first
// state for which Keep returns false; that state is not recorded.
type Condition interface {
	Keep(s dynamo.State) bool
}

// ConditionFunc adapts a plain function to Condition.
type ConditionFunc func(s dynamo.State) bool

func (f ConditionFunc) Keep(s dynamo.State) bool { return f(s) }

// Box keeps states strictly inside the given angle and velocity limits.
type Box struct {
	MinAngle    float64 `yaml:"min_angle"`
	MaxAngle    float64 `yaml:"max_angle"`
	MinVelocity float64 `yaml:"min_velocity"`
	MaxVelocity float64 `yaml:"max_velocity"`
}

// Unbounded returns a box with infinite limits on every side.
func Unbounded() Box {
	return Box{
		MinAngle:    math.Inf(-1),
		MaxAngle:    math.Inf(1),
		MinVelocity: math.Inf(-1),
		MaxVelocity: math.Inf(1),
	}
}

func (b Box) Keep(s dynamo.State) bool {
	return s.Angle > b.MinAngle &&
		s.Angle < b.MaxAngle &&
		s.Velocity > b.MinVelocity &&
		s.Velocity < b.MaxVelocity
}

// Options controls a single propagation.
type Options struct {
	Delta float64 `yaml:"delta"`
	Steps int     `yaml:"steps"`
}

func DefaultOptions() Options {
	return Options{
		Delta: DefaultDelta,
		Steps: DefaultSteps,
	}
}
