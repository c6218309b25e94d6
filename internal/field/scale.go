package field

import (
	"fmt"
	"math"

	"github.com/san-kum/phasependulum/internal/dynamo"
)

// Scale is a monotonic, invertible map from model space to plot space.
type Scale interface {
	Apply(v float64) float64
	Invert(v float64) float64
}

// Linear maps the domain interval onto the range interval affinely.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale. The domain must have non-zero, finite width.
func NewLinear(domain, rng [2]float64) (Linear, error) {
	width := domain[1] - domain[0]
	if width == 0 || math.IsNaN(width) || math.IsInf(width, 0) {
		return Linear{}, &dynamo.BoundError{Name: "domain width", Value: width, Wrapped: dynamo.ErrParameterBounds}
	}
	if rw := rng[1] - rng[0]; rw == 0 || math.IsNaN(rw) || math.IsInf(rw, 0) {
		return Linear{}, &dynamo.BoundError{Name: "range width", Value: rw, Wrapped: dynamo.ErrParameterBounds}
	}
	return Linear{d0: domain[0], d1: domain[1], r0: rng[0], r1: rng[1]}, nil
}

// Identity returns the scale that leaves values unchanged.
func Identity() Linear {
	return Linear{d0: 0, d1: 1, r0: 0, r1: 1}
}

// PlotScale maps angles in [-π, π] onto a plot of the given height centered
// at zero. Heights below 1 are treated as 1.
func PlotScale(height float64) Linear {
	h := math.Max(height, 1)
	return Linear{d0: -math.Pi, d1: math.Pi, r0: -h / 2, r1: h / 2}
}

func (l Linear) Apply(v float64) float64 {
	return l.r0 + (v-l.d0)*(l.r1-l.r0)/(l.d1-l.d0)
}

func (l Linear) Invert(v float64) float64 {
	return l.d0 + (v-l.r0)*(l.d1-l.d0)/(l.r1-l.r0)
}

func (l Linear) String() string {
	return fmt.Sprintf("linear[%g,%g]->[%g,%g]", l.d0, l.d1, l.r0, l.r1)
}

// RepeatSize is the plot-space width of one model period of length rng,
// the tile size used when repeating a field plot.
func RepeatSize(sc Scale, rng float64) float64 {
	return math.Abs(sc.Apply(-rng/2) - sc.Apply(rng/2))
}

// GridSteps derives the grid resolution from the plot extent and the
// desired on-screen spacing, rounded to the nearest even number so the grid
// stays symmetric about the origin.
func GridSteps(extent, interval float64) (int, error) {
	if !(interval > 0) {
		return 0, &dynamo.BoundError{Name: "interval", Value: interval, Wrapped: dynamo.ErrParameterBounds}
	}
	if !(extent >= 0) || math.IsInf(extent, 0) {
		return 0, &dynamo.BoundError{Name: "extent", Value: extent, Wrapped: dynamo.ErrParameterBounds}
	}
	return int(math.Round(extent/interval/2)) * 2, nil
}
