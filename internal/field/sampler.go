package field

import (
	"math"
	"sync"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

// VectorFunc maps a model-space point to its vector, for the pendulum
// (angle, velocity) -> (velocity, acceleration).
type VectorFunc func(p r2.Vec) r2.Vec

// Sample is one grid cell of a sampled field.
type Sample struct {
	// Model is the cell center in model space.
	Model r2.Vec
	// Point is Model mapped through the scale.
	Point r2.Vec
	// Head is Model+Vector mapped through the scale.
	Head r2.Vec
	// Vector is the model-space vector at Model.
	Vector r2.Vec
}

// Tip returns Point + Vector*vectorScale, the arrow end used when vectors are
// drawn at a fixed on-screen length factor.
func (s Sample) Tip(vectorScale float64) r2.Vec {
	return r2.Add(s.Point, r2.Scale(vectorScale, s.Vector))
}

// Segment is a line from an arrow's base to its tip in plot space.
type Segment struct {
	From, To r2.Vec
}

// Sampler owns a scratch buffer that grows to the largest grid requested.
// Sample is safe for concurrent use, but the returned slice aliases the
// buffer and is only valid until the next call.
type Sampler struct {
	mu  sync.Mutex
	buf []Sample
}

func NewSampler() *Sampler {
	return &Sampler{}
}

// Sample evaluates fn over a (gridSteps+2)² grid covering rng centered on the
// origin, row-major from the bottom-left padding cell. A nil scale is the
// identity.
func (s *Sampler) Sample(fn VectorFunc, gridSteps int, rng float64, sc Scale) ([]Sample, error) {
	if err := validate(gridSteps, rng); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n := Count(gridSteps)
	if cap(s.buf) < n {
		s.buf = make([]Sample, n)
	}
	s.buf = s.buf[:n]
	fill(s.buf, fn, gridSteps, rng, sc)
	return s.buf, nil
}

// Cap reports the current scratch capacity.
func (s *Sampler) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cap(s.buf)
}

// SampleField is Sample on a freshly allocated slice.
func SampleField(fn VectorFunc, gridSteps int, rng float64, sc Scale) ([]Sample, error) {
	if err := validate(gridSteps, rng); err != nil {
		return nil, err
	}
	out := make([]Sample, Count(gridSteps))
	fill(out, fn, gridSteps, rng, sc)
	return out, nil
}

// Count is the number of samples for gridSteps, padding ring included.
func Count(gridSteps int) int {
	if gridSteps <= 0 {
		return 0
	}
	side := gridSteps + 2
	return side * side
}

// Coord is the model-space coordinate of grid index i in [-1, gridSteps].
func Coord(i, gridSteps int, rng float64) float64 {
	steps := float64(gridSteps)
	return ((float64(i) - steps/2 + 0.5) / steps) * rng
}

func validate(gridSteps int, rng float64) error {
	if err := dynamo.CheckBound("grid steps", gridSteps); err != nil {
		return err
	}
	if !(rng > 0) || math.IsInf(rng, 0) {
		return &dynamo.BoundError{Name: "range", Value: rng, Wrapped: dynamo.ErrParameterBounds}
	}
	return nil
}

func fill(dst []Sample, fn VectorFunc, gridSteps int, rng float64, sc Scale) {
	if gridSteps == 0 {
		return
	}
	if sc == nil {
		sc = Identity()
	}

	index := 0
	for row := -1; row < gridSteps+1; row++ {
		y := Coord(row, gridSteps, rng)
		for col := -1; col < gridSteps+1; col++ {
			model := r2.Vec{X: Coord(col, gridSteps, rng), Y: y}
			vec := fn(model)
			head := r2.Add(model, vec)
			dst[index] = Sample{
				Model:  model,
				Point:  r2.Vec{X: sc.Apply(model.X), Y: sc.Apply(model.Y)},
				Head:   r2.Vec{X: sc.Apply(head.X), Y: sc.Apply(head.Y)},
				Vector: vec,
			}
			index++
		}
	}
}

// Segments converts samples into arrow segments of length Vector*vectorScale.
func Segments(samples []Sample, vectorScale float64) []Segment {
	out := make([]Segment, len(samples))
	for i, s := range samples {
		out[i] = Segment{From: s.Point, To: s.Tip(vectorScale)}
	}
	return out
}

// ColorIndex maps a vector's magnitude to an index into a 256-entry color
// lookup table, saturating at magnitude 1/colorScale.
func ColorIndex(v r2.Vec, colorScale float64) int {
	t := math.Min(math.Max(r2.Norm(v)*colorScale, 0), 1)
	if math.IsNaN(t) {
		return 0
	}
	return int(math.Floor(t * 0xff))
}
