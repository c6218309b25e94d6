package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/field"
	"github.com/san-kum/phasependulum/internal/metrics"
)

type Kind string

const (
	KindIntegration Kind = "integration"
	KindTrajectory  Kind = "trajectory"
	KindSeparatrix  Kind = "separatrix"
	KindField       Kind = "field"
)

// Document is the JSON shape of one command's output.
type Document struct {
	RunID        string                `json:"run_id"`
	Kind         Kind                  `json:"kind"`
	Params       dynamo.Params         `json:"params"`
	Delta        float64               `json:"delta,omitempty"`
	Steps        int                   `json:"steps,omitempty"`
	Results      []ResultData          `json:"results,omitempty"`
	Trajectories [][][2]float64        `json:"trajectories,omitempty"`
	Drift        []metrics.EnergyDrift `json:"drift,omitempty"`
	GridSteps    int                   `json:"grid_steps,omitempty"`
	Samples      []SampleData          `json:"samples,omitempty"`
}

type ResultData struct {
	Angle        float64 `json:"angle"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

type SampleData struct {
	Model  [2]float64 `json:"model"`
	Point  [2]float64 `json:"point"`
	Head   [2]float64 `json:"head"`
	Vector [2]float64 `json:"vector"`
	Tip    [2]float64 `json:"tip"`
	Color  int        `json:"color"`
}

// NewDocument stamps a fresh run id.
func NewDocument(kind Kind, p dynamo.Params) *Document {
	return &Document{
		RunID:  uuid.NewString(),
		Kind:   kind,
		Params: p,
	}
}

func (d *Document) AddResults(results []dynamo.IntegrationResult) {
	for _, r := range results {
		d.Results = append(d.Results, ResultData{
			Angle:        r.Angle,
			Velocity:     r.Velocity,
			Acceleration: r.Acceleration,
		})
	}
}

func (d *Document) AddTrajectory(t dynamo.Trajectory) {
	pts := make([][2]float64, len(t))
	for i, p := range t {
		pts[i] = [2]float64{p.X, p.Y}
	}
	d.Trajectories = append(d.Trajectories, pts)
}

// AddSamples records each sample with the same arrow tip and color index
// WriteFieldCSV emits.
func (d *Document) AddSamples(samples []field.Sample, vectorScale, colorScale float64) {
	for _, s := range samples {
		tip := s.Tip(vectorScale)
		d.Samples = append(d.Samples, SampleData{
			Model:  [2]float64{s.Model.X, s.Model.Y},
			Point:  [2]float64{s.Point.X, s.Point.Y},
			Head:   [2]float64{s.Head.X, s.Head.Y},
			Vector: [2]float64{s.Vector.X, s.Vector.Y},
			Tip:    [2]float64{tip.X, tip.Y},
			Color:  field.ColorIndex(s.Vector, colorScale),
		})
	}
}

// WriteJSON encodes d with two-space indentation. Non-finite values cannot
// be represented in JSON and make the encode fail.
func WriteJSON(w io.Writer, d *Document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(d); err != nil {
		return fmt.Errorf("encode %s document: %w", d.Kind, err)
	}
	return nil
}
