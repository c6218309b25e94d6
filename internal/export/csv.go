package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"github.com/san-kum/phasependulum/internal/field"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteResultsCSV writes one row per integration step.
func WriteResultsCSV(w io.Writer, results []dynamo.IntegrationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"step", "angle", "velocity", "acceleration"}); err != nil {
		return err
	}
	for i, r := range results {
		row := []string{
			strconv.Itoa(i + 1),
			formatFloat(r.Angle),
			formatFloat(r.Velocity),
			formatFloat(r.Acceleration),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrajectoryCSV writes the points of every curve, tagged with the curve
// index so several curves can share one file.
func WriteTrajectoryCSV(w io.Writer, curves ...dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"curve", "step", "angle", "velocity"}); err != nil {
		return err
	}
	for c, traj := range curves {
		for i, p := range traj {
			row := []string{
				strconv.Itoa(c),
				strconv.Itoa(i),
				formatFloat(p.X),
				formatFloat(p.Y),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFieldCSV writes one row per sample with its arrow tip and color index.
func WriteFieldCSV(w io.Writer, samples []field.Sample, vectorScale, colorScale float64) error {
	cw := csv.NewWriter(w)
	header := []string{"model_x", "model_y", "x", "y", "dx", "dy", "tip_x", "tip_y", "color"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		tip := s.Tip(vectorScale)
		row := []string{
			formatFloat(s.Model.X),
			formatFloat(s.Model.Y),
			formatFloat(s.Point.X),
			formatFloat(s.Point.Y),
			formatFloat(s.Vector.X),
			formatFloat(s.Vector.Y),
			formatFloat(tip.X),
			formatFloat(tip.Y),
			strconv.Itoa(field.ColorIndex(s.Vector, colorScale)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
