package export

import (
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/phasependulum/internal/dynamo"
)

// PlotTrajectory draws angle (blue) and velocity (red) against step.
// An empty trajectory yields an empty string.
func PlotTrajectory(t dynamo.Trajectory, width, height int, caption string) string {
	if len(t) == 0 {
		return ""
	}

	angles := make([]float64, len(t))
	velocities := make([]float64, len(t))
	for i, p := range t {
		angles[i] = p.X
		velocities[i] = p.Y
	}
	if len(t) == 1 {
		angles = append(angles, angles[0])
		velocities = append(velocities, velocities[0])
	}

	return asciigraph.PlotMany([][]float64{angles, velocities},
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
	)
}
