package metrics

import (
	"math"

	"github.com/san-kum/phasependulum/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Hamiltonian evaluates the conserved quantity of an undamped system.
type Hamiltonian interface {
	Energy(s dynamo.State) float64
}

// Energies returns the energy of every trajectory point.
func Energies(h Hamiltonian, traj dynamo.Trajectory) []float64 {
	out := make([]float64, len(traj))
	for i, p := range traj {
		out[i] = h.Energy(dynamo.State{Angle: p.X, Velocity: p.Y})
	}
	return out
}

// EnergyDrift summarizes how far a trajectory's energy wanders from its
// starting value.
type EnergyDrift struct {
	Initial float64 `json:"initial"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	// MaxAbs is max |E - E0|.
	MaxAbs float64 `json:"max_abs"`
	// Relative is MaxAbs / |E0|, zero when E0 is zero.
	Relative float64 `json:"relative"`
	Samples  int     `json:"samples"`
}

// Drift computes the energy drift of traj. An empty trajectory yields the
// zero value.
func Drift(h Hamiltonian, traj dynamo.Trajectory) EnergyDrift {
	if len(traj) == 0 {
		return EnergyDrift{}
	}

	energies := Energies(h, traj)
	e0 := energies[0]

	d := EnergyDrift{
		Initial: e0,
		Min:     floats.Min(energies),
		Max:     floats.Max(energies),
		Samples: len(energies),
	}
	d.MaxAbs = math.Max(d.Max-e0, e0-d.Min)
	if e0 != 0 {
		d.Relative = d.MaxAbs / math.Abs(e0)
	}
	return d
}

// Mean is the average energy over the trajectory.
func Mean(h Hamiltonian, traj dynamo.Trajectory) float64 {
	if len(traj) == 0 {
		return 0
	}
	return floats.Sum(Energies(h, traj)) / float64(len(traj))
}
