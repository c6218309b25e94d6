// Package field samples the pendulum's phase-space vector field on a grid.
//
// A [Sampler] evaluates a [VectorFunc] at the cell centers of a square grid
// centered on the origin, one padding ring wider than requested on every side
// so a plot can be tiled seamlessly. Each [Sample] carries the model-space
// point, its plot-space position under a [Scale], and the model-space vector.
//
//	d := physics.MustConfigure(params)
//	steps, _ := field.GridSteps(400, 20)
//	samples, err := field.SampleField(d.Vector, steps, 2*math.Pi, field.PlotScale(400))
//
// No time stepping happens here; the field is the instantaneous derivative.
package field
