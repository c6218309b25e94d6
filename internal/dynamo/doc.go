// Package dynamo provides the value types shared by the pendulum engine.
//
// The package defines the data passed between the core packages and the
// presentation layer:
//
//   - [State]: angle/velocity pair, immutable
//   - [Params]: gravity, length and damping constants
//   - [IntegrationResult]: a [State] plus the acceleration that produced it
//   - [Trajectory]: ordered phase-space points, oldest first
//
// # Example
//
//	d, err := physics.Configure(dynamo.Params{Gravity: 9.8, Length: 10})
//	if err != nil {
//	    return err
//	}
//	next := integrators.RK4(dynamo.State{Angle: math.Pi / 4}, d, 0.1)
//
// # Thread Safety
//
// Every type in this package is a plain value. Copies are independent.
package dynamo
