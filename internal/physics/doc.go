// Package physics provides the damped pendulum equation of motion.
//
// [Configure] freezes a [dynamo.Params] snapshot into a [Derivative]:
//
//	d, err := physics.Configure(dynamo.Params{Gravity: 9.8, Length: 10})
//	alpha := d.Accel(dynamo.State{Angle: math.Pi / 4})
//
// The derivative is stateless and deterministic; reconfigure it whenever the
// parameters change.
//
// # Energy
//
// [Derivative.Energy] returns velocity²/2 - (g/l)cos(angle), which is
// conserved by the undamped system and is used to check integration drift.
package physics
