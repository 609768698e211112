// Package control provides the rod controllers that close the power
// feedback loop.
//
// Controllers implement the [reactor.Controller] interface, computing
// the per-group control absorption from the measured total power:
//
//   - [Ramp]: proportional tracking of a ramped power setpoint
//   - [Fixed]: constant rod position (open loop)
//
// # Usage
//
//	ctrl := control.NewRamp(0, 10, 10, 1e9, 20) // gains, t_ramp, P_nominal, bound
//	// Controller.Update is called once per timestep
//
// Controllers implementing [reactor.Configurable] support live tuning.
package control
