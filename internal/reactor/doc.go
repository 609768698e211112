// Package reactor provides the core types for two-group reactor
// kinetics simulation.
//
// The package defines the state vector layout and the interfaces the
// rest of the module is built around:
//
//   - [State]: neutron populations, nuclide inventories, and burnup
//   - [System]: the kinetics model (dX/dt = f(X, u, t))
//   - [Integrator]: fixed-step time integration
//   - [Controller]: control absorption feedback
//   - [Series]: the per-step history of a run
//
// # Example
//
//	eng, _ := kinetics.New(nucdata.NewTable(nil), fp, reactor.DefaultParams())
//	x0, _ := eng.InitialState(fuel, 25.0, 1e10, 0)
//	s := sim.New(eng, integrators.NewEuler(), ctrl)
//	result, _ := s.Run(ctx, x0, reactor.DefaultRunConfig())
//
// # Thread Safety
//
// Simulator, engine, and controller instances are NOT thread-safe. For
// parallel parameter sweeps build one instance set per goroutine, as
// [experiment.Scan] does.
package reactor
