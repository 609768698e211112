// Package sim runs the fixed-step simulation loop, wiring a system,
// integrator, and controller together and recording the trajectory.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// ctxCheckInterval is how many steps run between cancellation polls.
// The hot path stays select-free; at dt=1e-4 this checks once per
// simulated second.
const ctxCheckInterval = 10000

type Simulator struct {
	sys        reactor.System
	meter      reactor.Metered
	integrator reactor.Integrator
	controller reactor.Controller
	metrics    []reactor.Metric
	observers  []reactor.Observer
}

// New wires a simulator. If sys also implements [reactor.Metered],
// power and k-effective are measured each step and fed back to the
// controller; otherwise the controller sees zero power.
func New(sys reactor.System, integrator reactor.Integrator, controller reactor.Controller) *Simulator {
	s := &Simulator{
		sys:        sys,
		integrator: integrator,
		controller: controller,
		metrics:    make([]reactor.Metric, 0),
		observers:  make([]reactor.Observer, 0),
	}
	s.meter, _ = sys.(reactor.Metered)
	return s
}

func (s *Simulator) AddMetric(m reactor.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o reactor.Observer) { s.observers = append(s.observers, o) }

// Run advances x0 over the configured time grid and returns the
// recorded series. The step count is fixed up front; there is no
// early exit besides ctx cancellation, which returns the partial
// result together with ctx.Err().
//
// Row k of the series holds the state at t = k*dt and the control that
// was applied during the step ending there; row 0 carries zero
// control.
func (s *Simulator) Run(ctx context.Context, x0 reactor.State, cfg reactor.RunConfig) (*reactor.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if len(x0) != s.sys.StateDim() {
		return nil, fmt.Errorf("%w: state has %d components, system wants %d",
			reactor.ErrDimensionMismatch, len(x0), s.sys.StateDim())
	}
	if !x0.IsValid() {
		return nil, fmt.Errorf("%w: initial state contains NaN or Inf", reactor.ErrConfig)
	}

	steps := cfg.Steps()
	series := reactor.NewSeries(steps + 1)
	result := &reactor.Result{
		Series:  series,
		Metrics: make(map[string]float64),
	}

	excursionsBefore := 0
	counter, hasCounter := s.integrator.(reactor.ExcursionCounter)
	if hasCounter {
		excursionsBefore = counter.Excursions()
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	finish := func() {
		for _, m := range s.metrics {
			result.Metrics[m.Name()] = m.Value()
		}
		if hasCounter {
			result.Excursions = counter.Excursions() - excursionsBefore
		}
	}

	x := x0.Clone()
	u := make(reactor.Control, s.sys.ControlDim())

	s.record(series, 0, x, u)

	for k := 0; k < steps; k++ {
		if k%ctxCheckInterval == 0 {
			select {
			case <-ctx.Done():
				finish()
				return result, ctx.Err()
			default:
			}
		}

		t := float64(k) * cfg.Dt

		// The controller sees the power just recorded for this state.
		power := series.Power[series.Len()-1]
		u = s.controller.Update(power, t)

		next := s.integrator.Step(s.sys, x, u, t, cfg.Dt)
		copy(x, next)

		s.record(series, float64(k+1)*cfg.Dt, x, u)
		result.StepsTaken++
	}

	finish()
	return result, nil
}

func (s *Simulator) record(series *reactor.Series, t float64, x reactor.State, u reactor.Control) {
	power, keff := s.measure(x, u)
	rec := reactor.Record{T: t, X: x, U: u, Power: power, KEff: keff}
	series.Append(rec)
	for _, m := range s.metrics {
		m.Observe(rec)
	}
	for _, obs := range s.observers {
		obs.OnStep(rec)
	}
}

func (s *Simulator) measure(x reactor.State, u reactor.Control) (power, keff float64) {
	if s.meter == nil {
		return 0, math.NaN()
	}
	return s.meter.Power(x), s.meter.KEff(x, u)
}

func (s *Simulator) validateConfig(cfg reactor.RunConfig) error {
	if math.IsNaN(cfg.Dt) || cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %g", reactor.ErrConfig, cfg.Dt)
	}
	if math.IsNaN(cfg.TFinal) || cfg.TFinal <= 0 {
		return fmt.Errorf("%w: t_final must be positive, got %g", reactor.ErrConfig, cfg.TFinal)
	}
	return nil
}
