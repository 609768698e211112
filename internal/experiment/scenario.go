// Package experiment assembles named scenarios into runnable
// simulations and sweeps controller gains across them.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/reactorsim/internal/config"
	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/integrators"
	"github.com/san-kum/reactorsim/internal/kinetics"
	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/sim"
)

// Scenario is a complete description of one run: the core loading,
// the initial populations, the time grid, and the controller.
type Scenario struct {
	Name string

	Fuel   reactor.Fuel
	FP     reactor.FPSplit
	MassKg float64

	NThermal0 float64
	NFast0    float64

	Dt     float64
	TFinal float64

	// Controller selects "ramp" (closed loop, the default) or
	// "fixed" (open loop at SigmaFast/SigmaThermal).
	Controller   string
	GainFast     float64
	GainThermal  float64
	TRamp        float64
	PNominal     float64
	SigmaFast    float64
	SigmaThermal float64

	Params reactor.Params
}

// DefaultScenario is the stock startup transient: a 25 kg core at 3%
// enrichment, a 1e10 thermal seed, and the ramp controller aiming at
// 1 GW.
func DefaultScenario() Scenario {
	return Scenario{
		Name:        "startup",
		Fuel:        reactor.Fuel{U235: 3, U238: 97},
		FP:          reactor.FPSplit{Xe135: 25, Other: 75},
		MassKg:      25,
		NThermal0:   1e10,
		Dt:          1e-4,
		TFinal:      10,
		Controller:  "ramp",
		GainThermal: 10,
		TRamp:       10,
		PNominal:    1e9,
		Params:      reactor.DefaultParams(),
	}
}

// FromConfig maps a run configuration onto a Scenario.
func FromConfig(cfg *config.Config) Scenario {
	return Scenario{
		Name:         cfg.Name,
		Fuel:         reactor.Fuel{U235: cfg.Fuel.U235, U238: cfg.Fuel.U238, Pu239: cfg.Fuel.Pu239, Th232: cfg.Fuel.Th232},
		FP:           reactor.FPSplit{Xe135: cfg.FP.Xe135, Other: cfg.FP.Other},
		MassKg:       cfg.Fuel.MassKg,
		NThermal0:    cfg.InitState.NThermal,
		NFast0:       cfg.InitState.NFast,
		Dt:           cfg.Dt,
		TFinal:       cfg.TFinal,
		Controller:   cfg.Controller,
		GainFast:     cfg.Control.GainFast,
		GainThermal:  cfg.Control.GainThermal,
		TRamp:        cfg.Control.TRamp,
		PNominal:     cfg.Control.PNominal,
		SigmaFast:    cfg.Control.SigmaFast,
		SigmaThermal: cfg.Control.SigmaThermal,
		Params:       cfg.Params(),
	}
}

// Build assembles the simulator and initial state for the scenario.
// The returned simulator carries the standard metric set.
func (sc Scenario) Build(data nucdata.Provider) (*sim.Simulator, reactor.State, error) {
	eng, err := kinetics.New(data, sc.FP, sc.Params)
	if err != nil {
		return nil, nil, err
	}
	x0, err := eng.InitialState(sc.Fuel, sc.MassKg, sc.NThermal0, sc.NFast0)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := sc.NewController()
	if err != nil {
		return nil, nil, err
	}

	s := sim.New(eng, integrators.NewEuler(), ctrl)
	for _, m := range sc.Metrics() {
		s.AddMetric(m)
	}
	return s, x0, nil
}

// Run builds the scenario and integrates it to TFinal.
func (sc Scenario) Run(ctx context.Context, data nucdata.Provider) (*reactor.Result, error) {
	s, x0, err := sc.Build(data)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, x0, reactor.RunConfig{Dt: sc.Dt, TFinal: sc.TFinal})
}

// Metrics returns the standard per-run summaries: total energy, peak
// power, post-ramp regulation against PNominal, and mean rod effort.
func (sc Scenario) Metrics() []reactor.Metric {
	return []reactor.Metric{
		metrics.NewTotalEnergy(),
		metrics.NewPeakPower(),
		metrics.NewRegulation(sc.PNominal, 0.05, sc.TRamp),
		metrics.NewRodEffort(),
	}
}

// NewController instantiates the controller the scenario names.
func (sc Scenario) NewController() (reactor.Controller, error) {
	switch sc.Controller {
	case "", "ramp":
		return control.NewRamp(sc.GainFast, sc.GainThermal, sc.TRamp, sc.PNominal, sc.Params.SigmaCtrlMax), nil
	case "fixed":
		return control.NewFixed(sc.SigmaFast, sc.SigmaThermal), nil
	}
	return nil, fmt.Errorf("unknown controller: %s", sc.Controller)
}
