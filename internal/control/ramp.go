package control

import (
	"fmt"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Ramp tracks a power setpoint that climbs linearly from zero to
// PNominal over TRamp seconds and holds there. Each update integrates
// the normalized power error into the per-group control absorption:
// excess power drives the rods in, a deficit withdraws them. Both
// absorptions are clamped to [0, SigmaMax], so an unreachable setpoint
// saturates at a bound instead of winding up.
type Ramp struct {
	GainFast    float64
	GainThermal float64
	TRamp       float64
	PNominal    float64
	SigmaMax    float64

	sigmaFast float64
	sigmaTh   float64
	prevT     float64
	first     bool
	u         reactor.Control
}

func NewRamp(gainFast, gainThermal, tRamp, pNominal, sigmaMax float64) *Ramp {
	return &Ramp{
		GainFast:    gainFast,
		GainThermal: gainThermal,
		TRamp:       tRamp,
		PNominal:    pNominal,
		SigmaMax:    sigmaMax,
		first:       true,
		u:           make(reactor.Control, reactor.CtrlDim),
	}
}

// Setpoint returns the power target at time t.
func (r *Ramp) Setpoint(t float64) float64 {
	if r.TRamp <= 0 || t >= r.TRamp {
		return r.PNominal
	}
	return r.PNominal * t / r.TRamp
}

// Update advances the rod positions from the measured power. The first
// call only latches the clock; the returned slice is reused across
// calls.
func (r *Ramp) Update(power float64, t float64) reactor.Control {
	if r.first {
		r.prevT = t
		r.first = false
		return r.control()
	}

	dt := t - r.prevT
	if dt > 0 && r.PNominal > 0 {
		e := (power - r.Setpoint(t)) / r.PNominal
		r.sigmaFast = clamp(r.sigmaFast+r.GainFast*e*dt, 0, r.SigmaMax)
		r.sigmaTh = clamp(r.sigmaTh+r.GainThermal*e*dt, 0, r.SigmaMax)
		r.prevT = t
	}
	return r.control()
}

func (r *Ramp) control() reactor.Control {
	r.u[reactor.CtrlFast] = r.sigmaFast
	r.u[reactor.CtrlThermal] = r.sigmaTh
	return r.u
}

// Reset withdraws the rods and clears the clock.
func (r *Ramp) Reset() {
	r.sigmaFast = 0
	r.sigmaTh = 0
	r.first = true
}

// GetParams returns tunable parameters for live adjustment.
func (r *Ramp) GetParams() map[string]float64 {
	return map[string]float64{
		"gain_fast":    r.GainFast,
		"gain_thermal": r.GainThermal,
		"t_ramp":       r.TRamp,
		"p_nominal":    r.PNominal,
		"sigma_max":    r.SigmaMax,
	}
}

func (r *Ramp) SetParam(name string, value float64) error {
	switch name {
	case "gain_fast":
		r.GainFast = value
	case "gain_thermal":
		r.GainThermal = value
	case "t_ramp":
		r.TRamp = value
	case "p_nominal":
		r.PNominal = value
	case "sigma_max":
		r.SigmaMax = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
