// Package metrics provides per-run scalar summaries computed from the
// recorded samples.
package metrics

import "github.com/san-kum/reactorsim/internal/reactor"

// TotalEnergy integrates the recorded power over time, in joules. The
// first observed sample only anchors the clock; each later sample
// contributes power * elapsed.
type TotalEnergy struct {
	name    string
	prevT   float64
	started bool
	joules  float64
}

func NewTotalEnergy() *TotalEnergy {
	return &TotalEnergy{name: "total_energy"}
}

func (e *TotalEnergy) Name() string { return e.name }

func (e *TotalEnergy) Observe(rec reactor.Record) {
	if !e.started {
		e.prevT = rec.T
		e.started = true
		return
	}
	e.joules += rec.Power * (rec.T - e.prevT)
	e.prevT = rec.T
}

func (e *TotalEnergy) Value() float64 {
	return e.joules
}

func (e *TotalEnergy) Reset() {
	e.prevT = 0
	e.started = false
	e.joules = 0
}
