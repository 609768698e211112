package metrics

import "github.com/san-kum/reactorsim/internal/reactor"

// PeakPower tracks the highest power seen during a run.
type PeakPower struct {
	name string
	max  float64
}

func NewPeakPower() *PeakPower {
	return &PeakPower{name: "peak_power"}
}

func (p *PeakPower) Name() string { return p.name }

func (p *PeakPower) Observe(rec reactor.Record) {
	if rec.Power > p.max {
		p.max = rec.Power
	}
}

func (p *PeakPower) Value() float64 {
	return p.max
}

func (p *PeakPower) Reset() {
	p.max = 0
}
