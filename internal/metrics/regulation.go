package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Regulation measures how well the controller holds the power target:
// the fraction of samples after tStart that fall within band*target of
// the target. Samples during the ramp are excluded.
type Regulation struct {
	name    string
	target  float64
	band    float64
	tStart  float64
	inBand  int
	samples int
}

func NewRegulation(target, band, tStart float64) *Regulation {
	return &Regulation{
		name:   "regulation",
		target: target,
		band:   band,
		tStart: tStart,
	}
}

func (r *Regulation) Name() string { return r.name }

func (r *Regulation) Observe(rec reactor.Record) {
	if rec.T < r.tStart {
		return
	}
	r.samples++
	if math.Abs(rec.Power-r.target) <= r.band*r.target {
		r.inBand++
	}
}

func (r *Regulation) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return float64(r.inBand) / float64(r.samples)
}

func (r *Regulation) Reset() {
	r.inBand = 0
	r.samples = 0
}
