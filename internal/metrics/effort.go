package metrics

import "github.com/san-kum/reactorsim/internal/reactor"

// RodEffort averages the total control absorption over a run, a proxy
// for how hard the rods work.
type RodEffort struct {
	name    string
	sum     float64
	samples int
}

func NewRodEffort() *RodEffort {
	return &RodEffort{name: "rod_effort"}
}

func (c *RodEffort) Name() string { return c.name }

func (c *RodEffort) Observe(rec reactor.Record) {
	for _, val := range rec.U {
		c.sum += val
	}
	c.samples++
}

func (c *RodEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *RodEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
