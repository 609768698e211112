package reactor

import "math"

// State is the vector of tracked reactor quantities, indexed by the
// Idx* constants. Neutron populations and nuclide inventories are
// counts, burnup is joules. All components are non-negative.
type State []float64

// State vector layout. The breeding intermediates sit between the
// loaded fuel nuclides and the fission products.
const (
	IdxNFast = iota
	IdxNThermal
	IdxU235
	IdxU238
	IdxTh232
	IdxPu239
	IdxU239
	IdxNp239
	IdxTh233
	IdxPa233
	IdxU233
	IdxXe135
	IdxFPOther
	IdxBurnup
	StateDim
)

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Control holds the per-group control absorption in 1/s, representing
// rods plus leakage acting on each energy group.
type Control []float64

const (
	CtrlFast = iota
	CtrlThermal
	CtrlDim
)

type System interface {
	Derive(x State, u Control, t float64) State
	StateDim() int
	ControlDim() int
}

// Metered is implemented by systems that report instantaneous derived
// quantities alongside the raw state.
type Metered interface {
	Power(x State) float64
	KEff(x State, u Control) float64
}

type Integrator interface {
	Step(sys System, x State, u Control, t float64, dt float64) State
}

// ExcursionCounter is implemented by integrators that floor negative
// state components at zero and count the clamps.
type ExcursionCounter interface {
	Excursions() int
}

// Controller computes the control absorption for the next step from
// the current total power and time.
type Controller interface {
	Update(power float64, t float64) Control
}

// Record is one sampled point of a run. X and U alias live buffers and
// are only valid for the duration of an Observe or OnStep call.
type Record struct {
	T     float64
	X     State
	U     Control
	Power float64
	KEff  float64
}

type Metric interface {
	Name() string
	Observe(rec Record)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(rec Record)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// RunConfig sets the time grid of a run.
type RunConfig struct {
	Dt     float64
	TFinal float64
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:     1e-4,
		TFinal: 10.0,
	}
}

// Steps returns the number of integration steps spanning TFinal.
func (c RunConfig) Steps() int {
	return int(math.Round(c.TFinal / c.Dt))
}

// Result bundles the recorded series with run aggregates. Excursions
// counts state components clamped at zero during integration.
type Result struct {
	Series     *Series
	Metrics    map[string]float64
	StepsTaken int
	Excursions int
}
