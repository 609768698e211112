package kinetics

import (
	"fmt"
	"math"

	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
)

// nuclideFor maps inventory state indices to table nuclides.
var nuclideFor = map[int]nucdata.Nuclide{
	reactor.IdxU235:  nucdata.U235,
	reactor.IdxU238:  nucdata.U238,
	reactor.IdxTh232: nucdata.Th232,
	reactor.IdxPu239: nucdata.Pu239,
	reactor.IdxU239:  nucdata.U239,
	reactor.IdxNp239: nucdata.Np239,
	reactor.IdxTh233: nucdata.Th233,
	reactor.IdxPa233: nucdata.Pa233,
	reactor.IdxU233:  nucdata.U233,
	reactor.IdxXe135: nucdata.Xe135,
}

// absorberIdx fixes the summation order so repeated runs are
// bit-identical.
var absorberIdx = []int{
	reactor.IdxU235, reactor.IdxU238, reactor.IdxTh232, reactor.IdxPu239,
	reactor.IdxU239, reactor.IdxNp239, reactor.IdxTh233, reactor.IdxPa233,
	reactor.IdxU233, reactor.IdxXe135,
}

// fissileIdx lists the inventories with active fission channels.
// Fertile and intermediate nuclides absorb by capture only.
var fissileIdx = []int{reactor.IdxU235, reactor.IdxPu239, reactor.IdxU233}

// Engine is the two-group core model. Rate coefficients are volume
// scaled at construction: rate = coef * n_group * N_nuclide.
type Engine struct {
	data nucdata.Provider

	capFast [reactor.StateDim]float64
	capTh   [reactor.StateDim]float64
	fisFast [reactor.StateDim]float64
	fisTh   [reactor.StateDim]float64

	lambdaTherm float64
	lambdaFP    float64
	lambdaU239  float64
	lambdaNp239 float64
	lambdaTh233 float64
	lambdaPa233 float64

	nu      float64
	betaEff float64
	yXe     float64

	eFisJ  float64 // J per fission
	eFPJ   float64 // J per fission product decay
	eFastJ float64 // J per thermalized neutron

	breeding bool

	dx reactor.State
}

// New builds an engine from a nuclear data provider, a fission product
// split, and model parameters. The split and parameters are validated.
func New(data nucdata.Provider, fp reactor.FPSplit, p reactor.Params) (*Engine, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil nuclear data provider", reactor.ErrConfig)
	}
	if err := fp.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		data:        data,
		lambdaTherm: math.Ln2 / p.ThermalizationHalfLife,
		lambdaFP:    math.Ln2 / p.FPHalfLife,
		lambdaU239:  nucdata.DecayConstant(data.HalfLife(nucdata.U239, nucdata.BetaMinus)),
		lambdaNp239: nucdata.DecayConstant(data.HalfLife(nucdata.Np239, nucdata.BetaMinus)),
		lambdaTh233: nucdata.DecayConstant(data.HalfLife(nucdata.Th233, nucdata.BetaMinus)),
		lambdaPa233: nucdata.DecayConstant(data.HalfLife(nucdata.Pa233, nucdata.BetaMinus)),
		nu:          p.Nu,
		betaEff:     p.BetaEff,
		yXe:         fp.YieldXe(),
		eFisJ:       p.EFissionMeV * 1e6 * reactor.EVToJoule,
		eFPJ:        p.EFPStabilizationMeV * 1e6 * reactor.EVToJoule,
		eFastJ:      p.EFastEV * reactor.EVToJoule,
		breeding:    p.Breeding,
		dx:          make(reactor.State, reactor.StateDim),
	}

	for idx, n := range nuclideFor {
		e.capTh[idx] = data.CrossSection(n, nucdata.Capture, p.EThermalEV) * reactor.BarnToM2 * p.VThermal / p.CoreVolume
		e.capFast[idx] = data.CrossSection(n, nucdata.Capture, p.EFastEV) * reactor.BarnToM2 * p.VFast / p.CoreVolume
	}
	for _, idx := range fissileIdx {
		n := nuclideFor[idx]
		e.fisTh[idx] = data.CrossSection(n, nucdata.Fission, p.EThermalEV) * reactor.BarnToM2 * p.VThermal / p.CoreVolume
		e.fisFast[idx] = data.CrossSection(n, nucdata.Fission, p.EFastEV) * reactor.BarnToM2 * p.VFast / p.CoreVolume
	}

	return e, nil
}

func (e *Engine) StateDim() int   { return reactor.StateDim }
func (e *Engine) ControlDim() int { return reactor.CtrlDim }

// InitialState builds the state vector for a fresh core: fuel
// inventories from mass percentages, seed neutron populations, no
// fission products, no bred actinides.
func (e *Engine) InitialState(fuel reactor.Fuel, massKg, nThermal, nFast float64) (reactor.State, error) {
	if err := fuel.Validate(); err != nil {
		return nil, err
	}
	if massKg <= 0 || math.IsNaN(massKg) {
		return nil, fmt.Errorf("%w: fuel mass must be positive, got %g", reactor.ErrConfig, massKg)
	}
	if nThermal < 0 || nFast < 0 {
		return nil, fmt.Errorf("%w: seed neutron populations must be non-negative", reactor.ErrConfig)
	}

	x := make(reactor.State, reactor.StateDim)
	x[reactor.IdxNThermal] = nThermal
	x[reactor.IdxNFast] = nFast
	x[reactor.IdxU235] = e.atoms(massKg*fuel.U235/100.0, nucdata.U235)
	x[reactor.IdxU238] = e.atoms(massKg*fuel.U238/100.0, nucdata.U238)
	x[reactor.IdxPu239] = e.atoms(massKg*fuel.Pu239/100.0, nucdata.Pu239)
	x[reactor.IdxTh232] = e.atoms(massKg*fuel.Th232/100.0, nucdata.Th232)
	return x, nil
}

func (e *Engine) atoms(massKg float64, n nucdata.Nuclide) float64 {
	m := e.data.MolarMass(n)
	if m <= 0 {
		return 0
	}
	return massKg / m * reactor.Avogadro
}

// Derive evaluates the balance equations at state x under control u.
// The returned slice is owned by the engine and overwritten on the next
// call.
func (e *Engine) Derive(x reactor.State, u reactor.Control, _ float64) reactor.State {
	dx := e.dx
	for i := range dx {
		dx[i] = 0
	}

	nFast := x[reactor.IdxNFast]
	nTh := x[reactor.IdxNThermal]

	var fisTotal, absFast, absTh float64
	for _, i := range absorberIdx {
		inv := x[i]
		capF := e.capFast[i] * nFast * inv
		capT := e.capTh[i] * nTh * inv
		fisF := e.fisFast[i] * nFast * inv
		fisT := e.fisTh[i] * nTh * inv

		absFast += capF + fisF
		absTh += capT + fisT
		fisTotal += fisF + fisT
		dx[i] -= capF + capT + fisF + fisT

		if e.breeding {
			switch i {
			case reactor.IdxU238:
				dx[reactor.IdxU239] += capF + capT
			case reactor.IdxTh232:
				dx[reactor.IdxTh233] += capF + capT
			}
		}
	}

	// Fertile chain beta decays run regardless of breeding; with
	// breeding off the chains are simply never fed.
	dU239 := e.lambdaU239 * x[reactor.IdxU239]
	dNp239 := e.lambdaNp239 * x[reactor.IdxNp239]
	dx[reactor.IdxU239] -= dU239
	dx[reactor.IdxNp239] += dU239 - dNp239
	dx[reactor.IdxPu239] += dNp239

	dTh233 := e.lambdaTh233 * x[reactor.IdxTh233]
	dPa233 := e.lambdaPa233 * x[reactor.IdxPa233]
	dx[reactor.IdxTh233] -= dTh233
	dx[reactor.IdxPa233] += dTh233 - dPa233
	dx[reactor.IdxU233] += dPa233

	// Two fission products per fission, split between the xenon branch
	// and the lumped remainder.
	fpProd := 2.0 * fisTotal
	dx[reactor.IdxXe135] += fpProd*e.yXe - e.lambdaFP*x[reactor.IdxXe135]
	dx[reactor.IdxFPOther] += fpProd*(1.0-e.yXe) - e.lambdaFP*x[reactor.IdxFPOther]

	// Neutron balance: prompt neutrons are born fast, delayed neutrons
	// from FP decay enter the thermal group.
	delayed := e.betaEff * e.lambdaFP * x[reactor.IdxFPOther]
	therm := e.lambdaTherm * nFast

	dx[reactor.IdxNFast] += e.nu*fisTotal - therm - absFast
	dx[reactor.IdxNThermal] += therm + delayed - absTh

	if len(u) >= reactor.CtrlDim {
		dx[reactor.IdxNFast] -= u[reactor.CtrlFast] * nFast
		dx[reactor.IdxNThermal] -= u[reactor.CtrlThermal] * nTh
	}

	dx[reactor.IdxBurnup] = e.eFisJ * fisTotal

	return dx
}

func (e *Engine) fissionRate(x reactor.State) float64 {
	nFast := x[reactor.IdxNFast]
	nTh := x[reactor.IdxNThermal]
	var fis float64
	for _, i := range fissileIdx {
		fis += (e.fisFast[i]*nFast + e.fisTh[i]*nTh) * x[i]
	}
	return fis
}

// Power returns the instantaneous thermal power in watts: prompt
// fission energy, fission product stabilization heat, and the kinetic
// energy deposited by fast neutrons slowing into the thermal group.
func (e *Engine) Power(x reactor.State) float64 {
	fis := e.fissionRate(x)
	fpDecay := e.lambdaFP * (x[reactor.IdxXe135] + x[reactor.IdxFPOther])
	therm := e.lambdaTherm * x[reactor.IdxNFast]
	return e.eFisJ*fis + e.eFPJ*fpDecay + e.eFastJ*therm
}

// KEff returns the effective multiplication factor, neutron production
// over neutron losses at the current state. Thermalization moves
// neutrons between groups and is not a loss. The ratio is NaN at a
// state with no neutrons at all.
func (e *Engine) KEff(x reactor.State, u reactor.Control) float64 {
	nFast := x[reactor.IdxNFast]
	nTh := x[reactor.IdxNThermal]

	var loss float64
	for _, i := range absorberIdx {
		inv := x[i]
		loss += (e.capFast[i]+e.fisFast[i])*nFast*inv + (e.capTh[i]+e.fisTh[i])*nTh*inv
	}
	if len(u) >= reactor.CtrlDim {
		loss += u[reactor.CtrlFast]*nFast + u[reactor.CtrlThermal]*nTh
	}

	prod := e.nu*e.fissionRate(x) + e.betaEff*e.lambdaFP*x[reactor.IdxFPOther]
	return prod / loss
}

// Rates are the instantaneous aggregate reaction rates at a state, in
// events per second.
type Rates struct {
	FissionFast    float64
	FissionThermal float64
	CaptureFast    float64
	CaptureThermal float64
	Thermalization float64
	FPDecay        float64
	DelayedSource  float64
}

func (e *Engine) Rates(x reactor.State) Rates {
	nFast := x[reactor.IdxNFast]
	nTh := x[reactor.IdxNThermal]

	var r Rates
	for _, i := range absorberIdx {
		inv := x[i]
		r.CaptureFast += e.capFast[i] * nFast * inv
		r.CaptureThermal += e.capTh[i] * nTh * inv
		r.FissionFast += e.fisFast[i] * nFast * inv
		r.FissionThermal += e.fisTh[i] * nTh * inv
	}
	r.Thermalization = e.lambdaTherm * nFast
	r.FPDecay = e.lambdaFP * (x[reactor.IdxXe135] + x[reactor.IdxFPOther])
	r.DelayedSource = e.betaEff * e.lambdaFP * x[reactor.IdxFPOther]
	return r
}

func (e *Engine) GetParams() map[string]float64 {
	return map[string]float64{
		"nu":           e.nu,
		"beta_eff":     e.betaEff,
		"y_xe":         e.yXe,
		"fp_half_life": math.Ln2 / e.lambdaFP,
	}
}

func (e *Engine) SetParam(name string, value float64) error {
	switch name {
	case "nu":
		e.nu = value
	case "beta_eff":
		e.betaEff = value
	case "y_xe":
		e.yXe = value
	case "fp_half_life":
		if value <= 0 {
			return fmt.Errorf("%w: fp_half_life must be positive, got %g", reactor.ErrParameterBounds, value)
		}
		e.lambdaFP = math.Ln2 / value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
