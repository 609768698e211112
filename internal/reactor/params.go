package reactor

import "fmt"

// Universal conversion constants.
const (
	Avogadro  = 6.02214076e23 // atoms/mol
	BarnToM2  = 1e-28         // m^2 per barn
	EVToJoule = 1.602e-19     // J per eV
)

// Params are the model constants of the two-group core. Defaults match
// a nominal 10 m^3 thermal core.
type Params struct {
	CoreVolume float64 // m^3
	VFast      float64 // m/s, fast group speed
	VThermal   float64 // m/s, thermal group speed
	EFastEV    float64 // eV, representative fast group energy
	EThermalEV float64 // eV, representative thermal group energy

	Nu                     float64 // prompt neutrons per fission
	EFissionMeV            float64 // MeV released promptly per fission
	EFPStabilizationMeV    float64 // MeV released per fission product decay
	ThermalizationHalfLife float64 // s, fast group slowing down
	FPHalfLife             float64 // s, lumped short-lived fission products
	BetaEff                float64 // delayed neutron weight on FP decays
	SigmaCtrlMax           float64 // 1/s, control absorption ceiling per group
	Breeding               bool    // fertile captures feed Pu239/U233 chains
}

func DefaultParams() Params {
	return Params{
		CoreVolume:             10.0,
		VFast:                  1.4e7,
		VThermal:               2.2e3,
		EFastEV:                1e6,
		EThermalEV:             0.025,
		Nu:                     2.0,
		EFissionMeV:            180.0,
		EFPStabilizationMeV:    10.0,
		ThermalizationHalfLife: 5e-4,
		FPHalfLife:             1.0,
		BetaEff:                0.0065,
		SigmaCtrlMax:           20.0,
		Breeding:               true,
	}
}

func (p Params) Validate() error {
	checks := []struct {
		name string
		val  float64
	}{
		{"core volume", p.CoreVolume},
		{"fast speed", p.VFast},
		{"thermal speed", p.VThermal},
		{"fast energy", p.EFastEV},
		{"thermal energy", p.EThermalEV},
		{"nu", p.Nu},
		{"thermalization half-life", p.ThermalizationHalfLife},
		{"fission product half-life", p.FPHalfLife},
	}
	for _, c := range checks {
		if c.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %g", ErrParameterBounds, c.name, c.val)
		}
	}
	if p.EFissionMeV < 0 || p.EFPStabilizationMeV < 0 {
		return fmt.Errorf("%w: fission energies must be non-negative", ErrParameterBounds)
	}
	if p.BetaEff < 0 || p.BetaEff > 1 {
		return fmt.Errorf("%w: beta_eff %g outside [0, 1]", ErrParameterBounds, p.BetaEff)
	}
	if p.SigmaCtrlMax < 0 {
		return fmt.Errorf("%w: control absorption ceiling must be non-negative", ErrParameterBounds)
	}
	return nil
}
