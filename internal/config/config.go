// Package config holds the YAML run configuration and named presets.
// Load overlays a file onto DefaultConfig, so absent keys keep their
// defaults.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/reactorsim/internal/reactor"
)

const (
	DefaultDt         = 1e-4
	DefaultTFinal     = 10.0
	DefaultMassKg     = 25.0
	DefaultNThermal   = 1e10
	DefaultGain       = 10.0
	DefaultTRamp      = 10.0
	DefaultPNominal   = 1e9
	DefaultEnrichment = 3.0
	DefaultXeYield    = 25.0
)

type Config struct {
	Name       string          `yaml:"name"`
	Controller string          `yaml:"controller"`
	Dt         float64         `yaml:"dt"`
	TFinal     float64         `yaml:"t_final"`
	Fuel       FuelConfig      `yaml:"fuel"`
	FP         FPConfig        `yaml:"fission_products"`
	InitState  InitStateConfig `yaml:"init_state"`
	Control    ControlConfig   `yaml:"control"`
	Physics    PhysicsConfig   `yaml:"physics"`
}

// FuelConfig is the heavy-metal loading in mass percent plus the total
// loaded mass. Fractions may sum to less than 100; the remainder is
// inert.
type FuelConfig struct {
	U235   float64 `yaml:"u235"`
	U238   float64 `yaml:"u238"`
	Pu239  float64 `yaml:"pu239"`
	Th232  float64 `yaml:"th232"`
	MassKg float64 `yaml:"mass_kg"`
}

type FPConfig struct {
	Xe135 float64 `yaml:"xe135"`
	Other float64 `yaml:"other"`
}

type InitStateConfig struct {
	NThermal float64 `yaml:"n_thermal"`
	NFast    float64 `yaml:"n_fast"`
}

type ControlConfig struct {
	GainFast     float64 `yaml:"gain_fast"`
	GainThermal  float64 `yaml:"gain_thermal"`
	TRamp        float64 `yaml:"t_ramp"`
	PNominal     float64 `yaml:"p_nominal"`
	SigmaFast    float64 `yaml:"sigma_fast"`
	SigmaThermal float64 `yaml:"sigma_thermal"`
}

type PhysicsConfig struct {
	CoreVolume             float64 `yaml:"core_volume"`
	VFast                  float64 `yaml:"v_fast"`
	VThermal               float64 `yaml:"v_thermal"`
	EFastEV                float64 `yaml:"e_fast_ev"`
	EThermalEV             float64 `yaml:"e_thermal_ev"`
	Nu                     float64 `yaml:"nu"`
	EFissionMeV            float64 `yaml:"e_fission_mev"`
	EFPStabilizationMeV    float64 `yaml:"e_fp_mev"`
	ThermalizationHalfLife float64 `yaml:"thermalization_half_life"`
	FPHalfLife             float64 `yaml:"fp_half_life"`
	BetaEff                float64 `yaml:"beta_eff"`
	SigmaCtrlMax           float64 `yaml:"sigma_ctrl_max"`
	Breeding               bool    `yaml:"breeding"`
}

func DefaultConfig() *Config {
	p := reactor.DefaultParams()
	return &Config{
		Name:       "startup",
		Controller: "ramp",
		Dt:         DefaultDt,
		TFinal:     DefaultTFinal,
		Fuel: FuelConfig{
			U235:   DefaultEnrichment,
			U238:   100 - DefaultEnrichment,
			MassKg: DefaultMassKg,
		},
		FP: FPConfig{
			Xe135: DefaultXeYield,
			Other: 100 - DefaultXeYield,
		},
		InitState: InitStateConfig{
			NThermal: DefaultNThermal,
		},
		Control: ControlConfig{
			GainThermal: DefaultGain,
			TRamp:       DefaultTRamp,
			PNominal:    DefaultPNominal,
		},
		Physics: PhysicsConfig{
			CoreVolume:             p.CoreVolume,
			VFast:                  p.VFast,
			VThermal:               p.VThermal,
			EFastEV:                p.EFastEV,
			EThermalEV:             p.EThermalEV,
			Nu:                     p.Nu,
			EFissionMeV:            p.EFissionMeV,
			EFPStabilizationMeV:    p.EFPStabilizationMeV,
			ThermalizationHalfLife: p.ThermalizationHalfLife,
			FPHalfLife:             p.FPHalfLife,
			BetaEff:                p.BetaEff,
			SigmaCtrlMax:           p.SigmaCtrlMax,
			Breeding:               p.Breeding,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params maps the physics section onto the model constants.
func (c *Config) Params() reactor.Params {
	return reactor.Params{
		CoreVolume:             c.Physics.CoreVolume,
		VFast:                  c.Physics.VFast,
		VThermal:               c.Physics.VThermal,
		EFastEV:                c.Physics.EFastEV,
		EThermalEV:             c.Physics.EThermalEV,
		Nu:                     c.Physics.Nu,
		EFissionMeV:            c.Physics.EFissionMeV,
		EFPStabilizationMeV:    c.Physics.EFPStabilizationMeV,
		ThermalizationHalfLife: c.Physics.ThermalizationHalfLife,
		FPHalfLife:             c.Physics.FPHalfLife,
		BetaEff:                c.Physics.BetaEff,
		SigmaCtrlMax:           c.Physics.SigmaCtrlMax,
		Breeding:               c.Physics.Breeding,
	}
}
