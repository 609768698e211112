package config

import "sort"

// Presets are complete run configurations for the stock scenarios:
// startup (heavily loaded core, seed population dies away), regulated
// (lightly moderated core held at nominal power by the ramp
// controller), freerun (same core with rods parked out), scram (same
// core with rods fully in), breeder (thorium load with the capture
// chains enabled).
var Presets = map[string]*Config{
	"startup": preset("startup", func(c *Config) {}),
	"regulated": preset("regulated", func(c *Config) {
		c.Fuel.U238 = 20
	}),
	"freerun": preset("freerun", func(c *Config) {
		c.Controller = "fixed"
		c.Fuel.U238 = 20
		c.Control.SigmaFast = 0
		c.Control.SigmaThermal = 0
	}),
	"scram": preset("scram", func(c *Config) {
		c.Controller = "fixed"
		c.Fuel.U238 = 20
		c.Control.SigmaFast = 20
		c.Control.SigmaThermal = 20
		c.TFinal = 2
	}),
	"breeder": preset("breeder", func(c *Config) {
		c.Fuel.U235 = 12
		c.Fuel.U238 = 0
		c.Fuel.Th232 = 55
		c.TFinal = 20
	}),
}

func preset(name string, mut func(*Config)) *Config {
	cfg := DefaultConfig()
	cfg.Name = name
	mut(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil if there is no
// such preset.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
