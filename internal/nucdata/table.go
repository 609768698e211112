package nucdata

import (
	"log/slog"
	"math"
)

const (
	minute = 60.0
	hour   = 3600.0
	day    = 24 * 3600.0
	year   = 365.25 * 24 * 3600.0
)

type rxKey struct {
	n Nuclide
	r Reaction
}

// sigmaPair holds the two-group cross sections in barns.
type sigmaPair struct {
	thermal float64 // E < 0.5 eV
	fast    float64 // E >= 0.5 eV
}

var crossSections = map[rxKey]sigmaPair{
	// Thorium chain up to U233.
	{Th232, Capture}: {7.0, 0.3},
	{Th232, Fission}: {0.0, 0.0},
	{Th233, Capture}: {20.0, 0.5},
	{Th233, Fission}: {0.0, 0.5},
	{Pa233, Capture}: {200.0, 1.0},
	{Pa233, Fission}: {0.0, 1.5},
	{U233, Capture}:  {60.0, 0.5},
	{U233, Fission}:  {500.0, 1.5},

	{U235, Fission}: {580.0, 1.0},
	{U235, Capture}: {100.0, 0.3},

	// U236/U237 are capture products off the main chains.
	{U236, Fission}: {0.0, 0.1},
	{U236, Capture}: {5.0, 0.2},
	{U237, Fission}: {0.0, 0.1},
	{U237, Capture}: {2.0, 0.1},

	// U238 thermal fission is energetically forbidden.
	{U238, Fission}: {0.0, 0.3},
	{U238, Capture}: {2.7, 0.3},
	{U239, Fission}: {0.0, 0.1},
	{U239, Capture}: {5.0, 0.2},

	{Np239, Fission}: {5.0, 0.5},
	{Np239, Capture}: {50.0, 0.5},

	{Pu239, Fission}: {750.0, 1.8},
	{Pu239, Capture}: {270.0, 0.5},
	{Pu240, Fission}: {0.0, 0.1},
	{Pu240, Capture}: {290.0, 0.5},

	// Xe135 thermal capture dominates every other absorber in the core.
	{Xe135, Fission}: {0.0, 0.0},
	{Xe135, Capture}: {2.0e6, 10.0},
}

type decayKey struct {
	n    Nuclide
	mode DecayMode
}

var halfLives = map[decayKey]float64{
	// U238 fertile chain.
	{U239, BetaMinus}:  23.5 * minute,
	{Np239, BetaMinus}: 2.356 * day,

	{Xe135, BetaMinus}: 9.14 * hour,

	// Heavy actinides, effectively stable over any transient.
	{U235, Alpha}:  7.04e8 * year,
	{U238, Alpha}:  4.47e9 * year,
	{Th232, Alpha}: 1.40e10 * year,
	{Pu239, Alpha}: 2.41e4 * year,
	{Pu240, Alpha}: 6.56e3 * year,

	// Th232 fertile chain.
	{Th233, BetaMinus}: 22.3 * minute,
	{Pa233, BetaMinus}: 26.97 * day,
}

// Molar masses in kg/mol, approximated as A/1000.
var molarMasses = map[Nuclide]float64{
	Th232: 0.232,
	Th233: 0.233,
	Pa233: 0.233,

	U233: 0.233,
	U235: 0.235,
	U236: 0.236,
	U237: 0.237,
	U238: 0.238,
	U239: 0.239,

	Np239: 0.239,

	Pu239: 0.239,
	Pu240: 0.240,

	Xe135: 0.135,

	Neutron: 0.001,
}

// Table is the built-in Provider backed by the static two-group data
// above. It is safe for concurrent use; lookups never mutate state.
type Table struct {
	log *slog.Logger
}

// NewTable returns a Table logging diagnostics to log. If log is nil,
// slog.Default() is used.
func NewTable(log *slog.Logger) *Table {
	if log == nil {
		log = slog.Default()
	}
	return &Table{log: log}
}

// CrossSection returns the group-wise constant cross section in barns.
// Energies below 0.5 eV select the thermal value. Unknown combinations
// and out-of-range energies are logged; unknowns return 0 barns.
func (t *Table) CrossSection(n Nuclide, r Reaction, energyEV float64) float64 {
	if energyEV < MinEnergyEV || energyEV > MaxEnergyEV {
		t.log.Warn("nucdata: energy outside evaluated range",
			slog.String("nuclide", string(n)),
			slog.Float64("energy_ev", energyEV))
	}
	sp, ok := crossSections[rxKey{n, r}]
	if !ok {
		t.log.Warn("nucdata: no cross section data",
			slog.String("nuclide", string(n)),
			slog.String("reaction", string(r)))
		return 0
	}
	if energyEV < ThermalCutoffEV {
		return sp.thermal
	}
	return sp.fast
}

// HalfLife returns the half-life in seconds, or +Inf for combinations
// not in the table (treated as stable).
func (t *Table) HalfLife(n Nuclide, mode DecayMode) float64 {
	hl, ok := halfLives[decayKey{n, mode}]
	if !ok {
		t.log.Warn("nucdata: no half-life data, treating as stable",
			slog.String("nuclide", string(n)),
			slog.String("mode", string(mode)))
		return math.Inf(1)
	}
	return hl
}

// MolarMass returns the molar mass in kg/mol, or 0 for unknown nuclides.
func (t *Table) MolarMass(n Nuclide) float64 {
	m, ok := molarMasses[n]
	if !ok {
		t.log.Warn("nucdata: no molar mass data", slog.String("nuclide", string(n)))
		return 0
	}
	return m
}

// DecayConstant converts a half-life in seconds to a decay constant in
// 1/s. Infinite half-lives map to 0.
func DecayConstant(halfLife float64) float64 {
	if math.IsInf(halfLife, 1) {
		return 0
	}
	return math.Ln2 / halfLife
}
