// Package nucdata provides the nuclear data backing the kinetics engine:
// microscopic cross sections for a two-group (fast/thermal) energy model,
// decay half-lives, and molar masses.
//
// Values are coarse-grained from the ENDF evaluated library
// (https://www-nds.iaea.org/exfor/endf.htm): within each energy group the
// cross section is taken constant, with 0.5 eV as the group boundary.
// That is deliberately crude, but adequate for point kinetics where each
// group is represented by a single energy.
//
// Lookups are fail-soft. A query for a nuclide or reaction outside the
// table logs a warning and returns a physically inert value (zero cross
// section, infinite half-life, zero molar mass) rather than an error, so
// a partially specified core still simulates.
package nucdata

// Nuclide identifies an isotope by element symbol and mass number, or the
// bare neutron as "n".
type Nuclide string

const (
	Neutron Nuclide = "n"

	Th232 Nuclide = "Th232"
	Th233 Nuclide = "Th233"
	Pa233 Nuclide = "Pa233"

	U233 Nuclide = "U233"
	U235 Nuclide = "U235"
	U236 Nuclide = "U236"
	U237 Nuclide = "U237"
	U238 Nuclide = "U238"
	U239 Nuclide = "U239"

	Np239 Nuclide = "Np239"

	Pu239 Nuclide = "Pu239"
	Pu240 Nuclide = "Pu240"

	Xe135 Nuclide = "Xe135"
)

// Reaction is a neutron-induced transformation.
type Reaction string

const (
	Fission Reaction = "Fission"
	Capture Reaction = "Capture"
)

// DecayMode is a spontaneous transformation channel.
type DecayMode string

const (
	Alpha     DecayMode = "Alpha"
	BetaMinus DecayMode = "BetaMinus"
)

// Energy group boundary and the validity window of the underlying
// evaluations, all in eV.
const (
	ThermalCutoffEV = 0.5
	MinEnergyEV     = 1e-5
	MaxEnergyEV     = 2e7
)

// Provider answers nuclear data queries. Implementations must be safe for
// concurrent use; the kinetics engine calls them from parallel scans.
type Provider interface {
	// CrossSection returns the microscopic cross section in barns for the
	// reaction at the given incident neutron energy in eV.
	CrossSection(n Nuclide, r Reaction, energyEV float64) float64

	// HalfLife returns the half-life in seconds for the decay mode.
	// Stable or unlisted combinations return +Inf.
	HalfLife(n Nuclide, mode DecayMode) float64

	// MolarMass returns the molar mass in kg/mol.
	MolarMass(n Nuclide) float64
}
