package reactor

import (
	"fmt"
	"math"
)

const fracTol = 1e-9

// Fuel is the heavy-metal loading in mass percent. Each component must
// lie in [0, 100] and the components may sum to at most 100; any
// remainder is inert structural mass that never reacts.
type Fuel struct {
	U235  float64
	U238  float64
	Pu239 float64
	Th232 float64
}

func NewFuel(u235, u238, pu239, th232 float64) (Fuel, error) {
	f := Fuel{U235: u235, U238: u238, Pu239: pu239, Th232: th232}
	return f, f.Validate()
}

func (f Fuel) Validate() error {
	parts := []struct {
		name string
		pct  float64
	}{
		{"U235", f.U235},
		{"U238", f.U238},
		{"Pu239", f.Pu239},
		{"Th232", f.Th232},
	}
	for _, p := range parts {
		if math.IsNaN(p.pct) || p.pct < 0 || p.pct > 100 {
			return fmt.Errorf("%w: %s fraction %g%% outside [0, 100]", ErrComposition, p.name, p.pct)
		}
	}
	if sum := f.U235 + f.U238 + f.Pu239 + f.Th232; sum > 100+fracTol {
		return fmt.Errorf("%w: fuel fractions sum to %g%% (limit 100%%)", ErrComposition, sum)
	}
	return nil
}

// FPSplit routes the two fission product atoms produced per fission
// between xenon-135 and the lumped remainder, in percent. The two
// fractions must sum to 100.
type FPSplit struct {
	Xe135 float64
	Other float64
}

func NewFPSplit(xe135, other float64) (FPSplit, error) {
	p := FPSplit{Xe135: xe135, Other: other}
	return p, p.Validate()
}

func (p FPSplit) Validate() error {
	if math.IsNaN(p.Xe135) || p.Xe135 < 0 || p.Xe135 > 100 {
		return fmt.Errorf("%w: Xe135 fraction %g%% outside [0, 100]", ErrComposition, p.Xe135)
	}
	if math.IsNaN(p.Other) || p.Other < 0 || p.Other > 100 {
		return fmt.Errorf("%w: FP fraction %g%% outside [0, 100]", ErrComposition, p.Other)
	}
	if sum := p.Xe135 + p.Other; math.Abs(sum-100) > fracTol {
		return fmt.Errorf("%w: fission product fractions sum to %g%% (want 100%%)", ErrComposition, sum)
	}
	return nil
}

// YieldXe returns the xenon share of fission product yield in [0, 1].
func (p FPSplit) YieldXe() float64 { return p.Xe135 / 100 }
