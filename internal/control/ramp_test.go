package control

import (
	"math"
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
)

func TestRamp_Setpoint(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"start", 0, 0},
		{"mid ramp", 5, 5e8},
		{"end of ramp", 10, 1e9},
		{"past ramp", 50, 1e9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Setpoint(tt.t); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Setpoint(%g) = %g, want %g", tt.t, got, tt.want)
			}
		})
	}
}

func TestRamp_Setpoint_ZeroRamp(t *testing.T) {
	r := NewRamp(0, 10, 0, 1e9, 20)
	if got := r.Setpoint(0); got != 1e9 {
		t.Errorf("zero t_ramp should hold the full setpoint, got %g", got)
	}
}

func TestRamp_FirstCallLatchesClock(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)

	u := r.Update(5e9, 0)
	if u[reactor.CtrlFast] != 0 || u[reactor.CtrlThermal] != 0 {
		t.Errorf("first call moved the rods: %v", u)
	}
}

func TestRamp_OverPowerInsertsRods(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)
	r.Update(0, 0)

	// e = (2e9 - 1e8)/1e9 = 1.9, sigma_th = 10*1.9*1 = 19
	u := r.Update(2e9, 1.0)
	if math.Abs(u[reactor.CtrlThermal]-19.0) > 1e-9 {
		t.Errorf("sigma_thermal = %g, want 19", u[reactor.CtrlThermal])
	}
	if u[reactor.CtrlFast] != 0 {
		t.Errorf("zero fast gain moved fast rods: %g", u[reactor.CtrlFast])
	}

	// Next second would add 18 more; the bound holds at 20.
	u = r.Update(2e9, 2.0)
	if u[reactor.CtrlThermal] != 20.0 {
		t.Errorf("sigma_thermal = %g, want clamp at 20", u[reactor.CtrlThermal])
	}
}

func TestRamp_UnderPowerStaysAtLowerBound(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)
	r.Update(0, 0)

	u := r.Update(0, 5.0)
	if u[reactor.CtrlThermal] != 0 {
		t.Errorf("rods moved below the lower bound: %g", u[reactor.CtrlThermal])
	}
}

func TestRamp_WithdrawsAfterInsertion(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)
	r.Update(0, 0)
	r.Update(2e9, 1.0) // sigma_th = 19

	// Power collapses, error goes negative, rods come back out.
	u := r.Update(0, 2.0)
	if !(u[reactor.CtrlThermal] < 19.0) {
		t.Errorf("rods did not withdraw: %g", u[reactor.CtrlThermal])
	}
}

func TestRamp_FastGroupGain(t *testing.T) {
	r := NewRamp(5, 0, 10, 1e9, 20)
	r.Update(0, 0)

	u := r.Update(2e9, 1.0)
	if math.Abs(u[reactor.CtrlFast]-9.5) > 1e-9 {
		t.Errorf("sigma_fast = %g, want 9.5", u[reactor.CtrlFast])
	}
	if u[reactor.CtrlThermal] != 0 {
		t.Errorf("zero thermal gain moved thermal rods: %g", u[reactor.CtrlThermal])
	}
}

func TestRamp_NonAdvancingTime(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)
	r.Update(0, 0)
	r.Update(2e9, 1.0)

	before := r.Update(2e9, 1.0)[reactor.CtrlThermal]
	after := r.Update(5e9, 1.0)[reactor.CtrlThermal]
	if before != after {
		t.Errorf("rods moved with dt=0: %g -> %g", before, after)
	}
}

func TestRamp_Reset(t *testing.T) {
	r := NewRamp(0, 10, 10, 1e9, 20)
	r.Update(0, 0)
	r.Update(2e9, 1.0)

	r.Reset()
	u := r.Update(2e9, 5.0)
	if u[reactor.CtrlThermal] != 0 {
		t.Errorf("Reset did not withdraw rods: %g", u[reactor.CtrlThermal])
	}
}

func TestRamp_Params(t *testing.T) {
	r := NewRamp(1, 2, 3, 4, 5)

	got := r.GetParams()
	if got["gain_fast"] != 1 || got["gain_thermal"] != 2 || got["sigma_max"] != 5 {
		t.Errorf("unexpected params: %v", got)
	}

	if err := r.SetParam("gain_thermal", 7); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if r.GainThermal != 7 {
		t.Error("gain_thermal not updated")
	}
	if err := r.SetParam("nope", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestFixed(t *testing.T) {
	f := NewFixed(1.5, 2.5)

	u := f.Update(1e12, 100)
	if u[reactor.CtrlFast] != 1.5 || u[reactor.CtrlThermal] != 2.5 {
		t.Errorf("Fixed control changed: %v", u)
	}

	if err := f.SetParam("sigma_thermal", 4); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if f.Update(0, 0)[reactor.CtrlThermal] != 4 {
		t.Error("sigma_thermal not updated")
	}
	if err := f.SetParam("sigma_fast", -3); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if f.Update(0, 0)[reactor.CtrlFast] != 0 {
		t.Error("negative rod position should floor at 0")
	}
}
