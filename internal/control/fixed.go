package control

import (
	"fmt"

	"github.com/san-kum/reactorsim/internal/reactor"
)

// Fixed holds the rods at a constant position. NewFixed(0, 0) is a
// free-running core with no control absorption at all.
type Fixed struct {
	u reactor.Control
}

func NewFixed(sigmaFast, sigmaThermal float64) *Fixed {
	return &Fixed{u: reactor.Control{sigmaFast, sigmaThermal}}
}

func (f *Fixed) Update(power float64, t float64) reactor.Control {
	return f.u
}

// GetParams exposes the rod positions so a live view can move them.
func (f *Fixed) GetParams() map[string]float64 {
	return map[string]float64{
		"sigma_fast":    f.u[reactor.CtrlFast],
		"sigma_thermal": f.u[reactor.CtrlThermal],
	}
}

func (f *Fixed) SetParam(name string, value float64) error {
	if value < 0 {
		value = 0
	}
	switch name {
	case "sigma_fast":
		f.u[reactor.CtrlFast] = value
	case "sigma_thermal":
		f.u[reactor.CtrlThermal] = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
