// Package integrators provides the fixed-step time steppers used by the
// simulation loop.
//
// The reactor model is advanced by [Euler], explicit first order with
// non-negativity clamping. The fixed grid keeps runs bit-reproducible;
// higher order or adaptive schemes would change the trajectory a given
// configuration produces.
package integrators

import "github.com/san-kum/reactorsim/internal/reactor"

// Euler is an explicit first-order stepper that clamps every state
// component at zero. Populations and inventories cannot go negative; a
// step that would overshoot below zero is floored and counted as an
// excursion.
//
// The slice returned by Step is owned by the integrator and overwritten
// on the next call.
type Euler struct {
	excursions int
	next       reactor.State
}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys reactor.System, x reactor.State, u reactor.Control, t, dt float64) reactor.State {
	dx := sys.Derive(x, u, t)
	if len(e.next) != len(x) {
		e.next = make(reactor.State, len(x))
	}
	for i := range x {
		v := x[i] + dt*dx[i]
		if v < 0 {
			v = 0
			e.excursions++
		}
		e.next[i] = v
	}
	return e.next
}

// Excursions reports how many component updates were clamped at zero
// since the integrator was created.
func (e *Euler) Excursions() int { return e.excursions }
