package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/reactorsim/internal/integrators"
	"github.com/san-kum/reactorsim/internal/reactor"
)

// testSystem decays every component and reports the thermal population
// as power.
type testSystem struct {
	dx reactor.State
}

func (s *testSystem) StateDim() int   { return reactor.StateDim }
func (s *testSystem) ControlDim() int { return reactor.CtrlDim }

func (s *testSystem) Derive(x reactor.State, _ reactor.Control, _ float64) reactor.State {
	if len(s.dx) != len(x) {
		s.dx = make(reactor.State, len(x))
	}
	for i := range x {
		s.dx[i] = -x[i]
	}
	return s.dx
}

func (s *testSystem) Power(x reactor.State) float64 {
	return x[reactor.IdxNThermal]
}

func (s *testSystem) KEff(reactor.State, reactor.Control) float64 { return 0.5 }

// drainSystem forces the thermal population hard negative so the
// integrator has to clamp.
type drainSystem struct {
	testSystem
}

func (s *drainSystem) Derive(x reactor.State, u reactor.Control, t float64) reactor.State {
	dx := s.testSystem.Derive(x, u, t)
	dx[reactor.IdxNThermal] = -1e9
	return dx
}

type zeroController struct{}

func (zeroController) Update(float64, float64) reactor.Control {
	return make(reactor.Control, reactor.CtrlDim)
}

// clockController reports the update time as the thermal rod position.
type clockController struct {
	powers []float64
}

func (c *clockController) Update(power float64, t float64) reactor.Control {
	c.powers = append(c.powers, power)
	return reactor.Control{0, t}
}

func testState(nThermal float64) reactor.State {
	x := make(reactor.State, reactor.StateDim)
	x[reactor.IdxNThermal] = nThermal
	return x
}

func TestSimulatorRun(t *testing.T) {
	sim := New(&testSystem{}, integrators.NewEuler(), zeroController{})

	cfg := reactor.RunConfig{Dt: 0.1, TFinal: 1.0}
	res, err := sim.Run(context.Background(), testState(1.0), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if res.StepsTaken != 10 {
		t.Errorf("StepsTaken = %d, want 10", res.StepsTaken)
	}
	if res.Series.Len() != 11 {
		t.Errorf("series length = %d, want 11", res.Series.Len())
	}

	for k, tm := range res.Series.Time {
		want := float64(k) * 0.1
		if math.Abs(tm-want) > 1e-12 {
			t.Errorf("Time[%d] = %g, want %g", k, tm, want)
		}
	}

	// Euler decay of n_thermal: (1 - 0.1)^10
	want := math.Pow(0.9, 10)
	got := res.Series.NThermal[10]
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("final n_thermal = %g, want %g", got, want)
	}
}

func TestSimulatorRecordsControlPerStep(t *testing.T) {
	ctrl := &clockController{}
	sim := New(&testSystem{}, integrators.NewEuler(), ctrl)

	cfg := reactor.RunConfig{Dt: 0.5, TFinal: 1.5}
	res, err := sim.Run(context.Background(), testState(8.0), cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Row 0 predates any control decision.
	if res.Series.SigmaTh[0] != 0 {
		t.Errorf("SigmaTh[0] = %g, want 0", res.Series.SigmaTh[0])
	}
	// Row k holds the control computed at t_{k-1}.
	for k := 1; k < res.Series.Len(); k++ {
		want := float64(k-1) * 0.5
		if math.Abs(res.Series.SigmaTh[k]-want) > 1e-12 {
			t.Errorf("SigmaTh[%d] = %g, want %g", k, res.Series.SigmaTh[k], want)
		}
	}

	// The controller is fed the power recorded for the current state.
	if len(ctrl.powers) != 3 {
		t.Fatalf("controller called %d times, want 3", len(ctrl.powers))
	}
	if ctrl.powers[0] != 8.0 {
		t.Errorf("first observed power = %g, want 8", ctrl.powers[0])
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	sim := New(&testSystem{}, integrators.NewEuler(), zeroController{})

	tests := []struct {
		name string
		cfg  reactor.RunConfig
	}{
		{"zero dt", reactor.RunConfig{Dt: 0, TFinal: 1.0}},
		{"negative dt", reactor.RunConfig{Dt: -0.1, TFinal: 1.0}},
		{"nan dt", reactor.RunConfig{Dt: math.NaN(), TFinal: 1.0}},
		{"zero t_final", reactor.RunConfig{Dt: 0.1, TFinal: 0}},
		{"negative t_final", reactor.RunConfig{Dt: 0.1, TFinal: -1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sim.Run(context.Background(), testState(1.0), tt.cfg)
			if !errors.Is(err, reactor.ErrConfig) {
				t.Errorf("got %v, want ErrConfig", err)
			}
		})
	}
}

func TestSimulatorRejectsBadInitialState(t *testing.T) {
	sim := New(&testSystem{}, integrators.NewEuler(), zeroController{})
	cfg := reactor.RunConfig{Dt: 0.1, TFinal: 1.0}

	if _, err := sim.Run(context.Background(), reactor.State{1, 2, 3}, cfg); !errors.Is(err, reactor.ErrDimensionMismatch) {
		t.Errorf("short state: got %v, want ErrDimensionMismatch", err)
	}

	bad := testState(1.0)
	bad[reactor.IdxNFast] = math.NaN()
	if _, err := sim.Run(context.Background(), bad, cfg); !errors.Is(err, reactor.ErrConfig) {
		t.Errorf("NaN state: got %v, want ErrConfig", err)
	}
}

type countingMetric struct {
	count int
}

func (m *countingMetric) Name() string           { return "count" }
func (m *countingMetric) Observe(reactor.Record) { m.count++ }
func (m *countingMetric) Value() float64         { return float64(m.count) }
func (m *countingMetric) Reset()                 { m.count = 0 }

func TestSimulatorMetrics(t *testing.T) {
	sim := New(&testSystem{}, integrators.NewEuler(), zeroController{})

	metric := &countingMetric{count: 99} // Reset must clear stale state
	sim.AddMetric(metric)

	res, err := sim.Run(context.Background(), testState(1.0), reactor.RunConfig{Dt: 0.1, TFinal: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// One observation per recorded row.
	if got := res.Metrics["count"]; got != 11 {
		t.Errorf("metric value = %g, want 11", got)
	}
}

type recordingObserver struct {
	times []float64
}

func (o *recordingObserver) OnStep(rec reactor.Record) {
	o.times = append(o.times, rec.T)
}

func TestSimulatorObservers(t *testing.T) {
	sim := New(&testSystem{}, integrators.NewEuler(), zeroController{})

	obs := &recordingObserver{}
	sim.AddObserver(obs)

	_, err := sim.Run(context.Background(), testState(1.0), reactor.RunConfig{Dt: 0.1, TFinal: 0.5})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// One callback per recorded row, including the t=0 row.
	if len(obs.times) != 6 {
		t.Fatalf("observer called %d times, want 6", len(obs.times))
	}
	for k, tm := range obs.times {
		if math.Abs(tm-float64(k)*0.1) > 1e-12 {
			t.Errorf("times[%d] = %g, want %g", k, tm, float64(k)*0.1)
		}
	}
}

func TestSimulatorExcursions(t *testing.T) {
	integ := integrators.NewEuler()
	sim := New(&drainSystem{}, integ, zeroController{})

	res, err := sim.Run(context.Background(), testState(1.0), reactor.RunConfig{Dt: 0.1, TFinal: 1.0})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if res.Excursions != 10 {
		t.Errorf("Excursions = %d, want 10", res.Excursions)
	}

	// A second run on the same integrator reports only its own clamps.
	res2, err := sim.Run(context.Background(), testState(1.0), reactor.RunConfig{Dt: 0.1, TFinal: 1.0})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if res2.Excursions != 10 {
		t.Errorf("second run Excursions = %d, want 10", res2.Excursions)
	}
}

func TestSimulatorCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := New(&testSystem{}, integrators.NewEuler(), zeroController{})
	res, err := sim.Run(ctx, testState(1.0), reactor.RunConfig{Dt: 0.1, TFinal: 1.0})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if res == nil {
		t.Fatal("expected partial result on cancellation")
	}
	if res.StepsTaken != 0 {
		t.Errorf("StepsTaken = %d, want 0", res.StepsTaken)
	}
	if res.Series.Len() != 1 {
		t.Errorf("series length = %d, want 1", res.Series.Len())
	}
}

type cancelAtController struct {
	cancel context.CancelFunc
	at     float64
}

func (c *cancelAtController) Update(_ float64, t float64) reactor.Control {
	if t >= c.at {
		c.cancel()
	}
	return make(reactor.Control, reactor.CtrlDim)
}

func TestSimulatorCancellationMidRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctrl := &cancelAtController{cancel: cancel, at: 0.5}
	sim := New(&testSystem{}, integrators.NewEuler(), ctrl)

	res, err := sim.Run(ctx, testState(1.0), reactor.RunConfig{Dt: 1e-4, TFinal: 2.0})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}

	// Cancelled at t=0.5; the poll at step 10000 (t=1.0) catches it.
	if res.StepsTaken != 10000 {
		t.Errorf("StepsTaken = %d, want 10000", res.StepsTaken)
	}
	if res.Series.Len() != 10001 {
		t.Errorf("series length = %d, want 10001", res.Series.Len())
	}
}
