package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/reactorsim/internal/reactor"
)

func rec(t, power float64) reactor.Record {
	return reactor.Record{T: t, Power: power}
}

func TestTotalEnergy(t *testing.T) {
	m := NewTotalEnergy()

	m.Observe(rec(0, 5))
	if m.Value() != 0 {
		t.Errorf("expected zero energy after first sample, got %f", m.Value())
	}

	m.Observe(rec(1, 10))
	m.Observe(rec(2, 20))

	if m.Value() != 30 {
		t.Errorf("expected energy 30, got %f", m.Value())
	}
}

func TestTotalEnergyReset(t *testing.T) {
	m := NewTotalEnergy()

	m.Observe(rec(0, 5))
	m.Observe(rec(1, 5))
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}

	m.Observe(rec(10, 100))
	if m.Value() != 0 {
		t.Errorf("expected first sample after reset to anchor the clock, got %f", m.Value())
	}
}

func TestPeakPower(t *testing.T) {
	m := NewPeakPower()

	m.Observe(rec(0, 1))
	m.Observe(rec(1, 7))
	m.Observe(rec(2, 3))

	if m.Value() != 7 {
		t.Errorf("expected peak 7, got %f", m.Value())
	}

	m.Observe(rec(3, math.NaN()))
	if m.Value() != 7 {
		t.Errorf("expected NaN sample to be ignored, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero peak after reset")
	}
}

func TestRegulation(t *testing.T) {
	m := NewRegulation(100, 0.05, 10)

	m.Observe(rec(5, 500))
	m.Observe(rec(10, 100))
	m.Observe(rec(11, 104))
	m.Observe(rec(12, 110))
	m.Observe(rec(13, 96))

	if m.Value() != 0.75 {
		t.Errorf("expected regulation 0.75, got %f", m.Value())
	}
}

func TestRegulationNoSamples(t *testing.T) {
	m := NewRegulation(100, 0.05, 10)
	if m.Value() != 0 {
		t.Errorf("expected zero with no samples, got %f", m.Value())
	}

	m.Observe(rec(3, 100))
	if m.Value() != 0 {
		t.Errorf("expected ramp samples to be excluded, got %f", m.Value())
	}
}

func TestRodEffort(t *testing.T) {
	m := NewRodEffort()

	m.Observe(reactor.Record{T: 0, U: reactor.Control{1, 2}})
	m.Observe(reactor.Record{T: 1, U: reactor.Control{3, 4}})

	if m.Value() != 5 {
		t.Errorf("expected mean effort 5, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero effort after reset")
	}
}

func TestMetricNames(t *testing.T) {
	ms := []reactor.Metric{
		NewTotalEnergy(),
		NewPeakPower(),
		NewRegulation(1e9, 0.05, 10),
		NewRodEffort(),
	}
	want := []string{"total_energy", "peak_power", "regulation", "rod_effort"}
	for i, m := range ms {
		if m.Name() != want[i] {
			t.Errorf("expected name %q, got %q", want[i], m.Name())
		}
	}
}
