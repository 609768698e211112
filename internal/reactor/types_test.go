package reactor

import (
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	s := State{1, 2, 3}
	c := s.Clone()
	c[0] = 99
	if s[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestRunConfig_Steps(t *testing.T) {
	tests := []struct {
		dt     float64
		tFinal float64
		steps  int
	}{
		{1e-4, 10.0, 100000},
		{1e-4, 1.0, 10000},
		{0.1, 1.0, 10},
		{0.1, 0.95, 10},
		{0.1, 0.94, 9},
		{1e-3, 5.0, 5000},
	}

	for _, tt := range tests {
		cfg := RunConfig{Dt: tt.dt, TFinal: tt.tFinal}
		if got := cfg.Steps(); got != tt.steps {
			t.Errorf("Steps(dt=%g, t=%g) = %d, want %d", tt.dt, tt.tFinal, got, tt.steps)
		}
	}
}

func makeRecord(t float64) Record {
	x := make(State, StateDim)
	x[IdxNThermal] = 1e10
	x[IdxU235] = 2e24
	x[IdxBurnup] = 42.0
	u := make(Control, CtrlDim)
	u[CtrlThermal] = 3.5
	return Record{T: t, X: x, U: u, Power: 7.0, KEff: 0.5}
}

func TestSeries_Append(t *testing.T) {
	s := NewSeries(4)
	s.Append(makeRecord(0))
	s.Append(makeRecord(1e-4))

	if s.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", s.Len())
	}
	if s.Time[1] != 1e-4 {
		t.Errorf("time[1] = %g, want 1e-4", s.Time[1])
	}
	if s.Burnup[0] != 42.0 {
		t.Errorf("burnup[0] = %g, want 42", s.Burnup[0])
	}
	if s.SigmaTh[0] != 3.5 || s.SigmaFast[0] != 0 {
		t.Errorf("sigma row = (%g, %g), want (3.5, 0)", s.SigmaTh[0], s.SigmaFast[0])
	}
	if s.Power[0] != 7.0 {
		t.Errorf("power[0] = %g, want 7", s.Power[0])
	}
}

func TestSeries_Columns(t *testing.T) {
	s := NewSeries(1)
	s.Append(makeRecord(0))

	cols := s.Columns()
	if len(cols) != len(ColumnOrder) {
		t.Fatalf("expected %d columns, got %d", len(ColumnOrder), len(cols))
	}
	for _, name := range ColumnOrder {
		col, ok := cols[name]
		if !ok {
			t.Errorf("missing column %q", name)
			continue
		}
		if len(col) != s.Len() {
			t.Errorf("column %q has %d rows, want %d", name, len(col), s.Len())
		}
	}
	if s.Column("nonexistent") != nil {
		t.Error("expected nil for unknown column name")
	}
}

func TestSeriesFromColumns(t *testing.T) {
	s := NewSeries(2)
	s.Append(makeRecord(0))
	s.Append(makeRecord(1e-4))

	rebuilt := SeriesFromColumns(s.Columns())
	if rebuilt.Len() != s.Len() {
		t.Fatalf("rebuilt length %d, want %d", rebuilt.Len(), s.Len())
	}
	for _, name := range ColumnOrder {
		want, got := s.Column(name), rebuilt.Column(name)
		for i := range want {
			if want[i] != got[i] {
				t.Errorf("column %q row %d: %g != %g", name, i, got[i], want[i])
			}
		}
	}
}
