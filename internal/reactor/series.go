package reactor

// Exported column names, in canonical order for tabular output.
const (
	ColTime      = "time"
	ColBurnup    = "burnup"
	ColPower     = "P_total"
	ColNThermal  = "n_th"
	ColNFast     = "n_fa"
	ColU235      = "N_U235"
	ColU238      = "N_U238"
	ColPu239     = "N_Pu239"
	ColXe135     = "N_Xe"
	ColSigmaTh   = "sigma_ctrl_th"
	ColSigmaFast = "sigma_ctrl_fast"
	ColKEff      = "k_eff"
)

var ColumnOrder = []string{
	ColTime, ColBurnup, ColPower, ColNThermal, ColNFast,
	ColU235, ColU238, ColPu239, ColXe135,
	ColSigmaTh, ColSigmaFast, ColKEff,
}

// Series is the per-step history of a run. All columns share one
// length: one row per step plus the initial condition. Row k of the
// sigma columns holds the control in effect during step k.
type Series struct {
	Time      []float64
	Burnup    []float64
	Power     []float64
	NThermal  []float64
	NFast     []float64
	U235      []float64
	U238      []float64
	Pu239     []float64
	Xe135     []float64
	SigmaTh   []float64
	SigmaFast []float64
	KEff      []float64
}

func NewSeries(capacity int) *Series {
	return &Series{
		Time:      make([]float64, 0, capacity),
		Burnup:    make([]float64, 0, capacity),
		Power:     make([]float64, 0, capacity),
		NThermal:  make([]float64, 0, capacity),
		NFast:     make([]float64, 0, capacity),
		U235:      make([]float64, 0, capacity),
		U238:      make([]float64, 0, capacity),
		Pu239:     make([]float64, 0, capacity),
		Xe135:     make([]float64, 0, capacity),
		SigmaTh:   make([]float64, 0, capacity),
		SigmaFast: make([]float64, 0, capacity),
		KEff:      make([]float64, 0, capacity),
	}
}

func (s *Series) Len() int { return len(s.Time) }

// Append records one sample. The state and control are copied by value;
// rec may alias live buffers.
func (s *Series) Append(rec Record) {
	s.Time = append(s.Time, rec.T)
	s.Burnup = append(s.Burnup, rec.X[IdxBurnup])
	s.Power = append(s.Power, rec.Power)
	s.NThermal = append(s.NThermal, rec.X[IdxNThermal])
	s.NFast = append(s.NFast, rec.X[IdxNFast])
	s.U235 = append(s.U235, rec.X[IdxU235])
	s.U238 = append(s.U238, rec.X[IdxU238])
	s.Pu239 = append(s.Pu239, rec.X[IdxPu239])
	s.Xe135 = append(s.Xe135, rec.X[IdxXe135])
	sigTh, sigFa := 0.0, 0.0
	if len(rec.U) >= CtrlDim {
		sigFa = rec.U[CtrlFast]
		sigTh = rec.U[CtrlThermal]
	}
	s.SigmaTh = append(s.SigmaTh, sigTh)
	s.SigmaFast = append(s.SigmaFast, sigFa)
	s.KEff = append(s.KEff, rec.KEff)
}

// Column returns the data for an exported column name, nil if unknown.
func (s *Series) Column(name string) []float64 {
	switch name {
	case ColTime:
		return s.Time
	case ColBurnup:
		return s.Burnup
	case ColPower:
		return s.Power
	case ColNThermal:
		return s.NThermal
	case ColNFast:
		return s.NFast
	case ColU235:
		return s.U235
	case ColU238:
		return s.U238
	case ColPu239:
		return s.Pu239
	case ColXe135:
		return s.Xe135
	case ColSigmaTh:
		return s.SigmaTh
	case ColSigmaFast:
		return s.SigmaFast
	case ColKEff:
		return s.KEff
	default:
		return nil
	}
}

// Columns maps every exported column name to its data.
func (s *Series) Columns() map[string][]float64 {
	cols := make(map[string][]float64, len(ColumnOrder))
	for _, name := range ColumnOrder {
		cols[name] = s.Column(name)
	}
	return cols
}

// SeriesFromColumns rebuilds a series from named columns. Unknown names
// are ignored and missing columns stay empty.
func SeriesFromColumns(cols map[string][]float64) *Series {
	s := &Series{}
	for name, data := range cols {
		switch name {
		case ColTime:
			s.Time = data
		case ColBurnup:
			s.Burnup = data
		case ColPower:
			s.Power = data
		case ColNThermal:
			s.NThermal = data
		case ColNFast:
			s.NFast = data
		case ColU235:
			s.U235 = data
		case ColU238:
			s.U238 = data
		case ColPu239:
			s.Pu239 = data
		case ColXe135:
			s.Xe135 = data
		case ColSigmaTh:
			s.SigmaTh = data
		case ColSigmaFast:
			s.SigmaFast = data
		case ColKEff:
			s.KEff = data
		}
	}
	return s
}
