package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/reactorsim/internal/reactor"
)

type ExportData struct {
	RunMetadata
	Columns map[string][]float64 `json:"columns"`
}

// ExportJSON writes the run with its full series as indented JSON.
func ExportJSON(w io.Writer, meta RunMetadata, series *reactor.Series) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{RunMetadata: meta, Columns: series.Columns()})
}

// ExportCSV writes the series in canonical column order.
func ExportCSV(w io.Writer, series *reactor.Series) error {
	return writeCSV(w, series)
}

func writeCSV(w io.Writer, series *reactor.Series) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(reactor.ColumnOrder); err != nil {
		return err
	}

	cols := make([][]float64, len(reactor.ColumnOrder))
	for i, name := range reactor.ColumnOrder {
		cols[i] = series.Column(name)
	}

	row := make([]string, len(cols))
	for k := 0; k < series.Len(); k++ {
		for i := range cols {
			row[i] = strconv.FormatFloat(cols[i][k], 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
