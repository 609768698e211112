package experiment

import (
	"context"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/reactorsim/internal/nucdata"
)

// ScanPoint summarizes one run of a gain sweep.
type ScanPoint struct {
	Gain       float64
	TailPower  float64
	Excursions int
	Metrics    map[string]float64
}

// Scan runs the scenario once per thermal gain, in parallel, and
// reports the settled power for each. The data provider is shared
// across the goroutines; providers must tolerate concurrent readers.
func Scan(ctx context.Context, data nucdata.Provider, base Scenario, gains []float64) ([]ScanPoint, error) {
	points := make([]ScanPoint, len(gains))
	errs := make([]error, len(gains))

	var wg sync.WaitGroup
	for i, gain := range gains {
		wg.Add(1)
		go func(idx int, g float64) {
			defer wg.Done()

			sc := base
			sc.GainThermal = g
			res, err := sc.Run(ctx, data)
			if err != nil {
				errs[idx] = err
				return
			}
			points[idx] = ScanPoint{
				Gain:       g,
				TailPower:  TailMean(res.Series.Power),
				Excursions: res.Excursions,
				Metrics:    res.Metrics,
			}
		}(i, gain)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return points, nil
}

// TailMean averages the trailing fifth of a series, the settled
// portion of a run. Short series are averaged whole.
func TailMean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	start := len(xs) - len(xs)/5
	if start == len(xs) {
		start = 0
	}
	return stat.Mean(xs[start:], nil)
}

// Linspace returns n evenly spaced values across [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Best returns the index of the scan point whose settled power lands
// closest to target, or -1 when the scan is empty.
func Best(points []ScanPoint, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, p := range points {
		if d := math.Abs(p.TailPower - target); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}
