// Package optim searches scenario parameter grids for the cheapest
// run under a caller-supplied cost.
package optim

import (
	"context"
	"math"

	"github.com/san-kum/reactorsim/internal/experiment"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
)

// Builder maps one grid point to a runnable scenario.
type Builder func(params map[string]float64) (experiment.Scenario, error)

// Cost scores a finished run; lower is better.
type Cost func(res *reactor.Result) float64

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// NewGridSearch sweeps paramNames over the cartesian product of the
// given ranges, one range per name.
func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Size returns the number of grid points.
func (g *GridSearch) Size() int {
	n := 1
	for _, r := range g.ranges {
		n *= len(r)
	}
	return n
}

// Search runs every grid point sequentially and returns the parameters
// of the cheapest run along with its cost. Points whose scenario fails
// to build or run are skipped; if no point completes, the returned map
// is nil and the cost is +Inf. Cancelling ctx aborts the sweep.
func (g *GridSearch) Search(ctx context.Context, data nucdata.Provider, build Builder, cost Cost) (map[string]float64, float64, error) {
	best := math.Inf(1)
	var bestParams map[string]float64

	err := g.searchRecursive(ctx, 0, make(map[string]float64), data, build, cost, &best, &bestParams)
	return bestParams, best, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	data nucdata.Provider,
	build Builder,
	cost Cost,
	best *float64,
	bestParams *map[string]float64,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		sc, err := build(current)
		if err != nil {
			return nil
		}

		res, err := sc.Run(ctx, data)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return nil
		}

		if val := cost(res); val < *best {
			*best = val
			*bestParams = make(map[string]float64, len(current))
			for k, v := range current {
				(*bestParams)[k] = v
			}
		}
		return nil
	}

	name := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[name] = val
		if err := g.searchRecursive(ctx, depth+1, current, data, build, cost, best, bestParams); err != nil {
			return err
		}
	}
	delete(current, name)
	return nil
}
