// Package optim sweeps growth parameters: every combination of the supplied
// grid runs one deterministic map and the chosen metric picks the winner.
package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/codebox/generative-city-map/internal/experiment"
)

// Evaluation is one grid point: the parameters used and the metric value the
// run produced.
type Evaluation struct {
	Params map[string]float64
	Value  float64
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid combination and returns the evaluation maximizing
// the named metric plus the full table. Combinations whose build or run
// fails are skipped; cancellation aborts the sweep with the partial table.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) (Evaluation, []Evaluation, error) {

	best := Evaluation{Value: math.Inf(-1)}
	var evals []Evaluation

	g.searchRecursive(ctx, 0, make(map[string]float64), buildExperiment, metricName, &best, &evals)

	if err := ctx.Err(); err != nil {
		return best, evals, err
	}
	return best, evals, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	buildExperiment func(map[string]float64) (*experiment.Experiment, error),
	metricName string,
	best *Evaluation,
	evals *[]Evaluation,
) {
	if ctx.Err() != nil {
		return
	}

	if depth == len(g.paramNames) {
		exp, err := buildExperiment(current)
		if err != nil {
			return
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return
		}

		eval := Evaluation{Params: cloneParams(current), Value: result.Metrics[metricName]}
		*evals = append(*evals, eval)
		if eval.Value > best.Value {
			*best = eval
		}
		return
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		g.searchRecursive(ctx, depth+1, current, buildExperiment, metricName, best, evals)
	}
	delete(current, paramName)
}

func cloneParams(params map[string]float64) map[string]float64 {
	c := make(map[string]float64, len(params))
	for k, v := range params {
		c[k] = v
	}
	return c
}

// ApplyParams returns base with the named growth parameters replaced.
func ApplyParams(base experiment.Config, params map[string]float64) (experiment.Config, error) {
	cfg := base
	for name, v := range params {
		switch name {
		case "branch":
			cfg.City.PBifurcation = v
		case "expiry":
			cfg.City.ExpiryThreshold = v
		case "seeds":
			cfg.City.SeedCount = int(v)
		case "width":
			cfg.Width = v
		case "height":
			cfg.Height = v
		case "seed":
			cfg.Seed = int64(v)
		default:
			return cfg, fmt.Errorf("unknown parameter: %s", name)
		}
	}
	return cfg, nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	step := (hi - lo) / float64(n-1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}
