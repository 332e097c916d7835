package experiment

import (
	"context"
	"sync"

	"github.com/codebox/generative-city-map/internal/metrics"
)

// Ensemble runs the same configuration under consecutive seeds, one
// goroutine per run. Each run gets its own model and its own metric
// instances; only the seed varies.
type Ensemble struct {
	base      Config
	numRuns   int
	seedStart int64

	// Metrics builds a fresh observer set per run. Nil means DefaultMetrics.
	Metrics func() []metrics.Metric
}

func NewEnsemble(base Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{base: base, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.base
			cfg.Seed = e.seedStart + int64(idx)

			exp := New(cfg)
			if e.Metrics != nil {
				for _, m := range e.Metrics() {
					exp.AddMetric(m)
				}
			} else {
				for _, m := range DefaultMetrics(cfg.Width, cfg.Height) {
					exp.AddMetric(m)
				}
			}

			results[idx], errs[idx] = exp.Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
