package experiment

import (
	"context"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/metrics"
	"github.com/codebox/generative-city-map/internal/rng"
)

// DefaultMaxTicks caps a run whose configuration never exhausts on its own.
const DefaultMaxTicks = 10000

type Config struct {
	Seed     int64
	Width    float64
	Height   float64
	Viewport string
	MaxTicks int
	City     city.Config
}

func DefaultRunConfig() Config {
	return Config{
		Seed:     1,
		Width:    120,
		Height:   80,
		Viewport: "rect",
		MaxTicks: DefaultMaxTicks,
		City:     city.DefaultConfig(),
	}
}

type Result struct {
	Ticks         int
	Lines         int
	Seeds         int
	Exhausted     bool
	ActiveHistory []int
	Metrics       map[string]float64
	Model         *city.Model
}

// Experiment grows one map from one configuration: tick until the forest
// exhausts or the cap hits. Interactive frontends own their own frame loops
// and drive the model directly instead.
type Experiment struct {
	cfg     Config
	metrics []metrics.Metric
}

func New(cfg Config) *Experiment {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = DefaultMaxTicks
	}
	return &Experiment{cfg: cfg}
}

func (e *Experiment) AddMetric(m metrics.Metric) {
	e.metrics = append(e.metrics, m)
}

func (e *Experiment) Config() Config {
	return e.cfg
}

// Run generates the forest and ticks it to rest, observing metrics after
// every tick. Cancellation is honored between ticks and returns the partial
// result alongside the context's error.
func (e *Experiment) Run(ctx context.Context) (*Result, error) {
	view, err := NewViewport(e.cfg.Viewport, e.cfg.Width, e.cfg.Height)
	if err != nil {
		return nil, err
	}

	model := city.New(rng.New(uint32(e.cfg.Seed)), view, e.cfg.City)
	model.Generate()

	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{
		Seeds:         model.SeedCount(),
		ActiveHistory: []int{model.ActiveLines()},
		Model:         model,
	}

	for model.IsActive() && result.Ticks < e.cfg.MaxTicks {
		select {
		case <-ctx.Done():
			e.finish(result, model)
			return result, ctx.Err()
		default:
		}

		model.Grow()
		result.Ticks++
		result.ActiveHistory = append(result.ActiveHistory, model.ActiveLines())
		for _, m := range e.metrics {
			m.Observe(model, result.Ticks)
		}
	}

	e.finish(result, model)
	return result, nil
}

func (e *Experiment) finish(r *Result, model *city.Model) {
	r.Lines = model.LineCount()
	r.Exhausted = !model.IsActive()
	r.Metrics = make(map[string]float64, len(e.metrics))
	for _, m := range e.metrics {
		r.Metrics[m.Name()] = m.Value()
	}
}
