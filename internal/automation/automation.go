// Package automation runs scripted batches of map generations described in
// YAML, rendering or storing each step's result.
package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/codebox/generative-city-map/internal/config"
	"github.com/codebox/generative-city-map/internal/experiment"
	"github.com/codebox/generative-city-map/internal/export"
	"github.com/codebox/generative-city-map/internal/render"
	"github.com/codebox/generative-city-map/internal/storage"
)

// Scenario defines a scripted generation sequence
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single step in a scenario: one full run configuration
// plus what to do with the grown map.
type ScenarioStep struct {
	Name          string `yaml:"name"`
	config.Config `yaml:",inline"`
	SaveAs        string  `yaml:"save_as"`
	Scale         float64 `yaml:"scale"`
	Store         bool    `yaml:"store"`
}

// UnmarshalYAML fills a step with the run defaults first, so scenario files
// only spell out what differs.
func (s *ScenarioStep) UnmarshalYAML(value *yaml.Node) error {
	s.Config = *config.DefaultConfig()
	s.Scale = 8
	type raw ScenarioStep
	return value.Decode((*raw)(s))
}

// StepResult records what one step produced.
type StepResult struct {
	Name      string
	RunID     string
	Output    string
	Ticks     int
	Lines     int
	Exhausted bool
	Metrics   map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario executes all steps in order, stopping at the first failure and
// returning the results gathered so far. Steps with save_as render an image
// to that path; steps with store persist the full run.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step %d", i+1)
		}
		logger.Info("running step", "scenario", scenario.Name, "step", name, "n", fmt.Sprintf("%d/%d", i+1, len(scenario.Steps)))

		cfg := step.ToRun()
		exp := experiment.New(cfg)
		for _, m := range experiment.DefaultMetrics(cfg.Width, cfg.Height) {
			exp.AddMetric(m)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sr := StepResult{
			Name:      name,
			Ticks:     result.Ticks,
			Lines:     result.Lines,
			Exhausted: result.Exhausted,
			Metrics:   result.Metrics,
		}

		if step.SaveAs != "" {
			if err := writeOutput(step, cfg, result); err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			sr.Output = step.SaveAs
			logger.Info("wrote output", "step", name, "path", step.SaveAs)
		}

		if step.Store {
			if store == nil {
				return results, fmt.Errorf("step %d: no store configured", i+1)
			}
			runID, err := store.Save(cfg, result)
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			sr.RunID = runID
			logger.Info("stored run", "step", name, "run", runID)
		}

		results = append(results, sr)
	}

	return results, nil
}

// writeOutput renders the step's map to save_as, picking the format from the
// file extension.
func writeOutput(step ScenarioStep, cfg experiment.Config, result *experiment.Result) error {
	switch filepath.Ext(step.SaveAs) {
	case ".png":
		r, err := render.New(render.Options{
			Width:  cfg.Width,
			Height: cfg.Height,
			Scale:  step.Scale,
			Style:  step.Style,
			Seed:   uint32(cfg.Seed),
		})
		if err != nil {
			return err
		}
		return r.RenderPNG(step.SaveAs, result.Model)
	case ".svg":
		svg := export.ForestSVG(result.Model, export.DefaultSVGOptions(cfg.Width, cfg.Height))
		return os.WriteFile(step.SaveAs, []byte(svg), 0644)
	case ".dot":
		return os.WriteFile(step.SaveAs, []byte(export.TopologyDOT(result.Model)), 0644)
	default:
		return fmt.Errorf("unknown output format: %s", step.SaveAs)
	}
}
