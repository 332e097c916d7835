package automation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/codebox/generative-city-map/internal/config"
)

const scenarioYAML = `name: smoke
description: two tiny maps
steps:
  - name: first
    seed: 11
    width: 40
    height: 40
    seeds: 3
    branch: 0.12
    expiry: 0.03
  - name: second
    seed: 12
    width: 40
    height: 40
    seeds: 2
    branch: 0.1
    expiry: 0.04
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "smoke" || len(s.Steps) != 2 {
		t.Fatalf("scenario = %q with %d steps", s.Name, len(s.Steps))
	}
	if s.Steps[0].Seed != 11 || s.Steps[1].Seed != 12 {
		t.Errorf("step seeds = %d, %d", s.Steps[0].Seed, s.Steps[1].Seed)
	}
}

func TestLoadScenarioAppliesDefaults(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, "name: sparse\nsteps:\n  - seed: 9\n"))
	if err != nil {
		t.Fatal(err)
	}
	step := s.Steps[0]
	if step.Width != config.DefaultWidth || step.Style != config.DefaultStyle {
		t.Errorf("defaults not applied: width %v style %q", step.Width, step.Style)
	}
	if step.Scale != 8 {
		t.Errorf("default scale = %v, want 8", step.Scale)
	}
}

func TestRunScenario(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "first.svg")
	s.Steps[0].SaveAs = out

	results, err := RunScenario(context.Background(), s, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	for _, r := range results {
		if r.Ticks == 0 || r.Lines == 0 {
			t.Errorf("step %s: empty run (%d ticks, %d lines)", r.Name, r.Ticks, r.Lines)
		}
		if _, ok := r.Metrics["length"]; !ok {
			t.Errorf("step %s: missing length metric", r.Name)
		}
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("save_as output is not an SVG")
	}
}

func TestRunScenarioBadStep(t *testing.T) {
	s := &Scenario{
		Name: "broken",
		Steps: []ScenarioStep{
			{Config: *config.DefaultConfig()},
		},
	}
	s.Steps[0].Viewport = "hex"

	_, err := RunScenario(context.Background(), s, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("err = %v, want step 1 failure", err)
	}
}

func TestRunScenarioUnknownFormat(t *testing.T) {
	s := &Scenario{
		Name: "badout",
		Steps: []ScenarioStep{
			{Config: *config.DefaultConfig(), SaveAs: "map.tiff", Scale: 4},
		},
	}
	s.Steps[0].Width, s.Steps[0].Height = 30, 30
	s.Steps[0].Seeds = 2

	_, err := RunScenario(context.Background(), s, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "unknown output format") {
		t.Fatalf("err = %v, want unknown output format", err)
	}
}
