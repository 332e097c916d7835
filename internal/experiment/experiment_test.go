package experiment

import (
	"context"
	"testing"

	"github.com/codebox/generative-city-map/internal/city"
)

func testConfig(seed int64) Config {
	return Config{
		Seed:     seed,
		Width:    50,
		Height:   50,
		Viewport: "rect",
		MaxTicks: 5000,
		City:     city.Config{SeedCount: 3, PBifurcation: 0.12, ExpiryThreshold: 0.03},
	}
}

func TestRunCompletes(t *testing.T) {
	exp := New(testConfig(4))
	for _, m := range DefaultMetrics(50, 50) {
		exp.AddMetric(m)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Exhausted {
		t.Error("expected the forest to exhaust")
	}
	if result.Lines < 3 {
		t.Errorf("expected at least the 3 roots, got %d lines", result.Lines)
	}
	if result.Seeds != 3 {
		t.Errorf("expected 3 seeds, got %d", result.Seeds)
	}
	if len(result.ActiveHistory) != result.Ticks+1 {
		t.Errorf("history length %d, want ticks+1 = %d",
			len(result.ActiveHistory), result.Ticks+1)
	}
	if result.ActiveHistory[len(result.ActiveHistory)-1] != 0 {
		t.Error("exhausted run should end with zero active lines")
	}
	for _, name := range []string{"length", "streets", "depth", "coverage"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %q", name)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	a, err := New(testConfig(42)).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(testConfig(42)).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if a.Ticks != b.Ticks || a.Lines != b.Lines {
		t.Errorf("same seed diverged: %d/%d ticks, %d/%d lines",
			a.Ticks, b.Ticks, a.Lines, b.Lines)
	}
}

func TestRunUnknownViewport(t *testing.T) {
	cfg := testConfig(1)
	cfg.Viewport = "dodecahedron"
	if _, err := New(cfg).Run(context.Background()); err == nil {
		t.Fatal("expected an error for an unknown viewport")
	}
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := New(testConfig(1)).Run(ctx)
	if err == nil {
		t.Fatal("expected a context error")
	}
	if result == nil {
		t.Fatal("expected a partial result")
	}
	if result.Ticks != 0 {
		t.Errorf("canceled before the first tick, got %d ticks", result.Ticks)
	}
}

func TestMaxTicksCapsRun(t *testing.T) {
	cfg := testConfig(9)
	cfg.MaxTicks = 3
	// A roomy canvas with splits every tick keeps the forest busy well
	// past 3 ticks.
	cfg.Width, cfg.Height = 500, 500
	cfg.City = city.Config{SeedCount: 10, PBifurcation: 1, ExpiryThreshold: 0}

	result, err := New(cfg).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if result.Ticks != 3 {
		t.Errorf("expected the cap at 3 ticks, got %d", result.Ticks)
	}
	if result.Exhausted {
		t.Error("capped run should not report exhaustion")
	}
}

func TestEnsembleRunsConsecutiveSeeds(t *testing.T) {
	ens := NewEnsemble(testConfig(0), 4, 10)
	results, err := ens.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if !r.Exhausted {
			t.Errorf("run %d did not exhaust", i)
		}
	}

	// Seed 10's solo run must match the ensemble's first slot.
	solo, err := New(testConfig(10)).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if solo.Ticks != results[0].Ticks || solo.Lines != results[0].Lines {
		t.Error("ensemble run diverged from the equivalent solo run")
	}
}
