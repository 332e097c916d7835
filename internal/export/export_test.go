package export

import (
	"context"
	"strings"
	"testing"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/rng"
)

func grownModel(seed uint32) *city.Model {
	m := city.New(rng.New(seed), city.RectView{Width: 40, Height: 30},
		city.Config{SeedCount: 3, PBifurcation: 0.15, ExpiryThreshold: 0.03})
	m.Generate()
	for i := 0; i < 150 && m.IsActive(); i++ {
		m.Grow()
	}
	return m
}

func TestForestSVG(t *testing.T) {
	m := grownModel(4)
	svg := ForestSVG(m, DefaultSVGOptions(40, 30))

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.HasSuffix(svg, "</svg>") {
		t.Error("missing closing tag")
	}
	if got := strings.Count(svg, "<line "); got != m.LineCount() {
		t.Errorf("expected %d line elements, got %d", m.LineCount(), got)
	}
	if got := strings.Count(svg, "<circle "); got != m.SeedCount() {
		t.Errorf("expected %d root markers, got %d", m.SeedCount(), got)
	}
}

func TestForestSVGDeterministic(t *testing.T) {
	a := ForestSVG(grownModel(9), DefaultSVGOptions(40, 30))
	b := ForestSVG(grownModel(9), DefaultSVGOptions(40, 30))
	if a != b {
		t.Error("same seed produced different SVG")
	}
}

func TestTopologyDOT(t *testing.T) {
	m := grownModel(4)
	dot := TopologyDOT(m)

	if !strings.HasPrefix(dot, "digraph forest {") {
		t.Error("missing digraph header")
	}
	if got := strings.Count(dot, " -> "); got != m.LineCount()-m.SeedCount() {
		t.Errorf("expected %d edges, got %d", m.LineCount()-m.SeedCount(), got)
	}
	// Every root renders as a bold box.
	if got := strings.Count(dot, "shape=box"); got != m.SeedCount() {
		t.Errorf("expected %d root nodes, got %d", m.SeedCount(), got)
	}
}

func TestRenderTopologySVG(t *testing.T) {
	dot := "digraph g {\n  a -> b;\n}\n"
	svg, err := RenderTopologySVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output is not SVG")
	}
}
