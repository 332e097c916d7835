package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/codebox/generative-city-map/internal/city"
)

// TopologyDOT writes the branch genealogy as a Graphviz digraph: one node
// per street, an edge from each parent to its children. Roots are boxes,
// expired streets dashed.
func TopologyDOT(m *city.Model) string {
	var buf bytes.Buffer
	buf.WriteString("digraph forest {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=ellipse, fontsize=10];\n")
	buf.WriteString("\n")

	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		label := fmt.Sprintf("s%d/l%d\\ngen %d, %d steps", l.Seed, l.Index, l.Generation, l.Steps)
		attrs := fmt.Sprintf("label=\"%s\"", label)
		if l.Root() {
			attrs += ", shape=box, style=bold"
		} else if l.Expired {
			attrs += ", style=dashed"
		}
		fmt.Fprintf(&buf, "  %s [%s];\n", nodeID(l), attrs)
		return false
	})

	buf.WriteString("\n")
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		if !l.Root() {
			fmt.Fprintf(&buf, "  s%d_l%d -> %s;\n", l.Seed, l.Parent, nodeID(l))
		}
		return false
	})

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(l *city.Line) string {
	return fmt.Sprintf("s%d_l%d", l.Seed, l.Index)
}

// RenderTopologySVG lays the genealogy out with Graphviz and returns SVG
// bytes.
func RenderTopologySVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
