package export

import (
	"fmt"
	"strings"

	"github.com/codebox/generative-city-map/internal/city"
)

// SVGOptions sizes and colors a vector export. Width and Height are canvas
// units; Scale converts them to SVG user units.
type SVGOptions struct {
	Width      float64
	Height     float64
	Scale      float64
	Background string
	Stroke     string
	Accent     string
}

func DefaultSVGOptions(width, height float64) SVGOptions {
	return SVGOptions{
		Width:      width,
		Height:     height,
		Scale:      8,
		Background: "#f6f2e8",
		Stroke:     "#2b2b33",
		Accent:     "#b3543a",
	}
}

// ForestSVG renders the forest as one vector image: a line element per
// street with generation-weighted width, and a circle per root.
func ForestSVG(m *city.Model, opt SVGOptions) string {
	if opt.Scale <= 0 {
		opt.Scale = 8
	}
	margin := 2 * opt.Scale
	w := opt.Width*opt.Scale + 2*margin
	h := opt.Height*opt.Scale + 2*margin

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke="%s" stroke-linecap="round">
`, w, h, w, h, opt.Background, opt.Stroke))

	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		width := 0.35 * opt.Scale
		for g := 0; g < l.Generation; g++ {
			width *= 0.75
		}
		if width < 0.5 {
			width = 0.5
		}
		sb.WriteString(fmt.Sprintf(
			`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke-width="%.2f"/>
`,
			margin+l.Origin.X*opt.Scale, margin+l.Origin.Y*opt.Scale,
			margin+l.Tip.X*opt.Scale, margin+l.Tip.Y*opt.Scale,
			width))
		return false
	})

	sb.WriteString("</g>\n")

	sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", opt.Accent))
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		if l.Root() {
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`,
				margin+l.Origin.X*opt.Scale, margin+l.Origin.Y*opt.Scale,
				0.45*opt.Scale))
		}
		return false
	})
	sb.WriteString("</g>\n</svg>")

	return sb.String()
}
