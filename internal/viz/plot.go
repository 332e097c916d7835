package viz

import (
	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/geom"
)

// DrawForest rasterizes every street onto the canvas, marking roots with a
// 3x3 block. X and Y scale independently so the viewport always fills the
// whole dot grid.
func DrawForest(c *Canvas, m *city.Model) {
	w, h := c.Size()
	b := m.Bounds()
	sx := float64(w-1) / span(b.W())
	sy := float64(h-1) / span(b.H())
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		x0, y0 := project(l.Origin, b, sx, sy)
		x1, y1 := project(l.Tip, b, sx, sy)
		c.DrawLine(x0, y0, x1, y1)
		if l.Root() {
			c.Mark(x0, y0)
		}
		return false
	})
}

// Plot draws the forest onto a fresh cols x rows canvas and returns the
// braille text. Non-interactive counterpart of the live view.
func Plot(m *city.Model, cols, rows int) string {
	c := NewCanvas(cols, rows)
	DrawForest(c, m)
	return c.String()
}

func project(p geom.Point, b geom.Rect, sx, sy float64) (int, int) {
	return int((p.X - b.Min.X) * sx), int((p.Y - b.Min.Y) * sy)
}

func span(v float64) float64 {
	if v <= 0 {
		return 1
	}
	return v
}
