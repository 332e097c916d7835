package city

import (
	"math"

	"github.com/codebox/generative-city-map/internal/geom"
)

// Viewport is the boundary the forest grows inside. Contains is the
// visibility predicate used for offscreen collisions; Bounds frames random
// root placement and rendering.
type Viewport interface {
	Contains(x, y float64) bool
	Bounds() geom.Rect
}

// RectView is the full Width x Height canvas.
type RectView struct {
	Width, Height float64
}

func (v RectView) Contains(x, y float64) bool {
	return x >= 0 && x < v.Width && y >= 0 && y < v.Height
}

func (v RectView) Bounds() geom.Rect {
	return geom.NewRect(0, 0, v.Width, v.Height)
}

// DiscView is the disc inscribed in the Width x Height canvas, a circular
// city limit.
type DiscView struct {
	Width, Height float64
}

func (v DiscView) Contains(x, y float64) bool {
	r := math.Min(v.Width, v.Height) / 2
	dx := x - v.Width/2
	dy := y - v.Height/2
	return dx*dx+dy*dy < r*r
}

func (v DiscView) Bounds() geom.Rect {
	return geom.NewRect(0, 0, v.Width, v.Height)
}
