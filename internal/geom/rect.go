package geom

// Rect is an axis-aligned rectangle with Min at the lower corner.
type Rect struct {
	Min, Max Point
}

// NewRect returns the rectangle spanning the two corners, normalized so that
// Min holds the smaller coordinates.
func NewRect(x0, y0, x1, y1 float64) Rect {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return Rect{Min: Point{X: x0, Y: y0}, Max: Point{X: x1, Y: y1}}
}

// W returns the width of r.
func (r Rect) W() float64 {
	return r.Max.X - r.Min.X
}

// H returns the height of r.
func (r Rect) H() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Contains reports whether p lies within r, inclusive of the minimum edges
// and exclusive of the maximum edges.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}
