package geom

import "math"

// Segment is a line segment between two points.
type Segment struct {
	A, B Point
}

// Length returns the euclidean length of s.
func (s Segment) Length() float64 {
	return s.A.Distance(s.B)
}

// orientation classifies the turn made by the ordered triple (p, q, r):
// 0 collinear, 1 clockwise, 2 counter-clockwise.
func orientation(p, q, r Point) int {
	v := (q.Y-p.Y)*(r.X-q.X) - (q.X-p.X)*(r.Y-q.Y)
	switch {
	case v > 0:
		return 1
	case v < 0:
		return 2
	}
	return 0
}

// onSegment reports whether q lies within the bounding box spanned by p and
// r. Callers have already established that the three points are collinear.
func onSegment(p, q, r Point) bool {
	return q.X <= math.Max(p.X, r.X) && q.X >= math.Min(p.X, r.X) &&
		q.Y <= math.Max(p.Y, r.Y) && q.Y >= math.Min(p.Y, r.Y)
}

// Intersects reports whether s and o share at least one point. The segments
// cross when their orientation pairs straddle each other; collinear triples
// fall back to a bounding-box containment check, so touching endpoints,
// collinear overlap, and degenerate zero-length segments all count as
// intersections.
func (s Segment) Intersects(o Segment) bool {
	o1 := orientation(s.A, s.B, o.A)
	o2 := orientation(s.A, s.B, o.B)
	o3 := orientation(o.A, o.B, s.A)
	o4 := orientation(o.A, o.B, s.B)

	if o1 != o2 && o3 != o4 {
		return true
	}
	if o1 == 0 && onSegment(s.A, o.A, s.B) {
		return true
	}
	if o2 == 0 && onSegment(s.A, o.B, s.B) {
		return true
	}
	if o3 == 0 && onSegment(o.A, s.A, o.B) {
		return true
	}
	if o4 == 0 && onSegment(o.A, s.B, o.B) {
		return true
	}
	return false
}
