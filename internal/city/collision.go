package city

// Traverser is the forest view the detector scans: a short-circuiting
// traversal over every line of every seed. *Model satisfies it.
type Traverser interface {
	ForEachLineUntilTrue(visit func(*Line) bool) bool
}

// Detector decides whether a street's latest step is blocked, by the
// viewport boundary or by any other street in the forest.
type Detector struct {
	View Viewport
}

// CheckForCollisions reports whether l collides. A tip outside the viewport
// is an immediate collision, no scan needed. Otherwise every line in the
// forest is tested, active or not, skipping l itself, its direct parent and
// l's own children: those pairs share an endpoint by construction and must
// never count as collisions. The scan stops at the first hit.
func (d *Detector) CheckForCollisions(l *Line, forest Traverser) bool {
	if !d.View.Contains(l.Tip.X, l.Tip.Y) {
		return true
	}
	seg := l.Segment()
	return forest.ForEachLineUntilTrue(func(o *Line) bool {
		if o.Seed == l.Seed &&
			(o.Index == l.Index || o.Index == l.Parent || o.Parent == l.Index) {
			return false
		}
		return seg.Intersects(o.Segment())
	})
}
