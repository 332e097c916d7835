package city

import (
	"github.com/codebox/generative-city-map/internal/geom"
	"github.com/codebox/generative-city-map/internal/rng"
)

// Line is one street. Origin and Angle are fixed at creation; the Tip
// advances one unit step per tick until the line is deactivated. Seed,
// Index and Parent identify the line within the forest: Parent indexes the
// owning seed's Lines slice and is -1 for a root.
type Line struct {
	Origin       geom.Point
	Tip          geom.Point
	Angle        float64
	Generation   int
	Seed         int
	Index        int
	Parent       int
	Active       bool
	Expired      bool
	PendingSplit bool
	Steps        int

	// Tag is a single random draw made at creation. Growth ignores it; the
	// renderers use it to vary per-street visuals deterministically.
	Tag float64
}

// Segment returns the street's current extent, origin to tip.
func (l *Line) Segment() geom.Segment {
	return geom.Segment{A: l.Origin, B: l.Tip}
}

// Root reports whether l is its seed's root street.
func (l *Line) Root() bool {
	return l.Parent < 0
}

// grow advances the tip one unit step, counts it, then rolls the branch and
// expiry draws in that order. Both draws are always consumed, so the stream
// stays aligned regardless of outcome. The flags are sticky: a roll can set
// them, nothing here clears them.
func (l *Line) grow(src *rng.Source, cfg Config) {
	l.Tip = l.Tip.Add(geom.Heading(l.Angle))
	l.Steps++
	if src.Float64() < cfg.PBifurcation {
		l.PendingSplit = true
	}
	if src.Float64() < float64(l.Generation)*cfg.ExpiryThreshold {
		l.Expired = true
	}
}

// retract undoes the last unit step after a collision. It only backs the
// tip up; it does not compute the true intersection point, and the step
// count keeps the retracted step.
func (l *Line) retract() {
	l.Tip = l.Tip.Sub(geom.Heading(l.Angle))
}
