package city

import (
	"math"

	"github.com/codebox/generative-city-map/internal/geom"
	"github.com/codebox/generative-city-map/internal/rng"
)

// Seed is one branch tree: an initial angle and an append-only, insertion
// ordered collection of lines whose first element is the root.
type Seed struct {
	Angle float64
	Lines []Line
}

// Model owns the seeds and drives growth ticks. All randomness comes from
// the single source passed to New.
type Model struct {
	cfg    Config
	src    *rng.Source
	view   Viewport
	det    Detector
	seeds  []Seed
	active int
	ticks  int
}

// lineRef addresses a line by indices so that snapshots survive slice
// reallocation while children are appended mid-tick.
type lineRef struct {
	seed, index int
}

func New(src *rng.Source, view Viewport, cfg Config) *Model {
	return &Model{
		cfg:  cfg,
		src:  src,
		view: view,
		det:  Detector{View: view},
	}
}

// Generate builds the forest roots: SeedCount seeds, each with a random
// initial angle and a root line at a random position inside the viewport.
// It replaces any previous forest. A non-positive SeedCount yields an empty
// forest, not an error.
func (m *Model) Generate() {
	m.seeds = nil
	m.active = 0
	m.ticks = 0
	if m.cfg.SeedCount <= 0 {
		return
	}
	m.seeds = make([]Seed, 0, m.cfg.SeedCount)
	for i := 0; i < m.cfg.SeedCount; i++ {
		angle := m.src.UpTo(2 * math.Pi)
		origin := m.randomOrigin()
		m.seeds = append(m.seeds, Seed{Angle: angle})
		m.spawn(i, origin, angle, -1, 0)
	}
}

// randomOrigin draws a root position inside the viewport. Non-rectangular
// viewports reject offscreen samples; after 64 misses the viewport center
// is used.
func (m *Model) randomOrigin() geom.Point {
	b := m.view.Bounds()
	for i := 0; i < 64; i++ {
		p := geom.Pt(b.Min.X+m.src.UpTo(b.W()), b.Min.Y+m.src.UpTo(b.H()))
		if m.view.Contains(p.X, p.Y) {
			return p
		}
	}
	return b.Center()
}

// spawn appends a new line to seed si and immediately grows it once, so no
// line is ever zero-length. The tag draw precedes the first growth step.
func (m *Model) spawn(si int, origin geom.Point, angle float64, parent, generation int) {
	s := &m.seeds[si]
	s.Lines = append(s.Lines, Line{
		Origin:     origin,
		Tip:        origin,
		Angle:      angle,
		Generation: generation,
		Seed:       si,
		Index:      len(s.Lines),
		Parent:     parent,
		Active:     true,
		Tag:        m.src.Float64(),
	})
	m.active++
	s.Lines[len(s.Lines)-1].grow(m.src, m.cfg)
}

// Grow runs one global tick. The active set is snapshotted first: children
// spawned during the tick join the forest right away (collision scans see
// them) but are not themselves grown until the next tick. Each snapshotted
// line grows one step, then settles in order of precedence: expired lines
// deactivate as they stand, collided lines retract the step and deactivate,
// and surviving lines with a pending split spawn one child at the tip,
// angled ninety degrees off the parent with the side chosen by a coin flip.
func (m *Model) Grow() {
	m.ticks++
	for _, ref := range m.snapshot() {
		l := &m.seeds[ref.seed].Lines[ref.index]
		l.grow(m.src, m.cfg)
		switch {
		case l.Expired:
			m.deactivate(l)
		case m.det.CheckForCollisions(l, m):
			l.retract()
			m.deactivate(l)
		case l.PendingSplit:
			l.PendingSplit = false
			delta := math.Pi / 2
			if m.src.Bool() {
				delta = -delta
			}
			m.spawn(l.Seed, l.Tip, l.Angle+delta, l.Index, l.Generation+1)
		}
	}
}

func (m *Model) snapshot() []lineRef {
	refs := make([]lineRef, 0, m.active)
	for si := range m.seeds {
		for li := range m.seeds[si].Lines {
			if m.seeds[si].Lines[li].Active {
				refs = append(refs, lineRef{seed: si, index: li})
			}
		}
	}
	return refs
}

func (m *Model) deactivate(l *Line) {
	l.Active = false
	m.active--
}

// IsActive reports whether any line is still growing. This is the sole
// termination signal: callers poll it after each Grow.
func (m *Model) IsActive() bool {
	return m.active > 0
}

// ForEachLineUntilTrue visits every line of every seed, in seed-creation
// order then line-creation order, and stops early, returning true, as soon
// as the visitor returns true. The collision detector and the renderers
// both traverse through here; visitors must not mutate the forest.
func (m *Model) ForEachLineUntilTrue(visit func(*Line) bool) bool {
	for si := range m.seeds {
		lines := m.seeds[si].Lines
		for li := range lines {
			if visit(&lines[li]) {
				return true
			}
		}
	}
	return false
}

// ActiveLines returns the number of currently growing lines.
func (m *Model) ActiveLines() int {
	return m.active
}

// LineCount returns the total number of lines across all seeds.
func (m *Model) LineCount() int {
	n := 0
	for si := range m.seeds {
		n += len(m.seeds[si].Lines)
	}
	return n
}

// SeedCount returns the number of seeds the forest was generated with.
func (m *Model) SeedCount() int {
	return len(m.seeds)
}

// Ticks returns how many Grow calls the model has run.
func (m *Model) Ticks() int {
	return m.ticks
}

// Bounds returns the world extent of the viewport the forest grows in.
func (m *Model) Bounds() geom.Rect {
	return m.view.Bounds()
}
