package metrics

import (
	"github.com/codebox/generative-city-map/internal/city"
)

// Metric observes the forest once per tick and reduces it to one number.
type Metric interface {
	Name() string
	Observe(m *city.Model, tick int)
	Value() float64
	Reset()
}

type StreetLength struct {
	name  string
	total float64
}

func NewStreetLength() *StreetLength {
	return &StreetLength{name: "length"}
}

func (s *StreetLength) Name() string { return s.name }

func (s *StreetLength) Observe(m *city.Model, tick int) {
	total := 0.0
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		total += l.Origin.Distance(l.Tip)
		return false
	})
	s.total = total
}

func (s *StreetLength) Value() float64 { return s.total }

func (s *StreetLength) Reset() { s.total = 0 }

type Streets struct {
	name  string
	count int
}

func NewStreets() *Streets {
	return &Streets{name: "streets"}
}

func (s *Streets) Name() string { return s.name }

func (s *Streets) Observe(m *city.Model, tick int) {
	s.count = m.LineCount()
}

func (s *Streets) Value() float64 { return float64(s.count) }

func (s *Streets) Reset() { s.count = 0 }

type Depth struct {
	name string
	max  int
}

func NewDepth() *Depth {
	return &Depth{name: "depth"}
}

func (d *Depth) Name() string { return d.name }

func (d *Depth) Observe(m *city.Model, tick int) {
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		if l.Generation > d.max {
			d.max = l.Generation
		}
		return false
	})
}

func (d *Depth) Value() float64 { return float64(d.max) }

func (d *Depth) Reset() { d.max = 0 }

// Coverage marks the grid cell under every street tip each tick. Tips move
// one unit per tick, so over a run the marks trace the full forest; the
// value is the marked fraction of the canvas.
type Coverage struct {
	name  string
	cell  float64
	cols  int
	rows  int
	marks map[int]struct{}
}

func NewCoverage(width, height, cell float64) *Coverage {
	if cell <= 0 {
		cell = 1
	}
	c := &Coverage{
		name: "coverage",
		cell: cell,
		cols: int(width/cell) + 1,
		rows: int(height/cell) + 1,
	}
	c.marks = make(map[int]struct{})
	return c
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(m *city.Model, tick int) {
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		col := int(l.Tip.X / c.cell)
		row := int(l.Tip.Y / c.cell)
		if col >= 0 && col < c.cols && row >= 0 && row < c.rows {
			c.marks[row*c.cols+col] = struct{}{}
		}
		return false
	})
}

func (c *Coverage) Value() float64 {
	total := c.cols * c.rows
	if total == 0 {
		return 0
	}
	return float64(len(c.marks)) / float64(total)
}

func (c *Coverage) Reset() {
	c.marks = make(map[int]struct{})
}
