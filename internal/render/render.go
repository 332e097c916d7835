// Package render rasterizes a grown forest to an image: background washes,
// generation-weighted street strokes, city blocks along the streets, and the
// per-style stylization (ink, pencil, blueprint). Everything visual draws
// its randomness from a stream derived from the run seed, so the growth
// geometry and the look are independently reproducible.
package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/fogleman/gg"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/geom"
	"github.com/codebox/generative-city-map/internal/rng"
)

type Options struct {
	Width  float64 // canvas units
	Height float64
	Scale  float64 // pixels per unit
	Style  string
	Seed   uint32 // run seed; the visual stream is derived from it
}

func DefaultOptions(width, height float64, seed uint32) Options {
	return Options{
		Width:  width,
		Height: height,
		Scale:  8,
		Style:  "ink",
		Seed:   seed,
	}
}

type styleFunc func(*Renderer, *gg.Context, *city.Model)

var styles = map[string]styleFunc{
	"ink":       (*Renderer).drawInk,
	"pencil":    (*Renderer).drawPencil,
	"blueprint": (*Renderer).drawBlueprint,
}

func ListStyles() []string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Renderer draws finished forests. One Renderer serves one style and one
// visual seed; Render may be called for any number of models.
type Renderer struct {
	opt    Options
	draw   styleFunc
	margin float64
}

func New(opt Options) (*Renderer, error) {
	fn, ok := styles[opt.Style]
	if !ok {
		return nil, fmt.Errorf("unknown style: %s", opt.Style)
	}
	if opt.Scale <= 0 {
		opt.Scale = 8
	}
	return &Renderer{
		opt:    opt,
		draw:   fn,
		margin: 2 * opt.Scale,
	}, nil
}

func (r *Renderer) Render(m *city.Model) image.Image {
	w := int(r.opt.Width*r.opt.Scale + 2*r.margin)
	h := int(r.opt.Height*r.opt.Scale + 2*r.margin)
	dc := gg.NewContext(w, h)
	r.draw(r, dc, m)
	return dc.Image()
}

func (r *Renderer) RenderPNG(path string, m *city.Model) error {
	w := int(r.opt.Width*r.opt.Scale + 2*r.margin)
	h := int(r.opt.Height*r.opt.Scale + 2*r.margin)
	dc := gg.NewContext(w, h)
	r.draw(r, dc, m)
	return dc.SavePNG(path)
}

// px maps a canvas point to pixel coordinates.
func (r *Renderer) px(p geom.Point) (float64, float64) {
	return r.margin + p.X*r.opt.Scale, r.margin + p.Y*r.opt.Scale
}

func (r *Renderer) lineWidth(generation int) float64 {
	w := 0.35 * r.opt.Scale * math.Pow(0.75, float64(generation))
	if w < 1 {
		w = 1
	}
	return w
}

// visualStream returns a fresh jitter source. Each Render call starts the
// stream over, so re-rendering the same model yields identical pixels.
func (r *Renderer) visualStream() *rng.Source {
	return rng.New(rng.Derive(r.opt.Seed, 1))
}

func (r *Renderer) drawInk(dc *gg.Context, m *city.Model) {
	src := r.visualStream()
	pal := NewPalette(src, "ink")

	dc.SetColor(pal.Background)
	dc.Clear()

	r.blocks(dc, m, src, pal.Paper)

	dc.SetLineCap(gg.LineCapRound)
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		x1, y1 := r.px(l.Origin)
		x2, y2 := r.px(l.Tip)
		dc.SetColor(pal.StreetShade(l.Tag))
		dc.SetLineWidth(r.lineWidth(l.Generation))
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		return false
	})

	// Seed markers: a plaza dot at every root.
	dc.SetColor(pal.Accent)
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		if l.Root() {
			x, y := r.px(l.Origin)
			dc.DrawCircle(x, y, 0.45*r.opt.Scale)
			dc.Fill()
		}
		return false
	})
}

func (r *Renderer) drawPencil(dc *gg.Context, m *city.Model) {
	src := r.visualStream()
	pal := NewPalette(src, "pencil")

	dc.SetColor(pal.Background)
	dc.Clear()

	r.blocks(dc, m, src, pal.Paper)

	// Layered low-alpha strokes with jittered endpoints read as graphite.
	cr, cg, cb, _ := pal.Street.RGBA()
	jitter := 0.12 * r.opt.Scale

	dc.SetLineCap(gg.LineCapRound)
	for pass := 0; pass < 3; pass++ {
		m.ForEachLineUntilTrue(func(l *city.Line) bool {
			x1, y1 := r.px(l.Origin)
			x2, y2 := r.px(l.Tip)
			dc.SetRGBA(
				float64(cr)/65535,
				float64(cg)/65535,
				float64(cb)/65535,
				0.30,
			)
			dc.SetLineWidth(r.lineWidth(l.Generation) * src.Range(0.7, 1.1))
			dc.DrawLine(
				x1+src.Range(-jitter, jitter), y1+src.Range(-jitter, jitter),
				x2+src.Range(-jitter, jitter), y2+src.Range(-jitter, jitter),
			)
			dc.Stroke()
			return false
		})
	}
}

func (r *Renderer) drawBlueprint(dc *gg.Context, m *city.Model) {
	src := r.visualStream()
	pal := NewPalette(src, "blueprint")

	w := float64(dc.Width())
	h := float64(dc.Height())
	grad := gg.NewLinearGradient(0, 0, 0, h)
	grad.AddColorStop(0, pal.Background)
	grad.AddColorStop(1, pal.Paper)
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	dc.SetLineCap(gg.LineCapSquare)
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		x1, y1 := r.px(l.Origin)
		x2, y2 := r.px(l.Tip)
		dc.SetColor(pal.Street)
		dc.SetLineWidth(r.lineWidth(l.Generation) * 0.7)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
		return false
	})

	dc.SetColor(pal.Accent)
	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		if l.Root() {
			x, y := r.px(l.Origin)
			dc.DrawCircle(x, y, 0.5*r.opt.Scale)
			dc.SetLineWidth(1.5)
			dc.Stroke()
		}
		return false
	})
}

// blocks fills building rectangles along both sides of each street long
// enough to carry them. Vacancies and depths come from the visual stream;
// the street's tag sets the block rhythm.
func (r *Renderer) blocks(dc *gg.Context, m *city.Model, src *rng.Source, fill color.Color) {
	const (
		minSteps = 4
		margin   = 0.35 // gap between street and block, canvas units
		gap      = 0.4  // gap between blocks
	)
	cr, cg, cb, _ := fill.RGBA()

	m.ForEachLineUntilTrue(func(l *city.Line) bool {
		if l.Steps < minSteps {
			return false
		}
		length := l.Origin.Distance(l.Tip)
		h := geom.Heading(l.Angle)
		n := geom.Pt(h.Y, -h.X)
		span := 1.2 + l.Tag // block length varies per street

		for _, side := range []float64{1, -1} {
			for d := 0.5; d+span < length-0.5; d += span + gap {
				if src.Float64() < 0.35 {
					continue // vacant lot
				}
				depth := src.Range(0.6, 1.4)
				base := l.Origin.Add(h.Mul(d)).Add(n.Mul(side * margin))
				c0 := base
				c1 := base.Add(h.Mul(span))
				c2 := c1.Add(n.Mul(side * depth))
				c3 := c0.Add(n.Mul(side * depth))

				x, y := r.px(c0)
				dc.MoveTo(x, y)
				x, y = r.px(c1)
				dc.LineTo(x, y)
				x, y = r.px(c2)
				dc.LineTo(x, y)
				x, y = r.px(c3)
				dc.LineTo(x, y)
				dc.ClosePath()
				dc.SetRGBA(float64(cr)/65535, float64(cg)/65535, float64(cb)/65535, 0.9)
				dc.Fill()
			}
		}
		return false
	})
}
