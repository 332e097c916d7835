package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/codebox/generative-city-map/internal/city"
)

// drawMap renders every street in world coordinates: thickness decays with
// generation, brightness follows the per-line tag, roots get accent dots and
// growing tips a bright head.
func (a *App) drawMap() {
	a.Model.ForEachLineUntilTrue(func(l *city.Line) bool {
		from := rl.NewVector2(float32(l.Origin.X), float32(l.Origin.Y))
		to := rl.NewVector2(float32(l.Tip.X), float32(l.Tip.Y))
		rl.DrawLineEx(from, to, streetWidth(l.Generation), streetColor(l.Tag))
		if l.Root() {
			rl.DrawCircleV(from, 0.55, ColAccent)
		}
		if l.Active {
			rl.DrawCircleV(to, 0.3, ColTip)
		}
		return false
	})
}

// drawOutline traces the city limit, a rectangle or the inscribed disc.
func (a *App) drawOutline() {
	b := a.Model.Bounds()
	if _, ok := a.View.(city.DiscView); ok {
		r := float32(math.Min(b.W(), b.H()) / 2)
		c := b.Center()
		rl.DrawRing(rl.NewVector2(float32(c.X), float32(c.Y)), r-0.2, r, 0, 360, 90, ColOutline)
		return
	}
	rec := rl.NewRectangle(float32(b.Min.X), float32(b.Min.Y), float32(b.W()), float32(b.H()))
	rl.DrawRectangleLinesEx(rec, 0.2, ColOutline)
}

func streetWidth(generation int) float32 {
	w := 0.35 * float32(math.Pow(0.75, float64(generation)))
	if w < 0.06 {
		w = 0.06
	}
	return w
}

// streetColor shades the base street color by the line tag so parallel
// streets stay distinguishable.
func streetColor(tag float64) rl.Color {
	scale := 0.75 + 0.25*tag
	return rl.NewColor(
		uint8(float64(ColStreet.R)*scale),
		uint8(float64(ColStreet.G)*scale),
		uint8(float64(ColStreet.B)*scale),
		255,
	)
}
