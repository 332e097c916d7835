package render

import (
	"image/color"
	"math"

	"github.com/codebox/generative-city-map/internal/rng"
)

// Palette holds one run's colors. The base hue and the paper tint are drawn
// from the render stream, never from the growth stream, so restyling a map
// cannot change its geometry.
type Palette struct {
	Hue        float64
	Background color.Color
	Paper      color.Color
	Street     color.Color
	Accent     color.Color
}

func NewPalette(src *rng.Source, style string) Palette {
	switch style {
	case "blueprint":
		hue := src.Range(200, 230)
		return Palette{
			Hue:        hue,
			Background: HSL(hue, 0.55, 0.22),
			Paper:      HSL(hue, 0.50, 0.30),
			Street:     HSL(hue, 0.20, 0.92),
			Accent:     HSL(hue, 0.15, 0.98),
		}
	case "pencil":
		hue := src.Range(30, 55)
		return Palette{
			Hue:        hue,
			Background: HSL(hue, 0.18, 0.93),
			Paper:      HSL(hue, 0.14, 0.88),
			Street:     HSL(hue, 0.05, 0.25),
			Accent:     HSL(hue, 0.30, 0.55),
		}
	default: // ink
		hue := src.UpTo(360)
		return Palette{
			Hue:        hue,
			Background: HSL(src.Range(35, 55), 0.22, 0.94),
			Paper:      HSL(hue, 0.20, 0.85),
			Street:     HSL(hue, 0.30, 0.18),
			Accent:     HSL(hue, 0.65, 0.45),
		}
	}
}

// StreetShade tints the street color by a line's tag so parallel streets
// read apart without extra draws.
func (p Palette) StreetShade(tag float64) color.Color {
	base, ok := p.Street.(color.RGBA)
	if !ok {
		return p.Street
	}
	shift := (tag - 0.5) * 0.16
	return scaleRGB(base, 1+shift)
}

func scaleRGB(c color.RGBA, k float64) color.RGBA {
	return color.RGBA{
		R: clamp8(float64(c.R) * k),
		G: clamp8(float64(c.G) * k),
		B: clamp8(float64(c.B) * k),
		A: c.A,
	}
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

// HSL converts hue in degrees and saturation/lightness in [0,1] to RGBA.
func HSL(h, s, l float64) color.RGBA {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	c := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := c * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r, g, b float64
	switch {
	case hp < 1:
		r, g, b = c, x, 0
	case hp < 2:
		r, g, b = x, c, 0
	case hp < 3:
		r, g, b = 0, c, x
	case hp < 4:
		r, g, b = 0, x, c
	case hp < 5:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	m := l - c/2
	return color.RGBA{
		R: clamp8((r + m) * 255),
		G: clamp8((g + m) * 255),
		B: clamp8((b + m) * 255),
		A: 255,
	}
}
