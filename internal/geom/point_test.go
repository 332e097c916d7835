package geom

import (
	"math"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := Pt(1, 2)
	q := Pt(3, -1)
	if got := p.Add(q); got != Pt(4, 1) {
		t.Errorf("Add = %v", got)
	}
	if got := p.Sub(q); got != Pt(-2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := p.Mul(2); got != Pt(2, 4) {
		t.Errorf("Mul = %v", got)
	}
	if got := p.Cross(q); got != -7 {
		t.Errorf("Cross = %v", got)
	}
	if got := Pt(0, 0).Distance(Pt(3, 4)); got != 5 {
		t.Errorf("Distance = %v", got)
	}
}

func TestHeadingIsUnit(t *testing.T) {
	for _, angle := range []float64{0, math.Pi / 4, math.Pi / 2, math.Pi, 4.2} {
		h := Heading(angle)
		if norm := math.Hypot(h.X, h.Y); math.Abs(norm-1) > 1e-12 {
			t.Errorf("Heading(%v) has norm %v", angle, norm)
		}
	}
	// Angle zero points along +Y.
	h := Heading(0)
	if math.Abs(h.X) > 1e-12 || math.Abs(h.Y-1) > 1e-12 {
		t.Errorf("Heading(0) = %v, want (0,1)", h)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(0, 0, 10, 5)
	tests := []struct {
		p    Point
		want bool
	}{
		{Pt(5, 2), true},
		{Pt(0, 0), true},
		{Pt(10, 2), false},
		{Pt(5, 5), false},
		{Pt(-0.1, 2), false},
		{Pt(9.999, 4.999), true},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
	// Corners normalize.
	if got := NewRect(10, 5, 0, 0); got != r {
		t.Errorf("NewRect swapped corners = %v, want %v", got, r)
	}
}
