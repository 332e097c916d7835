package city

import (
	"testing"

	"github.com/codebox/generative-city-map/internal/rng"
)

func BenchmarkGrow(b *testing.B) {
	src := rng.New(12345)
	view := RectView{Width: 400, Height: 400}
	m := New(src, view, Config{SeedCount: 10, PBifurcation: 0.1, ExpiryThreshold: 0.02})
	m.Generate()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if !m.IsActive() {
			b.StopTimer()
			m.Generate()
			b.StartTimer()
		}
		m.Grow()
	}
}

func BenchmarkCheckForCollisions(b *testing.B) {
	src := rng.New(12345)
	view := RectView{Width: 400, Height: 400}
	m := New(src, view, Config{SeedCount: 10, PBifurcation: 0.1, ExpiryThreshold: 0.02})
	m.Generate()
	for i := 0; i < 60 && m.IsActive(); i++ {
		m.Grow()
	}
	det := &Detector{View: view}
	var probe *Line
	m.ForEachLineUntilTrue(func(l *Line) bool {
		probe = l
		return true
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		det.CheckForCollisions(probe, m)
	}
}

func BenchmarkGenerate(b *testing.B) {
	src := rng.New(777)
	view := RectView{Width: 400, Height: 400}
	m := New(src, view, Config{SeedCount: 50, PBifurcation: 0.1, ExpiryThreshold: 0.02})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Generate()
	}
}
