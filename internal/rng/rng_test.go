package rng

import "testing"

func TestSameSeedSameStream(t *testing.T) {
	a := New(12345)
	b := New(12345)
	for i := 0; i < 1000; i++ {
		if got, want := a.Float64(), b.Float64(); got != want {
			t.Fatalf("draw %d: %v != %v", i, got, want)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)
	diverged := false
	for i := 0; i < 100; i++ {
		if a.Float64() != b.Float64() {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Fatal("seeds 1 and 2 produced identical streams")
	}
}

func TestFloat64Bounds(t *testing.T) {
	s := New(99)
	for i := 0; i < 10000; i++ {
		v := s.Float64()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, v)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	s := New(7)
	for i := 0; i < 1000; i++ {
		v := s.Range(3, 7)
		if v < 3 || v >= 7 {
			t.Fatalf("Range(3,7) out of bounds: %v", v)
		}
	}
	// Swapped endpoints normalize.
	for i := 0; i < 1000; i++ {
		v := s.Range(7, 3)
		if v < 3 || v >= 7 {
			t.Fatalf("Range(7,3) out of bounds: %v", v)
		}
	}
}

func TestUpTo(t *testing.T) {
	s := New(42)
	for i := 0; i < 1000; i++ {
		v := s.UpTo(6.28)
		if v < 0 || v >= 6.28 {
			t.Fatalf("UpTo(6.28) out of bounds: %v", v)
		}
	}
}

func TestReset(t *testing.T) {
	s := New(2024)
	first := make([]float64, 10)
	for i := range first {
		first[i] = s.Float64()
	}
	s.Reset()
	for i := range first {
		if got := s.Float64(); got != first[i] {
			t.Fatalf("after Reset, draw %d: %v != %v", i, got, first[i])
		}
	}
}

func TestMeanRoughlyCentered(t *testing.T) {
	s := New(31337)
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += s.Float64()
	}
	mean := sum / n
	if mean < 0.45 || mean > 0.55 {
		t.Fatalf("mean of %d draws = %v, want near 0.5", n, mean)
	}
}

func TestDeriveSpreadsStreams(t *testing.T) {
	seen := map[uint32]uint32{}
	for stream := uint32(0); stream < 64; stream++ {
		d := Derive(1, stream)
		if prev, dup := seen[d]; dup {
			t.Fatalf("streams %d and %d collide on %d", prev, stream, d)
		}
		seen[d] = stream
	}
}
