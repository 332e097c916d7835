package rng

// Source is a Mulberry32 pseudo-random generator: 32-bit state, one additive
// increment and two xorshift-multiply rounds per draw. It produces a
// deterministic stream of floats in [0,1), so a grown map is reproducible
// from its seed alone.
type Source struct {
	state uint32
	seed  uint32
}

// New returns a Source seeded with the given value.
func New(seed uint32) *Source {
	return &Source{state: seed, seed: seed}
}

// Seed returns the seed the Source was created with.
func (s *Source) Seed() uint32 { return s.seed }

// Reset rewinds the stream to its initial seed.
func (s *Source) Reset() { s.state = s.seed }

// Float64 advances the generator and returns the next value in [0,1).
// All uint32 arithmetic wraps.
func (s *Source) Float64() float64 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	return float64(z^(z>>14)) / 4294967296.0
}

// UpTo returns a value in [0, a).
func (s *Source) UpTo(a float64) float64 {
	return s.Float64() * a
}

// Range returns a value in [min(a,b), max(a,b)).
func (s *Source) Range(a, b float64) float64 {
	if b < a {
		a, b = b, a
	}
	return a + s.Float64()*(b-a)
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool {
	return s.Float64() < 0.5
}

// Intn returns an integer in [0, n). n must be positive.
func (s *Source) Intn(n int) int {
	return int(s.Float64() * float64(n))
}

// Derive mixes a base seed with a stream number into a new seed, so that
// rendering and other collaborators can draw their own randomness without
// disturbing the growth stream.
func Derive(seed, stream uint32) uint32 {
	h := seed ^ (stream * 2654435761)
	h = (h ^ (h >> 16)) * 0x85ebca6b
	h = (h ^ (h >> 13)) * 0xc2b2ae35
	return h ^ (h >> 16)
}
