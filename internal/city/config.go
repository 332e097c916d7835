package city

// Config holds the growth options, immutable for a run.
type Config struct {
	// SeedCount is the number of independent root streets. Zero or negative
	// yields an empty forest whose IsActive is immediately false.
	SeedCount int

	// PBifurcation is the per-tick probability that a growing street spawns
	// a child at a right angle.
	PBifurcation float64

	// ExpiryThreshold scales expiry probability by branch depth: a line of
	// generation g expires each tick with probability g*ExpiryThreshold.
	// Roots (generation 0) never expire; they stop only on collision.
	ExpiryThreshold float64
}

func DefaultConfig() Config {
	return Config{
		SeedCount:       5,
		PBifurcation:    0.1,
		ExpiryThreshold: 0.02,
	}
}
