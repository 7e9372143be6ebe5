package cluster

import "math/rand"

// defaultSeed is the fixed seed used when a caller passes seed==0, so an
// unseeded run still reproduces deterministically.
const defaultSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand: seed==0 maps to
// defaultSeed, any other value is used verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}
