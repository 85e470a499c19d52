// Package initializers provides the random number generation used to set the initial parameters
// of a layer.
//
// There is no global generator: every function here takes the *rand.Rand to draw from. A
// *rand.Rand is not safe for concurrent use, so it must only be used outside of any parallel
// section.
package initializers

import (
	"math/rand"
	"time"
)

// NewRNG returns a new generator with the given seed. A seed of 0 seeds from the current time.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.New(rand.NewSource(seed))
}

// RNG needs no explanation
type RNG interface {
	Gen(r *rand.Rand) float32
}

// Fill sets every value in ws to a new value from gen
func Fill(r *rand.Rand, gen RNG, ws []float32) {
	for i := range ws {
		ws[i] = gen.Gen(r)
	}
}
