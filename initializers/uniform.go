package initializers

import (
	"math/rand"
)

// DefaultBias is the bound of the uniform range that biases are drawn from
const DefaultBias float32 = 0.1

type uniform struct {
	lower, upper float32
}

// Uniform returns an RNG that gives values uniformly spread between its bounds, which can be set
// by Bounds. It defaults to [-1, 1).
func Uniform() *uniform {
	return &uniform{-1, 1}
}

// Bounds sets the range of a Uniform RNG, returning it.
func (u *uniform) Bounds(lower, upper float32) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// Symmetric sets the range of a Uniform RNG to [-bound, bound), returning it.
func (u *uniform) Symmetric(bound float32) *uniform {
	return u.Bounds(-bound, bound)
}

// Gen is the implementation of RNG for Uniform. It returns a random number.
func (u *uniform) Gen(r *rand.Rand) float32 {
	return r.Float32()*(u.upper-u.lower) + u.lower
}
