package costfuncs

import (
	"github.com/chewxy/math32"
)

type abs int8

// Abs returns the Absolute Value cost function, which implements CostFunction.
func Abs() abs {
	return abs(0)
}

func (a abs) TypeString() string {
	return "mae"
}

func (a abs) Cost(actual, expected float32) float32 {
	return math32.Abs(expected - actual)
}

// the sign of the difference; 0 when the output is exact
func (a abs) Error(actual, expected float32) float32 {
	d := expected - actual
	if d > 0 {
		return 1
	} else if d < 0 {
		return -1
	}
	return 0
}
