package activations

import (
	"github.com/chewxy/math32"
)

func tanh(x float32) float32 {
	return math32.Tanh(x)
}

// the derivative of tanh(x) is 1 - tanh(x)^2
func tanhDeriv(x float32) float32 {
	t := math32.Tanh(x)
	return 1 - t*t
}
