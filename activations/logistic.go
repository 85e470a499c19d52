package activations

import (
	"github.com/chewxy/math32"
)

// written in terms of tanh, which doesn't overflow for large |x|
func logistic(x float32) float32 {
	return 0.5 + 0.5*math32.Tanh(0.5*x)
}

func logisticDeriv(x float32) float32 {
	s := logistic(x)
	return s * (1 - s)
}
