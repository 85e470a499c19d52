package activations

import (
	"github.com/chewxy/math32"
)

// SwishBound is the magnitude that inputs to swish are clamped to before exponentiating
const SwishBound float32 = 10

func swishInput(x float32) float32 {
	return math32.Max(-SwishBound, math32.Min(SwishBound, x))
}

// swish(x) = x·σ(x)
func swish(x float32) float32 {
	x = swishInput(x)
	return x / (1 + math32.Exp(-x))
}

func swishDeriv(x float32) float32 {
	x = swishInput(x)
	s := 1 / (1 + math32.Exp(-x))
	return s + x*s*(1-s)
}
