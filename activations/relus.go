// relus.go contains the rectified linear units:
// * ReLU
// * Leaky ReLU
package activations

func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

func reluDeriv(x float32) float32 {
	if x > 0 {
		return 1
	}
	return 0
}

func leakyReLU(x, slope float32) float32 {
	if x < 0 {
		return slope * x
	}
	return x
}

func leakyReLUDeriv(x, slope float32) float32 {
	if x < 0 {
		return slope
	}
	return 1
}
