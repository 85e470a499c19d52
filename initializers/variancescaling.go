package initializers

import (
	"github.com/chewxy/math32"
)

type varianceScaling struct {
	// either: "in", "out", "avg"
	mode   string
	factor float32
}

const defaultVarianceMode string = "avg"

// VarianceScaling returns the variance scaling initializer, which has 3 modes and a user-defined
// scaling factor. The three modes can be set by In, Out, and Avg. It defaults to Avg with a factor
// of 1.
func VarianceScaling() *varianceScaling {
	return &varianceScaling{defaultVarianceMode, 1}
}

// Factor sets the scaling factor to be used
func (v *varianceScaling) Factor(f float32) *varianceScaling {
	v.factor = f
	return v
}

// In sets the scaling to be based on the number of inputs to the layer.
func (v *varianceScaling) In() *varianceScaling {
	v.mode = "in"
	return v
}

// Out sets the scaling to be based on the number of neurons in the layer.
func (v *varianceScaling) Out() *varianceScaling {
	v.mode = "out"
	return v
}

// Avg sets the scaling to be based on the average of the numbers of inputs and neurons.
func (v *varianceScaling) Avg() *varianceScaling {
	v.mode = "avg"
	return v
}

// Bound returns the range that weights of a layer with the given shape are drawn from:
// sqrt(factor / scale)
func (v *varianceScaling) Bound(numInputs, size int) float32 {
	var scale float32
	if v.mode == "in" {
		scale = float32(numInputs)
	} else if v.mode == "out" {
		scale = float32(size)
	} else { // must be "avg"
		scale = float32(numInputs+size) / 2
	}

	if scale <= 0 {
		return 0
	}

	return math32.Sqrt(v.factor / scale)
}

// Uniform returns a Uniform RNG over [-Bound, Bound) for a layer with the given shape
func (v *varianceScaling) Uniform(numInputs, size int) *uniform {
	return Uniform().Symmetric(v.Bound(numInputs, size))
}

// He is VarianceScaling on the number of inputs with a factor of 2; the range of a neuron's
// weights is sqrt(2 / inputs)
func He() *varianceScaling {
	return VarianceScaling().In().Factor(2)
}
