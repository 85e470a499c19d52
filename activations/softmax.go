package activations

import (
	"github.com/chewxy/math32"
)

const (
	// SoftmaxFloor is the lowest shifted input that softmax exponentiates. Anything lower is
	// treated as SoftmaxFloor, which is already far below float32 resolution next to the maximum.
	SoftmaxFloor float32 = -80

	// SoftmaxEpsilon is added to the normalizing sum
	SoftmaxEpsilon float32 = 1e-8
)

// Softmax writes the softmax of src into dst. The two may be the same slice.
//
// The maximum is subtracted from every element before exponentiating, so no input can overflow.
// Softmax panics if the lengths differ.
func Softmax(dst, src []float32) {
	if len(dst) != len(src) {
		panic("activations: softmax destination and source have different lengths")
	} else if len(src) == 0 {
		return
	}

	max := math32.Inf(-1)
	for _, v := range src {
		if v > max {
			max = v
		}
	}

	var sum float32
	for i, v := range src {
		dst[i] = math32.Exp(math32.Max(v-max, SoftmaxFloor))
		sum += dst[i]
	}

	sum += SoftmaxEpsilon
	for i := range dst {
		dst[i] /= sum
	}
}
