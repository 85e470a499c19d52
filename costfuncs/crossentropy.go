package costfuncs

import (
	"github.com/chewxy/math32"
)

// The two cross-entropy functions keep their logarithms finite with separate epsilons. They are
// tuned independently.
var (
	// CrossEntropyEpsilon is the lowest activation that CrossEntropy takes the log of
	CrossEntropyEpsilon float32 = 1e-8

	// BinaryCrossEntropyEpsilon is added inside both logs of BinaryCrossEntropy
	BinaryCrossEntropyEpsilon float32 = 1e-5
)

type crossEntropy int8

// CrossEntropy returns categorical cross-entropy, for outputs that have already been through
// softmax.
func CrossEntropy() crossEntropy {
	return crossEntropy(0)
}

func (c crossEntropy) TypeString() string {
	return "cross-entropy"
}

func (c crossEntropy) Cost(actual, expected float32) float32 {
	return -expected * math32.Log(math32.Max(actual, CrossEntropyEpsilon))
}

func (c crossEntropy) Error(actual, expected float32) float32 {
	return expected - actual
}

type binaryCrossEntropy int8

// BinaryCrossEntropy returns the cross-entropy of independent yes/no outputs, used for both binary
// and multilabel classification.
func BinaryCrossEntropy() binaryCrossEntropy {
	return binaryCrossEntropy(0)
}

func (b binaryCrossEntropy) TypeString() string {
	return "binary-cross-entropy"
}

func (b binaryCrossEntropy) Cost(actual, expected float32) float32 {
	eps := BinaryCrossEntropyEpsilon
	return -(expected*math32.Log(actual+eps) + (1-expected)*math32.Log(1-actual+eps))
}

func (b binaryCrossEntropy) Error(actual, expected float32) float32 {
	return expected - actual
}
