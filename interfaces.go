package ann

import (
	"fmt"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/prkl/ann/costfuncs"
	"github.com/prkl/ann/utils"
)

// LayerKind is the tag identifying the type of a layer in the model format
type LayerKind uint64

const (
	Dense LayerKind = 1

	// Convolutional and Pooling are reserved tags. No layer of either kind can be built or read;
	// both are rejected with ErrUnsupportedLayer.
	Convolutional LayerKind = 2
	Pooling       LayerKind = 3
)

func (k LayerKind) String() string {
	switch k {
	case Dense:
		return "dense"
	case Convolutional:
		return "convolutional"
	case Pooling:
		return "pooling"
	}

	return fmt.Sprintf("unknown(%d)", uint64(k))
}

// supported returns nil if layers of the kind can be built, and an error wrapping
// ErrUnsupportedLayer otherwise
func (k LayerKind) supported() error {
	switch k {
	case Dense:
		return nil
	case Convolutional, Pooling:
		return errors.Wrapf(ErrUnsupportedLayer, "%s layers not yet supported", k)
	}

	return errors.Wrapf(ErrUnsupportedLayer, "layer kind %d", uint64(k))
}

// Layer is a stage of neurons in a Model. The set of implementations is closed; DenseLayer is the
// only one.
//
// The calculation methods don't return errors. Giving them slices or layers of the wrong size is a
// programming error, and they panic with a *DimensionError.
type Layer interface {
	Kind() LayerKind

	// Size returns the number of neurons in the layer
	Size() int

	// NumInputs returns the number of values each neuron takes as input. It is 0 for the input
	// layer.
	NumInputs() int

	Activation(i int) float32
	SetActivation(i int, v float32)

	// Activations returns the layer's activation vector. The slice belongs to the layer and must
	// not be modified; it is overwritten by the next call to Forward.
	Activations() []float32

	// Weights returns the weights of one neuron, one per input. Like Activations, the slice
	// belongs to the layer. Input layers have no weights.
	Weights(neuron int) []float32

	// Forward sets the layer's activations from those of the previous layer. It does nothing for
	// the input layer, whose activations are set with SetActivation.
	Forward(prev Layer)

	// ApplySoftmax replaces the activations with their softmax.
	ApplySoftmax()

	// OutputGradients is only used on the output layer. It writes the gradient of each neuron
	// into 'grads', given the expected outputs, and returns the summed loss.
	OutputGradients(cf costfuncs.CostFunction, expected, grads []float32, gradLimit float32) float32

	// Backpropagate writes the gradients of this layer into 'out', from the gradients and weights
	// of the layer after it.
	Backpropagate(nextGrads []float32, next Layer, out []float32, gradLimit float32)

	// UpdateWeights moves the weights and biases along 'grads', scaled by 'rate'. The previous
	// layer's activations must be the ones that produced the gradients.
	UpdateWeights(grads []float32, prev Layer, rate float32)

	// Randomize sets new initial weights and biases, drawing from r
	Randomize(r *rand.Rand)

	// Clone returns a deep copy of the layer
	Clone() Layer

	MinActivationIndex() int
	MaxActivationIndex() int

	write(w *utils.Writer)
}

// RateSchedule gives the learning rate during training. The schedules in the hyperparams
// subpackage all implement it.
type RateSchedule interface {
	// Initial returns the rate used for the first epoch
	Initial() float32

	// Rate returns the rate to use for the epoch after 'epoch', given the average loss of 'epoch'
	Rate(epoch int, avgLoss float32) float32
}
