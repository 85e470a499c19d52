package ann

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/initializers"
	"github.com/prkl/ann/utils"
)

const (
	// DefaultActivation is the activation function of new dense layers
	DefaultActivation = activations.Swish

	// DefaultLeakySlope is the slope of leaky ReLU for negative inputs, for new dense layers
	DefaultLeakySlope float32 = 0.01
)

// ParallelThreshold is the number of neurons at which a layer starts splitting its calculations
// across goroutines. Smaller layers are computed inline.
var ParallelThreshold = 128

// DenseLayer is a fully connected layer: every neuron takes every activation of the previous
// layer as input.
//
// Weights are stored row-major, one row of NumInputs values per neuron.
type DenseLayer struct {
	// ActivationFunc is applied to each neuron's weighted sum
	ActivationFunc activations.Kind

	// LeakySlope is only used when ActivationFunc is activations.LeakyReLU
	LeakySlope float32

	neurons int
	inputs  int

	activations []float32

	// all nil for the input layer
	weights []float32
	biases  []float32
}

// NewDenseLayer returns a DenseLayer with the given dimensions, and all parameters set to zero.
// numInputs should be 0 for the input layer.
//
// NewDenseLayer panics if numNeurons < 1 or numInputs < 0.
func NewDenseLayer(numNeurons, numInputs int) *DenseLayer {
	if numNeurons < 1 {
		panic(errors.Errorf("Can't make dense layer with %d neurons", numNeurons))
	} else if numInputs < 0 {
		panic(errors.Errorf("Can't make dense layer with %d inputs", numInputs))
	}

	l := &DenseLayer{
		ActivationFunc: DefaultActivation,
		LeakySlope:     DefaultLeakySlope,
		neurons:        numNeurons,
		inputs:         numInputs,
		activations:    make([]float32, numNeurons),
	}

	if numInputs > 0 {
		l.weights = make([]float32, numNeurons*numInputs)
		l.biases = make([]float32, numNeurons)
	}

	return l
}

func (l *DenseLayer) Kind() LayerKind {
	return Dense
}

func (l *DenseLayer) Size() int {
	return l.neurons
}

func (l *DenseLayer) NumInputs() int {
	return l.inputs
}

func (l *DenseLayer) Activation(i int) float32 {
	return l.activations[i]
}

func (l *DenseLayer) SetActivation(i int, v float32) {
	l.activations[i] = v
}

func (l *DenseLayer) Activations() []float32 {
	return l.activations
}

func (l *DenseLayer) Weights(neuron int) []float32 {
	if l.inputs == 0 {
		return nil
	}

	return l.weights[neuron*l.inputs : (neuron+1)*l.inputs]
}

// Bias returns the bias of a neuron. The input layer has none, and returns 0.
func (l *DenseLayer) Bias(neuron int) float32 {
	if l.inputs == 0 {
		return 0
	}

	return l.biases[neuron]
}

// SetWeights sets the weights of a neuron and its bias. It panics if the layer is an input layer,
// or if the number of weights is not NumInputs.
func (l *DenseLayer) SetWeights(neuron int, weights []float32, bias float32) {
	if l.inputs == 0 {
		panic("Can't set weights of input layer")
	} else if len(weights) != l.inputs {
		panic(&DimensionError{"Neuron weights", l.inputs, len(weights)})
	}

	copy(l.Weights(neuron), weights)
	l.biases[neuron] = bias
}

// Randomize sets each neuron's weights uniformly within ±sqrt(2 / inputs), followed by its bias
// within ±0.1. Values are drawn neuron by neuron, so a given seed always produces the same layer.
func (l *DenseLayer) Randomize(r *rand.Rand) {
	if l.inputs == 0 {
		return
	}

	ws := initializers.He().Uniform(l.inputs, l.neurons)
	bs := initializers.Uniform().Symmetric(initializers.DefaultBias)

	for n := 0; n < l.neurons; n++ {
		initializers.Fill(r, ws, l.Weights(n))
		l.biases[n] = bs.Gen(r)
	}
}

func (l *DenseLayer) Clone() Layer {
	c := *l
	c.activations = cloneFloats(l.activations)
	c.weights = cloneFloats(l.weights)
	c.biases = cloneFloats(l.biases)
	return &c
}

func cloneFloats(f []float32) []float32 {
	if f == nil {
		return nil
	}

	c := make([]float32, len(f))
	copy(c, f)
	return c
}

func (l *DenseLayer) MinActivationIndex() int {
	return minIndex(l.activations)
}

func (l *DenseLayer) MaxActivationIndex() int {
	return maxIndex(l.activations)
}

func (l *DenseLayer) write(w *utils.Writer) {
	w.Uint64(uint64(Dense))
	w.Uint64(uint64(l.ActivationFunc))
	w.Float32(l.LeakySlope)
	w.Int(l.neurons)
	w.Int(l.inputs)
	w.Float32s(l.activations)

	if l.inputs > 0 {
		w.Float32s(l.weights)
		w.Float32s(l.biases)
	}
}

// readDenseLayer reads everything after the layer kind tag
func readDenseLayer(r *utils.Reader, version uint64) (*DenseLayer, error) {
	act, slope := DefaultActivation, DefaultLeakySlope
	if version >= VersionLayerParams {
		act = activations.Kind(r.Uint64())
		slope = r.Float32()
		if r.Err() == nil && !act.Valid() {
			return nil, errors.Wrapf(activations.ErrUnknownActivation, "tag %d", uint64(act))
		}
	}

	neurons := r.Count("Neuron count", maxLayerSize)
	inputs := r.Count("Input count", maxLayerSize)
	if err := r.Err(); err != nil {
		return nil, err
	} else if neurons == 0 {
		return nil, errors.Errorf("Layer has no neurons")
	} else if inputs > 0 && neurons*inputs > maxLayerParams {
		return nil, errors.Errorf("Layer has too many weights (%d × %d)", neurons, inputs)
	}

	l := NewDenseLayer(neurons, inputs)
	l.ActivationFunc = act
	l.LeakySlope = slope

	r.Float32s(l.activations)
	if inputs > 0 {
		r.Float32s(l.weights)
		r.Float32s(l.biases)
	}

	if err := r.Err(); err != nil {
		return nil, err
	}

	return l, nil
}
