package ann

import (
	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/costfuncs"
	"github.com/prkl/ann/utils"
)

// Forward computes each neuron's weighted sum of the previous layer's activations plus its bias,
// and applies the activation function.
func (l *DenseLayer) Forward(prev Layer) {
	if l.inputs == 0 {
		return
	} else if prev.Size() != l.inputs {
		panic(&DimensionError{"Previous layer size", l.inputs, prev.Size()})
	}

	in := prev.Activations()

	utils.MultiThread(0, l.neurons, ParallelThreshold, func(start, end int) {
		for n := start; n < end; n++ {
			sum := l.biases[n]
			for i, w := range l.Weights(n) {
				sum += in[i] * w
			}

			l.activations[n] = activations.Activate(l.ActivationFunc, sum, l.LeakySlope)
		}
	})
}

func (l *DenseLayer) ApplySoftmax() {
	activations.Softmax(l.activations, l.activations)
}

// the derivative of the activation function, evaluated at the current activation of neuron n
func (l *DenseLayer) deriv(n int, gradLimit float32) float32 {
	return activations.Derivative(l.ActivationFunc, l.activations[n], l.LeakySlope, gradLimit)
}

func (l *DenseLayer) OutputGradients(cf costfuncs.CostFunction, expected, grads []float32, gradLimit float32) float32 {
	if l.inputs == 0 {
		return 0
	} else if len(expected) != l.neurons {
		panic(&DimensionError{"Expected output width", l.neurons, len(expected)})
	} else if len(grads) != l.neurons {
		panic(&DimensionError{"Gradient buffer", l.neurons, len(grads)})
	}

	return utils.MultiThreadSum(0, l.neurons, ParallelThreshold, func(start, end int) float32 {
		var loss float32
		for i := start; i < end; i++ {
			a := l.activations[i]

			loss += cf.Cost(a, expected[i])
			grads[i] = cf.Error(a, expected[i]) * l.deriv(i, gradLimit)
		}

		return loss
	})
}

func (l *DenseLayer) Backpropagate(nextGrads []float32, next Layer, out []float32, gradLimit float32) {
	if l.inputs == 0 {
		return
	} else if next.NumInputs() != l.neurons {
		panic(&DimensionError{"Next layer inputs", l.neurons, next.NumInputs()})
	} else if len(nextGrads) != next.Size() {
		panic(&DimensionError{"Next layer gradients", next.Size(), len(nextGrads)})
	} else if len(out) != l.neurons {
		panic(&DimensionError{"Gradient buffer", l.neurons, len(out)})
	}

	utils.MultiThread(0, l.neurons, ParallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			var sum float32
			for j, g := range nextGrads {
				sum += g * next.Weights(j)[i]
			}

			out[i] = sum * l.deriv(i, gradLimit)
		}
	})
}

func (l *DenseLayer) UpdateWeights(grads []float32, prev Layer, rate float32) {
	if l.inputs == 0 {
		return
	} else if prev.Size() != l.inputs {
		panic(&DimensionError{"Previous layer size", l.inputs, prev.Size()})
	} else if len(grads) != l.neurons {
		panic(&DimensionError{"Gradient buffer", l.neurons, len(grads)})
	}

	in := prev.Activations()

	utils.MultiThread(0, l.neurons, ParallelThreshold, func(start, end int) {
		for n := start; n < end; n++ {
			step := rate * grads[n]

			ws := l.Weights(n)
			for j := range ws {
				ws[j] += step * in[j]
			}

			l.biases[n] += step
		}
	})
}

// SetInputs copies the given values into the activations of the input layer
func (m *Model) SetInputs(inputs []float32) error {
	if len(m.layers) == 0 {
		return errors.Wrapf(ErrTooFewLayers, "Can't set inputs of empty model")
	} else if len(inputs) != m.InputSize() {
		return &DimensionError{"Input width", m.InputSize(), len(inputs)}
	}

	in := m.layers[0]
	for i, v := range inputs {
		in.SetActivation(i, v)
	}

	return nil
}

// ForwardPropagate runs every layer after the input layer, in order, from the current input
// activations. Outputs of MulticlassClassification models are passed through softmax.
//
// If the output contains NaN, a *NumericalError is returned.
func (m *Model) ForwardPropagate() error {
	if len(m.layers) < 2 {
		return errors.Wrapf(ErrTooFewLayers, "Can't propagate model with %d layers", len(m.layers))
	}

	for i := 1; i < len(m.layers); i++ {
		m.layers[i].Forward(m.layers[i-1])
	}

	out := m.layers[len(m.layers)-1]
	if m.EvaluationType.Softmax() {
		out.ApplySoftmax()
	}

	for i, a := range out.Activations() {
		if math32.IsNaN(a) {
			return &NumericalError{Layer: len(m.layers) - 1, Neuron: i}
		}
	}

	return nil
}

// Predict sets the inputs, propagates them, and returns a copy of the outputs
func (m *Model) Predict(inputs []float32) ([]float32, error) {
	if err := m.SetInputs(inputs); err != nil {
		return nil, err
	}

	if err := m.ForwardPropagate(); err != nil {
		return nil, err
	}

	return cloneFloats(m.Output().Activations()), nil
}
