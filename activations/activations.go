// Package activations is the set of element-wise activation functions that a layer can apply to
// its weighted sums, along with their derivatives and a numerically stable softmax.
//
// Every function here is pure, and safe to call from multiple goroutines.
package activations

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// Kind selects an activation function. Its numeric value is what gets written to the model
// format, so existing values must never change.
type Kind uint64

const (
	Linear Kind = iota
	Sigmoid
	LeakyReLU
	ReLU
	Tanh
	Swish
)

// NumKinds is one past the largest valid Kind
const NumKinds = Swish + 1

// ErrUnknownActivation is returned by Parse for names that aren't in the registry
var ErrUnknownActivation = errors.New("Unknown activation function")

// TypeString returns the name of the activation function, as accepted by Parse. Unknown values
// give "unknown(<n>)".
func (k Kind) TypeString() string {
	if !k.Valid() {
		return "unknown(" + strconv.FormatUint(uint64(k), 10) + ")"
	}

	return names[k]
}

func (k Kind) String() string {
	return k.TypeString()
}

// Valid returns whether or not the Kind is one of the defined activation functions
func (k Kind) Valid() bool {
	return k < NumKinds
}

// Activate returns f(x) for the activation function given by k. 'slope' is only used by LeakyReLU.
//
// Activate panics if k is not valid.
func Activate(k Kind, x, slope float32) float32 {
	switch k {
	case Linear:
		return identity(x)
	case Sigmoid:
		return logistic(x)
	case LeakyReLU:
		return leakyReLU(x, slope)
	case ReLU:
		return relu(x)
	case Tanh:
		return tanh(x)
	case Swish:
		return swish(x)
	}

	panic(errors.Errorf("Can't activate with unknown activation function %d", k))
}

// Derivative returns f'(x) for the activation function given by k, clamped to [-limit, limit].
// A limit ≤ 0 disables the clamp.
//
// Derivative panics if k is not valid.
func Derivative(k Kind, x, slope, limit float32) float32 {
	var d float32
	switch k {
	case Linear:
		d = identityDeriv(x)
	case Sigmoid:
		d = logisticDeriv(x)
	case LeakyReLU:
		d = leakyReLUDeriv(x, slope)
	case ReLU:
		d = reluDeriv(x)
	case Tanh:
		d = tanhDeriv(x)
	case Swish:
		d = swishDeriv(x)
	default:
		panic(errors.Errorf("Can't differentiate unknown activation function %d", k))
	}

	return Clamp(d, limit)
}

// Clamp limits x to [-limit, limit]. If limit ≤ 0, x is returned unchanged.
func Clamp(x, limit float32) float32 {
	if limit <= 0 {
		return x
	}

	return math32.Max(-limit, math32.Min(limit, x))
}
