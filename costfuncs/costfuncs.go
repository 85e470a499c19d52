// Package costfuncs contains the loss functions used at the output of a model, one per evaluation
// type.
//
// All of them work on one output neuron at a time, so that a layer can split its outputs across
// goroutines and add the partial losses together.
package costfuncs

// CostFunction is the loss at a single output neuron
type CostFunction interface {
	// TypeString returns the name of the cost function
	TypeString() string

	// Cost returns the loss contributed by one output, given its activation and the expected
	// value
	Cost(actual, expected float32) float32

	// Error returns the corrective term for one output; the direction that the activation should
	// move in to lower the cost. It is later multiplied by the derivative of the activation
	// function.
	Error(actual, expected float32) float32
}
