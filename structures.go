package ann

import (
	"github.com/pkg/errors"
	"github.com/prkl/ann/costfuncs"
)

// Model is a feed-forward chain of layers. Layer 0 is the input layer and the last is the output
// layer; every other layer takes the activations of the one before it as input.
//
// The zero value is an empty regression model using mean squared error, to which layers can be
// added with AddDenseLayer.
type Model struct {
	// EvaluationType decides the loss used in training and whether outputs go through softmax
	EvaluationType costfuncs.EvaluationType

	// LossFunction is the loss used by Regression models
	LossFunction costfuncs.LossFunction

	layers []Layer
}

// Snapshot is a deep copy of the layers of a Model, used to roll it back to an earlier state.
type Snapshot struct {
	layers []Layer
}

func cloneLayers(ls []Layer) []Layer {
	c := make([]Layer, len(ls))
	for i := range ls {
		c[i] = ls[i].Clone()
	}
	return c
}

// Snapshot returns a copy of the current layers of the Model
func (m *Model) Snapshot() *Snapshot {
	return &Snapshot{cloneLayers(m.layers)}
}

// Update replaces the contents of the Snapshot with the current layers of the Model
func (s *Snapshot) Update(m *Model) {
	s.layers = cloneLayers(m.layers)
}

// NumLayers returns the number of layers in the Snapshot
func (s *Snapshot) NumLayers() int {
	return len(s.layers)
}

// ApplySnapshot replaces the layers of the Model with copies of the ones in the Snapshot. The
// Snapshot can be applied again later.
func (m *Model) ApplySnapshot(s *Snapshot) {
	m.layers = cloneLayers(s.layers)
}

// Clone returns a deep copy of the Model
func (m *Model) Clone() *Model {
	return &Model{
		EvaluationType: m.EvaluationType,
		LossFunction:   m.LossFunction,
		layers:         cloneLayers(m.layers),
	}
}

// NumLayers returns the number of layers, including the input and output layers
func (m *Model) NumLayers() int {
	return len(m.layers)
}

// Layers returns the layers of the Model, in order. The returned slice is a copy, but the layers
// are not.
func (m *Model) Layers() []Layer {
	ls := make([]Layer, len(m.layers))
	copy(ls, m.layers)
	return ls
}

// Layer returns the layer at index i
func (m *Model) Layer(i int) Layer {
	return m.layers[i]
}

// Input returns the input layer, or nil if the Model is empty
func (m *Model) Input() Layer {
	if len(m.layers) == 0 {
		return nil
	}
	return m.layers[0]
}

// Output returns the output layer, or nil if the Model has fewer than 2 layers
func (m *Model) Output() Layer {
	if len(m.layers) < 2 {
		return nil
	}
	return m.layers[len(m.layers)-1]
}

// NumHidden returns the number of layers between the input and output layers
func (m *Model) NumHidden() int {
	if len(m.layers) < 2 {
		return 0
	}
	return len(m.layers) - 2
}

// Hidden returns the hidden layer at index i, where 0 is the layer right after the input layer.
// It panics if i is out of range.
func (m *Model) Hidden(i int) Layer {
	if i < 0 || i >= m.NumHidden() {
		panic(errors.Errorf("Hidden layer %d out of bounds (model has %d)", i, m.NumHidden()))
	}
	return m.layers[1+i]
}

// InputSize returns the number of neurons in the input layer
func (m *Model) InputSize() int {
	if len(m.layers) == 0 {
		return 0
	}
	return m.layers[0].Size()
}

// OutputSize returns the number of neurons in the output layer
func (m *Model) OutputSize() int {
	if len(m.layers) < 2 {
		return 0
	}
	return m.layers[len(m.layers)-1].Size()
}

// costFunction returns the cost function given by the Model's evaluation type and loss function
func (m *Model) costFunction() (costfuncs.CostFunction, error) {
	return costfuncs.For(m.EvaluationType, m.LossFunction)
}
