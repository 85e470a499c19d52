package ann

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/costfuncs"
)

// New returns a regression Model with a dense layer for each of the given sizes, the first being
// the input layer. Layers use the default activation function, and are randomized with r.
func New(sizes []int, r *rand.Rand) (*Model, error) {
	if len(sizes) < 2 {
		return nil, errors.Wrapf(ErrTooFewLayers, "Can't make model from %d layer sizes", len(sizes))
	} else if r == nil {
		return nil, NilArgError{"Random number generator"}
	}

	m := new(Model)
	for i, s := range sizes {
		if _, err := m.AddDenseLayer(s, r); err != nil {
			return nil, errors.Wrapf(err, "Failed to add layer %d", i)
		}
	}

	return m, nil
}

// AddDenseLayer appends a dense layer with the given number of neurons, taking the previous layer
// as input (or nothing, if it is the first layer), and randomizes it with r.
//
// The returned layer can be configured further, e.g. by setting its ActivationFunc.
func (m *Model) AddDenseLayer(numNeurons int, r *rand.Rand) (*DenseLayer, error) {
	if numNeurons < 1 {
		return nil, errors.Errorf("Can't add dense layer with %d neurons", numNeurons)
	} else if r == nil {
		return nil, NilArgError{"Random number generator"}
	}

	var inputs int
	if len(m.layers) != 0 {
		inputs = m.layers[len(m.layers)-1].Size()
	}

	l := NewDenseLayer(numNeurons, inputs)
	l.Randomize(r)

	m.layers = append(m.layers, l)
	return l, nil
}

// AddLayer appends an existing layer to the Model. Its number of inputs must be the size of the
// current last layer (or 0 if the Model is empty). The Model takes ownership of the layer.
func (m *Model) AddLayer(l Layer) error {
	if l == nil {
		return NilArgError{"Layer"}
	}

	var inputs int
	if len(m.layers) != 0 {
		inputs = m.layers[len(m.layers)-1].Size()
	}

	if l.NumInputs() != inputs {
		return errors.Wrapf(&DimensionError{"Layer inputs", inputs, l.NumInputs()},
			"Can't add layer %d", len(m.layers))
	}

	m.layers = append(m.layers, l)
	return nil
}

// Config describes a Model's structure. It is usually decoded from JSON.
//
// Empty strings take defaults: "dense" layers, "regression", "mse", and "swish". A zero
// LeakySlope takes DefaultLeakySlope.
type Config struct {
	EvaluationType string        `json:"evaluation_type"`
	LossFunction   string        `json:"loss_function"`
	Layers         []LayerConfig `json:"layers"`
}

// LayerConfig describes a single layer in a Config. Inputs must be 0 for the first layer, and the
// number of neurons in the previous layer for the rest.
type LayerConfig struct {
	Type       string  `json:"type"`
	Neurons    int     `json:"neurons"`
	Inputs     int     `json:"inputs"`
	Activation string  `json:"activation"`
	LeakySlope float32 `json:"leaky_slope"`
}

// parsed config, so that Validate and FromConfig share the checks
type layerSpec struct {
	neurons, inputs int
	act             activations.Kind
	slope           float32
}

func (c Config) parse() (costfuncs.EvaluationType, costfuncs.LossFunction, []layerSpec, error) {
	eval, loss := costfuncs.Regression, costfuncs.MeanSquaredError

	var err error
	if c.EvaluationType != "" {
		if eval, err = costfuncs.ParseEvaluation(c.EvaluationType); err != nil {
			return 0, 0, nil, err
		}
	}
	if c.LossFunction != "" {
		if loss, err = costfuncs.ParseLoss(c.LossFunction); err != nil {
			return 0, 0, nil, err
		}
	}

	if len(c.Layers) < 2 {
		return 0, 0, nil, errors.Wrapf(ErrTooFewLayers, "Config has %d layers", len(c.Layers))
	}

	specs := make([]layerSpec, len(c.Layers))
	for i, lc := range c.Layers {
		s, err := lc.parse()
		if err != nil {
			return 0, 0, nil, errors.Wrapf(err, "Layer %d", i)
		}

		want := 0
		if i > 0 {
			want = specs[i-1].neurons
		}
		if s.inputs != want {
			return 0, 0, nil, errors.Wrapf(&DimensionError{"Layer inputs", want, s.inputs}, "Layer %d", i)
		}

		specs[i] = s
	}

	return eval, loss, specs, nil
}

func (lc LayerConfig) parse() (layerSpec, error) {
	switch lc.Type {
	case "", "dense":
	case "convolutional":
		return layerSpec{}, Convolutional.supported()
	case "pooling":
		return layerSpec{}, Pooling.supported()
	default:
		return layerSpec{}, errors.Wrapf(ErrUnsupportedLayer, "%q", lc.Type)
	}

	s := layerSpec{
		neurons: lc.Neurons,
		inputs:  lc.Inputs,
		act:     DefaultActivation,
		slope:   DefaultLeakySlope,
	}

	if s.neurons < 1 {
		return s, errors.Errorf("Layer must have at least 1 neuron (got %d)", s.neurons)
	} else if s.inputs < 0 {
		return s, errors.Errorf("Number of inputs can't be negative (got %d)", s.inputs)
	}

	if lc.Activation != "" {
		var err error
		if s.act, err = activations.Parse(lc.Activation); err != nil {
			return s, err
		}
	}

	if lc.LeakySlope != 0 {
		if math32.IsNaN(lc.LeakySlope) || math32.IsInf(lc.LeakySlope, 0) {
			return s, errors.Errorf("Leaky slope is invalid (%v)", lc.LeakySlope)
		}
		s.slope = lc.LeakySlope
	}

	return s, nil
}

// Validate checks that the Config describes a Model that can be built
func (c Config) Validate() error {
	_, _, _, err := c.parse()
	return err
}

// FromConfig builds the Model described by cfg, randomizing every layer with r.
func FromConfig(cfg Config, r *rand.Rand) (*Model, error) {
	if r == nil {
		return nil, NilArgError{"Random number generator"}
	}

	eval, loss, specs, err := cfg.parse()
	if err != nil {
		return nil, errors.Wrapf(err, "Invalid model config")
	}

	m := &Model{EvaluationType: eval, LossFunction: loss}
	for _, s := range specs {
		l := NewDenseLayer(s.neurons, s.inputs)
		l.ActivationFunc = s.act
		l.LeakySlope = s.slope
		l.Randomize(r)

		m.layers = append(m.layers, l)
	}

	return m, nil
}

// Randomize sets new initial parameters for every layer, drawing from r in layer order.
func (m *Model) Randomize(r *rand.Rand) {
	for _, l := range m.layers {
		l.Randomize(r)
	}
}
