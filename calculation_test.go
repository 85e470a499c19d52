package ann

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/prkl/ann/activations"
	"github.com/prkl/ann/costfuncs"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

func toFloat64(fs []float32) []float64 {
	out := make([]float64, len(fs))
	for i, f := range fs {
		out[i] = float64(f)
	}
	return out
}

// an input layer of 3 and a linear layer of 2, with known weights
func smallLayers() (*DenseLayer, *DenseLayer) {
	in := NewDenseLayer(3, 0)
	for i, v := range []float32{1, -2, 0.5} {
		in.SetActivation(i, v)
	}

	l := NewDenseLayer(2, 3)
	l.ActivationFunc = activations.Linear
	l.SetWeights(0, []float32{0.5, 0.25, -1}, 0.1)
	l.SetWeights(1, []float32{-1, 0, 2}, -0.2)

	return in, l
}

func TestDenseForward(t *testing.T) {
	in, l := smallLayers()
	l.Forward(in)

	want := []float64{0.5 - 0.5 - 0.5 + 0.1, -1 + 0 + 1 - 0.2}
	if got := toFloat64(l.Activations()); !floats.EqualApprox(got, want, 1e-6) {
		t.Fatalf("activations = %v, want %v", got, want)
	}

	// the input layer is left alone
	in.Forward(l)
	if got := toFloat64(in.Activations()); !floats.Equal(got, []float64{1, -2, 0.5}) {
		t.Fatalf("input layer changed: %v", got)
	}
}

func TestOutputGradients(t *testing.T) {
	in, l := smallLayers()
	l.Forward(in)

	grads := make([]float32, 2)
	expected := []float32{0, 0}

	// activations are -0.4 and -0.2
	loss := l.OutputGradients(costfuncs.MSE(), expected, grads, 0)
	if !scalar.EqualWithinAbs(float64(loss), 0.16+0.04, 1e-6) {
		t.Errorf("loss = %v, want 0.2", loss)
	}
	if !floats.EqualApprox(toFloat64(grads), []float64{0.4, 0.2}, 1e-6) {
		t.Errorf("gradients = %v, want [0.4 0.2]", grads)
	}

	// the derivative of linear is 1, which the limit cuts down
	l.OutputGradients(costfuncs.MSE(), expected, grads, 0.5)
	if !floats.EqualApprox(toFloat64(grads), []float64{0.2, 0.1}, 1e-6) {
		t.Errorf("limited gradients = %v, want [0.2 0.1]", grads)
	}

	loss = l.OutputGradients(costfuncs.Abs(), expected, grads, 0)
	if !scalar.EqualWithinAbs(float64(loss), 0.6, 1e-6) {
		t.Errorf("abs loss = %v, want 0.6", loss)
	}
	if !floats.Equal(toFloat64(grads), []float64{1, 1}) {
		t.Errorf("abs gradients = %v, want [1 1]", grads)
	}
}

func TestBackpropagateAndUpdate(t *testing.T) {
	in, hidden := smallLayers()
	hidden.Forward(in)

	out := NewDenseLayer(1, 2)
	out.ActivationFunc = activations.Linear
	out.SetWeights(0, []float32{2, -3}, 0)
	out.Forward(hidden)

	nextGrads := []float32{0.5}
	grads := make([]float32, 2)
	hidden.Backpropagate(nextGrads, out, grads, 0)

	if !floats.EqualApprox(toFloat64(grads), []float64{1, -1.5}, 1e-6) {
		t.Fatalf("gradients = %v, want [1 -1.5]", grads)
	}

	hidden.UpdateWeights(grads, in, 0.1)

	// w[i][j] += 0.1 * g[i] * in[j]
	want0 := []float64{0.5 + 0.1, 0.25 - 0.2, -1 + 0.05}
	want1 := []float64{-1 - 0.15, 0 + 0.3, 2 - 0.075}
	if got := toFloat64(hidden.Weights(0)); !floats.EqualApprox(got, want0, 1e-6) {
		t.Errorf("weights of neuron 0 = %v, want %v", got, want0)
	}
	if got := toFloat64(hidden.Weights(1)); !floats.EqualApprox(got, want1, 1e-6) {
		t.Errorf("weights of neuron 1 = %v, want %v", got, want1)
	}
	if b := hidden.Bias(0); !scalar.EqualWithinAbs(float64(b), 0.2, 1e-6) {
		t.Errorf("bias 0 = %v, want 0.2", b)
	}
	if b := hidden.Bias(1); !scalar.EqualWithinAbs(float64(b), -0.35, 1e-6) {
		t.Errorf("bias 1 = %v, want -0.35", b)
	}
}

// nonlinear derivatives are evaluated at the neuron's activation, not at its weighted sum
func TestGradientsAtActivation(t *testing.T) {
	in := NewDenseLayer(1, 0)
	in.SetActivation(0, 2)

	hidden := NewDenseLayer(1, 1)
	hidden.ActivationFunc = activations.Swish
	hidden.SetWeights(0, []float32{1}, 0)
	hidden.Forward(in)

	// swish(2) = 2·σ(2)
	if a := hidden.Activations()[0]; !scalar.EqualWithinAbs(float64(a), 1.7615942, 1e-6) {
		t.Fatalf("activation = %v, want 1.7615942", a)
	}

	out := NewDenseLayer(1, 1)
	out.ActivationFunc = activations.Linear
	out.SetWeights(0, []float32{1}, 0)
	out.Forward(hidden)

	grads := make([]float32, 1)
	hidden.Backpropagate([]float32{1}, out, grads, 0)

	// swish'(1.7615942); swish'(2) would be 1.0907843
	if !scalar.EqualWithinAbs(float64(grads[0]), 1.0737880, 1e-5) {
		t.Errorf("hidden gradient = %v, want 1.0737880", grads[0])
	}

	sig := NewDenseLayer(1, 1)
	sig.ActivationFunc = activations.Sigmoid
	sig.SetWeights(0, []float32{0}, 0)
	sig.Forward(in)

	// activation 0.5, error 1 - 0.5, and σ'(0.5) = 0.2350037
	sig.OutputGradients(costfuncs.MSE(), []float32{1}, grads, 0)
	if !scalar.EqualWithinAbs(float64(grads[0]), 0.1175019, 1e-6) {
		t.Errorf("sigmoid output gradient = %v, want 0.1175019", grads[0])
	}
}

func TestForwardIsDeterministic(t *testing.T) {
	m := testModel(t, []int{6, 200, 16, 3}, 11)
	inputs := []float32{0.1, -0.3, 0.7, 1, -1, 0.25}

	first, err := m.Predict(inputs)
	if err != nil {
		t.Fatal(err)
	}
	before := m.Clone()

	second, err := m.Predict(inputs)
	if err != nil {
		t.Fatal(err)
	}

	if !sameBits(first, second) {
		t.Fatalf("outputs differ: %v, %v", first, second)
	}
	requireSameModel(t, before, m, true)
}

func TestParallelMatchesInline(t *testing.T) {
	defer func(old int) { ParallelThreshold = old }(ParallelThreshold)

	m := testModel(t, []int{6, 300, 40, 5}, 5)
	inputs := []float32{1, 2, 3, -4, -5, 0.5}

	ParallelThreshold = 1 << 30
	inline, err := m.Predict(inputs)
	if err != nil {
		t.Fatal(err)
	}

	ParallelThreshold = 1
	parallel, err := m.Predict(inputs)
	if err != nil {
		t.Fatal(err)
	}

	if !sameBits(inline, parallel) {
		t.Fatalf("parallel forward differs: %v != %v", parallel, inline)
	}
}

func TestMulticlassOutputIsSoftmax(t *testing.T) {
	m := testModel(t, []int{4, 8, 5}, 3)
	m.EvaluationType = costfuncs.MulticlassClassification

	out, err := m.Predict([]float32{10, -10, 3, 0})
	if err != nil {
		t.Fatal(err)
	}

	if sum := floats.Sum(toFloat64(out)); !scalar.EqualWithinAbs(sum, 1, 1e-6) {
		t.Fatalf("outputs sum to %v", sum)
	}
}

func TestForwardPropagateErrors(t *testing.T) {
	m := new(Model)
	if err := m.ForwardPropagate(); errors.Cause(err) != ErrTooFewLayers {
		t.Errorf("expected ErrTooFewLayers, got %v", err)
	}

	m = testModel(t, []int{2, 3, 1}, 1)
	if _, err := m.Predict([]float32{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	out := m.Output().(*DenseLayer)
	out.ActivationFunc = activations.Linear
	out.SetWeights(0, []float32{float32(math.NaN()), 0, 0}, 0)

	_, err := m.Predict([]float32{1, 1})
	var numErr *NumericalError
	if !errors.As(err, &numErr) || !errors.Is(err, ErrNumericalInstability) {
		t.Fatalf("expected a NumericalError, got %v", err)
	} else if numErr.Layer != 2 {
		t.Errorf("NaN reported in layer %d, want the output layer", numErr.Layer)
	}
}

func TestKernelDimensionPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic")
		} else if _, ok := r.(*DimensionError); !ok {
			t.Fatalf("expected a *DimensionError, got %v", r)
		}
	}()

	_, l := smallLayers()
	l.Forward(NewDenseLayer(4, 0))
}
