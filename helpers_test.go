package ann

import (
	"math"
	"testing"

	"github.com/prkl/ann/initializers"
)

func testModel(t *testing.T, sizes []int, seed int64) *Model {
	t.Helper()

	m, err := New(sizes, initializers.NewRNG(seed))
	if err != nil {
		t.Fatalf("New(%v): %v", sizes, err)
	}

	return m
}

func sameBits(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if math.Float32bits(a[i]) != math.Float32bits(b[i]) {
			return false
		}
	}

	return true
}

// requireSameModel fails unless both models have identical structure and parameters. Activations
// are only compared if withActivations is true.
func requireSameModel(t *testing.T, want, got *Model, withActivations bool) {
	t.Helper()

	if want.EvaluationType != got.EvaluationType || want.LossFunction != got.LossFunction {
		t.Fatalf("tags differ: want (%v, %v), got (%v, %v)",
			want.EvaluationType, want.LossFunction, got.EvaluationType, got.LossFunction)
	} else if want.NumLayers() != got.NumLayers() {
		t.Fatalf("layer count differs: want %d, got %d", want.NumLayers(), got.NumLayers())
	}

	for i := 0; i < want.NumLayers(); i++ {
		w := want.Layer(i).(*DenseLayer)
		g := got.Layer(i).(*DenseLayer)

		switch {
		case w.Size() != g.Size() || w.NumInputs() != g.NumInputs():
			t.Fatalf("layer %d: dimensions differ: want %d×%d, got %d×%d",
				i, w.Size(), w.NumInputs(), g.Size(), g.NumInputs())
		case w.ActivationFunc != g.ActivationFunc || w.LeakySlope != g.LeakySlope:
			t.Fatalf("layer %d: activation differs: want %v(%v), got %v(%v)",
				i, w.ActivationFunc, w.LeakySlope, g.ActivationFunc, g.LeakySlope)
		case !sameBits(w.weights, g.weights):
			t.Fatalf("layer %d: weights differ", i)
		case !sameBits(w.biases, g.biases):
			t.Fatalf("layer %d: biases differ", i)
		case withActivations && !sameBits(w.activations, g.activations):
			t.Fatalf("layer %d: activations differ", i)
		}
	}
}
