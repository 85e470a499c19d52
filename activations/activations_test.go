package activations

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats/scalar"
)

// points away from 0 (where relu isn't differentiable) and inside swish's clamp
var samplePoints = []float64{-7.5, -3.7, -1.2, -0.4, 0.3, 0.9, 2.5, 6.1}

func TestDerivativeMatchesFiniteDifference(t *testing.T) {
	const slope = 0.01

	for k := Kind(0); k < NumKinds; k++ {
		k := k
		t.Run(k.TypeString(), func(t *testing.T) {
			f := func(x float64) float64 {
				return float64(Activate(k, float32(x), slope))
			}

			for _, x := range samplePoints {
				numeric := fd.Derivative(f, x, &fd.Settings{Formula: fd.Central, Step: 1e-3})
				analytic := float64(Derivative(k, float32(x), slope, 100))

				if !scalar.EqualWithinAbs(numeric, analytic, 1e-2) {
					t.Errorf("f'(%v): analytic %v, numeric %v", x, analytic, numeric)
				}
			}
		})
	}
}

func TestDerivativeClamp(t *testing.T) {
	// linear has a derivative of exactly 1 everywhere
	if d := Derivative(Linear, 3, 0, 0.75); d != 0.75 {
		t.Errorf("clamped linear derivative = %v, want 0.75", d)
	}

	if d := Derivative(Linear, 3, 0, 0); d != 1 {
		t.Errorf("unclamped linear derivative = %v, want 1", d)
	}

	// a negative leaky slope gets clamped from below
	if d := Derivative(LeakyReLU, -2, -4, 0.5); d != -0.5 {
		t.Errorf("clamped leaky relu derivative = %v, want -0.5", d)
	}
}

func TestSwishClampsInput(t *testing.T) {
	if a, b := Activate(Swish, 10, 0), Activate(Swish, 1e6, 0); a != b {
		t.Errorf("swish(1e6) = %v, want swish(10) = %v", b, a)
	}

	for _, x := range []float32{-1e30, -50, 50, 1e30} {
		if y := Activate(Swish, x, 0); math32.IsNaN(y) || math32.IsInf(y, 0) {
			t.Errorf("swish(%v) = %v", x, y)
		}
		if d := Derivative(Swish, x, 0, 0); math32.IsNaN(d) || math32.IsInf(d, 0) {
			t.Errorf("swish'(%v) = %v", x, d)
		}
	}
}

func TestSigmoidExtremes(t *testing.T) {
	if y := Activate(Sigmoid, -1e4, 0); y != 0 {
		t.Errorf("sigmoid(-1e4) = %v", y)
	}
	if y := Activate(Sigmoid, 1e4, 0); y != 1 {
		t.Errorf("sigmoid(1e4) = %v", y)
	}
}

func TestSoftmax(t *testing.T) {
	cases := [][]float32{
		{0},
		{1, 2, 3},
		{-1000, 0, 1000},
		{1e30, 1e30, -1e30},
		{-5, -5, -5, -5},
		{88, 89, 90, -3.4e38},
	}

	for _, in := range cases {
		out := make([]float32, len(in))
		Softmax(out, in)

		var sum float64
		for i, v := range out {
			if math32.IsNaN(v) || v < 0 || v > 1 {
				t.Fatalf("softmax(%v)[%d] = %v", in, i, v)
			}
			sum += float64(v)
		}

		if !scalar.EqualWithinAbs(sum, 1, 1e-6) {
			t.Errorf("softmax(%v) sums to %v", in, sum)
		}
	}
}

func TestSoftmaxInPlace(t *testing.T) {
	vs := []float32{3, 1, 0.2}
	Softmax(vs, vs)

	if !(vs[0] > vs[1] && vs[1] > vs[2]) {
		t.Fatalf("softmax didn't preserve order: %v", vs)
	}
}

func TestParse(t *testing.T) {
	for k := Kind(0); k < NumKinds; k++ {
		got, err := Parse(k.TypeString())
		if err != nil {
			t.Fatalf("Parse(%q): %v", k.TypeString(), err)
		} else if got != k {
			t.Errorf("Parse(%q) = %v, want %v", k.TypeString(), got, k)
		}
	}

	if _, err := Parse("softsign"); errors.Cause(err) != ErrUnknownActivation {
		t.Errorf("expected ErrUnknownActivation, got %v", err)
	}

	if s := Kind(17).TypeString(); s != "unknown(17)" {
		t.Errorf("TypeString of invalid kind = %q", s)
	}
}
