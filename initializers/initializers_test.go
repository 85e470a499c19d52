package initializers

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestUniformStaysInBounds(t *testing.T) {
	r := NewRNG(7)
	u := Uniform().Bounds(0.5, -0.25)

	ws := make([]float32, 10000)
	Fill(r, u, ws)

	var sawLow, sawHigh bool
	for _, w := range ws {
		if w < -0.25 || w >= 0.5 {
			t.Fatalf("value %v out of [-0.25, 0.5)", w)
		}
		sawLow = sawLow || w < 0
		sawHigh = sawHigh || w > 0.25
	}

	if !sawLow || !sawHigh {
		t.Errorf("values don't cover the range")
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, b := make([]float32, 32), make([]float32, 32)
	Fill(NewRNG(42), Uniform(), a)
	Fill(NewRNG(42), Uniform(), b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed gave different values at %d: %v != %v", i, a[i], b[i])
		}
	}
}

func TestVarianceScalingBounds(t *testing.T) {
	cases := []struct {
		name  string
		bound float32
		want  float64
	}{
		{"he", He().Bound(8, 3), 0.5},
		{"in", VarianceScaling().In().Bound(4, 100), 0.5},
		{"avg", VarianceScaling().Avg().Bound(6, 2), 0.5},
		{"out", VarianceScaling().Out().Factor(9).Bound(1, 4), 1.5},
		{"input layer", He().Bound(0, 3), 0},
	}

	for _, c := range cases {
		if !scalar.EqualWithinAbs(float64(c.bound), c.want, 1e-6) {
			t.Errorf("%s: bound = %v, want %v", c.name, c.bound, c.want)
		}
	}
}
