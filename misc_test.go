package ann

import (
	"math"
	"testing"
)

func TestIndexesNegative(t *testing.T) {
	vs := []float32{-3, -1, -2, -1}
	if i := maxIndex(vs); i != 1 {
		t.Errorf("maxIndex = %d, want 1", i)
	}
	if i := minIndex(vs); i != 0 {
		t.Errorf("minIndex = %d, want 0", i)
	}

	nan := float32(math.NaN())
	if i := maxIndex([]float32{nan, nan}); i != 0 {
		t.Errorf("maxIndex of all-NaN = %d, want 0", i)
	}
	if i := maxIndex(nil); i != 0 {
		t.Errorf("maxIndex of empty = %d, want 0", i)
	}
}

func TestCorrect(t *testing.T) {
	tests := []struct {
		outs, targets  []float32
		highest, round bool
	}{
		{[]float32{0.1, 0.7, 0.2}, []float32{0, 1, 0}, true, true},
		{[]float32{0.4, 0.45, 0.15}, []float32{0, 1, 0}, true, false},
		{[]float32{0.6, 0.3}, []float32{0, 1}, false, false},
		{[]float32{0.9}, []float32{0}, true, false},
		{[]float32{0.2}, []float32{0}, true, true},
	}

	for i, test := range tests {
		if got := CorrectHighest(test.outs, test.targets); got != test.highest {
			t.Errorf("%d: CorrectHighest = %t, want %t", i, got, test.highest)
		}
		if got := CorrectRound(test.outs, test.targets); got != test.round {
			t.Errorf("%d: CorrectRound = %t, want %t", i, got, test.round)
		}
	}

	if CorrectRound([]float32{1}, []float32{1, 0}) {
		t.Error("CorrectRound with mismatched lengths should be false")
	}
}
