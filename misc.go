package ann

import (
	"github.com/chewxy/math32"
)

// maxIndex returns the index of the first largest value, starting from -Inf so that all-negative
// vectors are handled. It returns 0 for empty or all-NaN vectors.
func maxIndex(vs []float32) int {
	max := math32.Inf(-1)
	index := 0
	for i, v := range vs {
		if v > max {
			max = v
			index = i
		}
	}

	return index
}

// minIndex is the counterpart of maxIndex
func minIndex(vs []float32) int {
	min := math32.Inf(1)
	index := 0
	for i, v := range vs {
		if v < min {
			min = v
			index = i
		}
	}

	return index
}

// CorrectHighest returns whether the largest value of 'outs' is at the same index as the largest of
// 'targets'. Ties go to the lowest index.
func CorrectHighest(outs, targets []float32) bool {
	return maxIndex(outs) == maxIndex(targets)
}

// CorrectRound returns whether every value of 'outs', rounded to the nearest integer, is equal to the
// corresponding value of 'targets'. Useful for binary and multilabel outputs.
func CorrectRound(outs, targets []float32) bool {
	if len(outs) != len(targets) {
		return false
	}

	for i := range outs {
		if math32.Floor(outs[i]+0.5) != targets[i] {
			return false
		}
	}

	return true
}
