package utils

import (
	"sync/atomic"
	"testing"
)

func TestMultiThreadCoversRange(t *testing.T) {
	for _, threshold := range []int{0, 1, 16, 1000} {
		hits := make([]int32, 517)

		MultiThread(3, len(hits), threshold, func(s, e int) {
			for i := s; i < e; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})

		for i, h := range hits {
			want := int32(1)
			if i < 3 {
				want = 0
			}
			if h != want {
				t.Fatalf("threshold %d: index %d visited %d times", threshold, i, h)
			}
		}
	}
}

func TestMultiThreadBelowThresholdIsInline(t *testing.T) {
	calls := 0
	MultiThread(0, 127, 128, func(s, e int) {
		calls++
		if s != 0 || e != 127 {
			t.Errorf("got range [%d, %d)", s, e)
		}
	})

	if calls != 1 {
		t.Fatalf("expected a single call, got %d", calls)
	}
}

func TestMultiThreadEmpty(t *testing.T) {
	MultiThread(5, 5, 0, func(s, e int) {
		t.Fatal("f called on an empty range")
	})

	if sum := MultiThreadSum(5, 5, 0, func(s, e int) float32 { return 1 }); sum != 0 {
		t.Fatalf("sum over empty range = %v", sum)
	}
}

func TestMultiThreadSum(t *testing.T) {
	values := make([]float32, 1000)
	for i := range values {
		values[i] = 1
	}

	sum := MultiThreadSum(0, len(values), 1, func(s, e int) float32 {
		var partial float32
		for _, v := range values[s:e] {
			partial += v
		}
		return partial
	})

	if sum != 1000 {
		t.Fatalf("sum = %v, want 1000", sum)
	}
}
