package utils

import (
	"runtime"
	"sync"
)

// Multithreads an operation on a range of integers
//
// should be run sequentially, not in a separate thread
// designed for use by layers in their per-neuron calculations
//
// the range includes 'start' and excludes 'end'
//   - MultiThread assumes that end ≥ start
//
// 'threshold' is the minimum number of indexes for which goroutines are used at all. Below it, 'f'
// is called once, inline, with the whole range. A threshold ≤ 0 always splits.
// 'f' is given a contiguous sub-range [s, e) and must only touch state belonging to those indexes
func MultiThread(start, end, threshold int, f func(s, e int)) {
	cs := chunks(start, end, threshold)

	if len(cs) == 0 {
		return
	} else if len(cs) == 1 {
		f(cs[0][0], cs[0][1])
		return
	}

	var wg sync.WaitGroup

	wg.Add(len(cs))
	for _, c := range cs {
		go func(s, e int) {
			f(s, e)
			wg.Done()
		}(c[0], c[1])
	}

	wg.Wait()
}

// MultiThreadSum is MultiThread for reductions: each sub-range returns a partial sum, and the
// partials are added together in range order, so that the result only depends on how the range
// was split.
func MultiThreadSum(start, end, threshold int, f func(s, e int) float32) float32 {
	cs := chunks(start, end, threshold)

	if len(cs) == 0 {
		return 0
	} else if len(cs) == 1 {
		return f(cs[0][0], cs[0][1])
	}

	partials := make([]float32, len(cs))

	var wg sync.WaitGroup

	wg.Add(len(cs))
	for i, c := range cs {
		go func(i, s, e int) {
			partials[i] = f(s, e)
			wg.Done()
		}(i, c[0], c[1])
	}

	wg.Wait()

	var sum float32
	for _, p := range partials {
		sum += p
	}

	return sum
}

// returns the sub-ranges that [start, end) is split into, one per CPU at most
func chunks(start, end, threshold int) [][2]int {
	size := end - start
	if size <= 0 {
		return nil
	}

	numThreads := runtime.NumCPU()
	if (threshold > 0 && size < threshold) || numThreads < 2 {
		return [][2]int{{start, end}}
	}

	if numThreads > size {
		numThreads = size
	}

	perThread := (size + numThreads - 1) / numThreads

	cs := make([][2]int, 0, numThreads)
	for s := start; s < end; s += perThread {
		e := s + perThread
		if e > end {
			e = end
		}

		cs = append(cs, [2]int{s, e})
	}

	return cs
}
