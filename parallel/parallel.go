// Package parallel provides recursive parallel loops over index ranges.
//
// The functions in this package are used around scans: to generate inputs
// and to check outputs. They split a range into batches up front and do not
// balance load beyond that.
package parallel

import (
	"fmt"
	"sync"

	"github.com/intel/forGoScan/internal"
)

// nofBatches returns n if it is positive, or a default that takes the number
// of CPUs into account.
func nofBatches(low, high, n int) int {
	switch size := high - low; {
	case size < 0:
		panic(fmt.Sprintf("invalid range: %v:%v", low, high))
	case n < 0:
		panic(fmt.Sprintf("invalid number of batches: %v", n))
	case n > 0:
		return n
	case size == 0:
		return 1
	default:
		n = 2 * internal.DefaultWorkers()
		if n > size {
			n = size
		}
		return n
	}
}

// RangeReduce receives a range, a batch count, a range reduce function, and a
// join function, divides the range into batches, and invokes the range reducer
// for each of these batches in parallel, covering the half-open interval from
// low to high, including low but excluding high. The results of the range
// reducer invocations are then combined by repeated invocations of join, in
// the order of the batches.
//
// If n is 0, a reasonable default is used that takes runtime.NumCPU() into
// account.
//
// RangeReduce panics if high < low, or if n < 0.
//
// If one or more reducer invocations panic, the corresponding goroutines
// recover the panics, and RangeReduce eventually panics with the left-most
// recovered panic value.
func RangeReduce[T any](
	low, high, n int,
	reduce func(low, high int) T,
	join func(x, y T) T,
) T {
	var recur func(int, int, int) T
	recur = func(low, high, n int) T {
		if n == 1 {
			return reduce(low, high)
		}
		batchSize := ((high - low - 1) / n) + 1
		half := n / 2
		mid := low + batchSize*half
		if mid >= high {
			return reduce(low, high)
		}
		var left, right T
		var p interface{}
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer func() {
				p = internal.WrapPanic(recover())
				wg.Done()
			}()
			right = recur(mid, high, n-half)
		}()
		left = recur(low, mid, half)
		wg.Wait()
		if p != nil {
			panic(p)
		}
		return join(left, right)
	}
	return recur(low, high, nofBatches(low, high, n))
}

// Range is like RangeReduce for range functions that return nothing.
func Range(low, high, n int, f func(low, high int)) {
	RangeReduce(low, high, n,
		func(low, high int) struct{} {
			f(low, high)
			return struct{}{}
		},
		func(struct{}, struct{}) struct{} { return struct{}{} },
	)
}
