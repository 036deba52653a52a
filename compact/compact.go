// Package compact implements stream compaction on top of the parallel scan
// engine: it keeps the elements of a slice that satisfy a predicate, in their
// original order.
//
// The scan counts matching elements. Its final fold of a leaf knows how many
// elements to the left of the leaf matched, so every match is written
// directly to its position in the output.
package compact

import "github.com/intel/forGoScan/scan"

// NewScanner returns a scanner whose runs over len(input) indices write the
// elements of input for which keep returns true to the front of output, and
// return their count. output must be at least as long as input. keep is
// called concurrently and up to twice per element.
func NewScanner[T any](input, output []T, keep func(T) bool, config scan.Config) (*scan.Scanner[int], error) {
	output = output[:len(input)]
	body := scan.BodyFunc[int](func(r scan.Range, acc int, final bool) int {
		if !final {
			for _, v := range input[r.Begin:r.End] {
				if keep(v) {
					acc++
				}
			}
			return acc
		}
		for _, v := range input[r.Begin:r.End] {
			if keep(v) {
				acc++
				output[acc-1] = v
			}
		}
		return acc
	})
	return scan.New[int](body, scan.Sum[int]{}, config)
}

// CompactFunc returns the elements of input for which keep returns true, in
// input order.
func CompactFunc[T any](input []T, keep func(T) bool, config scan.Config) ([]T, error) {
	output := make([]T, len(input))
	s, err := NewScanner(input, output, keep, config)
	if err != nil {
		return nil, err
	}
	count, err := s.Run(len(input))
	if err != nil {
		return nil, err
	}
	return output[:count], nil
}

// Compact returns the values of input that satisfy Predicate(mask, ·), in
// input order.
func Compact(mask uint64, input []uint64, config scan.Config) ([]uint64, error) {
	return CompactFunc(input, func(v uint64) bool {
		return Predicate(mask, v)
	}, config)
}
