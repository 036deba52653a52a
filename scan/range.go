// Package scan provides an adaptive parallel prefix scan.
//
// A Scanner folds the index range [0, n) left to right with a user supplied
// Body and an associative Combiner. The range is split into leaves of at most
// Config.Grain indices that are distributed over a work-stealing pool. A leaf
// whose incoming prefix is already known when a worker picks it up is folded
// once, in final mode. A leaf picked up earlier is folded speculatively from
// the identity to obtain its aggregate, and folded a second time in final mode
// once the prefix of everything to its left is known. Outputs are only
// written by final folds, so the result is the same as that of a sequential
// left-to-right fold regardless of the number of workers.
package scan

import "fmt"

// A Range is a half-open interval of indices, from Begin up to but excluding
// End.
type Range struct {
	Begin, End int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.End - r.Begin
}

// Empty reports whether r contains no indices.
func (r Range) Empty() bool {
	return r.End <= r.Begin
}

// Divisible reports whether r is larger than grain and is split further.
func (r Range) Divisible(grain int) bool {
	return r.Len() > grain
}

// Split cuts r at its midpoint. The left half is never larger than the right
// half, and left.End == right.Begin.
func (r Range) Split() (left, right Range) {
	mid := r.Begin + r.Len()/2
	return Range{r.Begin, mid}, Range{mid, r.End}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Begin, r.End)
}
