// This package provides an adaptive parallel scan engine and the algorithms
// built on it.
//
// It provides the following subpackages:
//
// forGoScan/scan provides the engine: a work-stealing prefix scan over an
// index range with a pluggable fold and an associative combiner, where idle
// workers fold ranges speculatively before their incoming prefix is known.
//
// forGoScan/prefix provides prefix sums, out of place and in place.
//
// forGoScan/compact provides stream compaction, keeping the elements that
// satisfy a predicate in their original order.
//
// forGoScan/workers provides the bounded work-stealing worker pool the engine
// runs on.
//
// forGoScan/parallel provides simple recursive parallel loops over ranges.
//
// forGoScan/gsync provides typed synchronization abstractions.
//
// forGoScan/bench and cmd/scanbench time the engine on the standard
// benchmark cases.
package forGoScan
