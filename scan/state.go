package scan

import "fmt"

// State is the invocation state of a leaf.
type State uint8

const (
	// Unstarted leaves have not been picked up by a worker.
	Unstarted State = iota
	// Speculative leaves are being folded from the identity, without
	// knowing their incoming prefix.
	Speculative
	// Combined leaves have published their aggregate, which is merged
	// upward with their siblings' aggregates, and wait for their incoming
	// prefix.
	Combined
	// Final leaves are being folded with their incoming prefix and write
	// their outputs.
	Final
	// Done leaves have completed their final fold.
	Done
)

var stateNames = [...]string{"Unstarted", "Speculative", "Combined", "Final", "Done"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// CanBecome reports whether next is a legal successor of s.
func (s State) CanBecome(next State) bool {
	switch s {
	case Unstarted:
		return next == Speculative || next == Final
	case Speculative:
		return next == Combined
	case Combined:
		return next == Final
	case Final:
		return next == Done
	default:
		return false
	}
}

// To returns next, and panics if next is not a legal successor of s.
func (s State) To(next State) State {
	if !s.CanBecome(next) {
		panic(fmt.Sprintf("scan: illegal leaf transition %v -> %v", s, next))
	}
	return next
}
