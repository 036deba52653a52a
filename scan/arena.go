package scan

import "sync"

const noNode = -1

// Facts known about a node. Each fact is set at most once.
const (
	hasIn uint8 = 1 << iota
	hasAgg
	hasOut
	hasLeftAgg
	hasRightAgg
)

// A node covers a range of the scan. Leaves are folded by the body; inner
// nodes only relay prefixes and aggregates between their children.
//
// For every node, out = in ⊕ agg, where in is the accumulator before r.Begin
// and agg is the fold of r from the identity. For inner nodes, in(left) = in,
// in(right) = out(left), and out = out(right).
type node[T any] struct {
	mutex  sync.Mutex
	r      Range
	parent int
	left   int
	right  int
	state  State
	facts  uint8
	in     T
	agg    T
	out    T
	// Aggregates of the children, combined once both are known.
	leftAgg, rightAgg T
}

func (n *node[T]) leaf() bool {
	return n.left == noNode
}

func (n *node[T]) has(fact uint8) bool {
	return n.facts&fact != 0
}

// arena stores the tree of a run. Nodes refer to each other by index; the
// root is at index 0 and the tree is never modified while a run is active.
type arena[T any] struct {
	nodes  []node[T]
	leaves int
}

// build splits r down to grain and records the resulting tree. If split is
// false, r becomes a single leaf.
func (a *arena[T]) build(r Range, grain int, split bool) {
	a.nodes = a.nodes[:0]
	a.leaves = 0
	type pending struct {
		r      Range
		parent int
		right  bool
	}
	stack := []pending{{r, noNode, false}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		index := len(a.nodes)
		a.nodes = append(a.nodes, node[T]{
			r:      p.r,
			parent: p.parent,
			left:   noNode,
			right:  noNode,
		})
		if p.parent != noNode {
			if p.right {
				a.nodes[p.parent].right = index
			} else {
				a.nodes[p.parent].left = index
			}
		}
		if split && p.r.Divisible(grain) {
			left, right := p.r.Split()
			// Left is pushed last so that it is laid out first.
			stack = append(stack, pending{right, index, true}, pending{left, index, false})
		} else {
			a.leaves++
		}
	}
}

func (a *arena[T]) reset() {
	for i := range a.nodes {
		a.nodes[i] = node[T]{}
	}
	a.nodes = a.nodes[:0]
	a.leaves = 0
}
