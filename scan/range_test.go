package scan

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeSplit(t *testing.T) {
	for _, r := range []Range{{0, 2}, {0, 3}, {5, 1029}, {7, 8}, {100, 100000}} {
		left, right := r.Split()
		assert.Equal(t, r.Begin, left.Begin, r)
		assert.Equal(t, left.End, right.Begin, r)
		assert.Equal(t, r.End, right.End, r)
		assert.LessOrEqual(t, left.Len(), right.Len(), r)
		assert.LessOrEqual(t, right.Len()-left.Len(), 1, r)
	}
	assert.True(t, Range{3, 3}.Empty())
	assert.Equal(t, "[1, 4)", Range{1, 4}.String())
}

func leavesOf[T any](a *arena[T]) []Range {
	var leaves []Range
	var walk func(int)
	walk = func(i int) {
		n := &a.nodes[i]
		if n.leaf() {
			leaves = append(leaves, n.r)
			return
		}
		walk(n.left)
		walk(n.right)
	}
	walk(0)
	return leaves
}

func TestArenaBuild(t *testing.T) {
	for _, n := range []int{1, 5, 1024, 1025, 4096, 10007} {
		for _, grain := range []int{1, 3, 1024} {
			t.Run(fmt.Sprintf("n=%d/grain=%d", n, grain), func(t *testing.T) {
				var a arena[int]
				a.build(Range{0, n}, grain, true)

				leaves := leavesOf(&a)
				require.Len(t, leaves, a.leaves)
				next := 0
				for _, l := range leaves {
					require.Equal(t, next, l.Begin, "leaves must tile the range in order")
					require.False(t, l.Empty())
					require.LessOrEqual(t, l.Len(), grain)
					next = l.End
				}
				require.Equal(t, n, next)

				for i := range a.nodes {
					nd := &a.nodes[i]
					if nd.leaf() {
						require.Equal(t, noNode, nd.right)
						continue
					}
					l, r := &a.nodes[nd.left], &a.nodes[nd.right]
					require.Equal(t, i, l.parent)
					require.Equal(t, i, r.parent)
					require.Equal(t, nd.r.Begin, l.r.Begin)
					require.Equal(t, l.r.End, r.r.Begin)
					require.Equal(t, nd.r.End, r.r.End)
				}
			})
		}
	}
}

func TestArenaBuildWithoutSplitting(t *testing.T) {
	var a arena[int]
	a.build(Range{0, 1 << 20}, 16, false)
	assert.Len(t, a.nodes, 1)
	assert.Equal(t, 1, a.leaves)
	assert.True(t, a.nodes[0].leaf())

	a.reset()
	assert.Empty(t, a.nodes)
}

func TestArenaIndicesAreMachineWords(t *testing.T) {
	// Grain 1 over more than 2^30 elements needs more than 2^31 nodes.
	nodeType := reflect.TypeOf(node[int]{})
	for _, name := range []string{"parent", "left", "right"} {
		field, ok := nodeType.FieldByName(name)
		require.True(t, ok, name)
		assert.Equal(t, reflect.Int, field.Type.Kind(), name)
	}

	var a arena[int]
	a.build(Range{0, 9}, 1, true)
	assert.Len(t, a.nodes, 2*9-1)
	assert.Equal(t, 9, a.leaves)
}
