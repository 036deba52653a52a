package workers_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"

	"github.com/intel/forGoScan/workers"
)

// spawn builds a binary tree of tasks of the given depth and stops the pool
// once every leaf has run.
func spawn(depth int, leaves, remaining *atomic.Int64) workers.Task {
	return func(w *workers.Worker) {
		if depth == 0 {
			leaves.Inc()
			if remaining.Dec() == 0 {
				w.Stop()
			}
			return
		}
		w.Submit(spawn(depth-1, leaves, remaining))
		spawn(depth-1, leaves, remaining)(w)
	}
}

func TestRunExecutesAllTasks(t *testing.T) {
	for _, n := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", n), func(t *testing.T) {
			const depth = 10
			var leaves atomic.Int64
			remaining := atomic.NewInt64(1 << depth)

			p := workers.New(n, false)
			require.Equal(t, n, p.Size())
			p.Run(spawn(depth, &leaves, remaining))

			assert.Equal(t, int64(1<<depth), leaves.Load())
			executed, stolen := p.Stats()
			assert.Equal(t, int64(1<<depth), executed, "one task per leaf, the root included")
			if n == 1 {
				assert.Zero(t, stolen, "a single worker has nobody to steal from")
			}
		})
	}
}

func TestRunPropagatesPanic(t *testing.T) {
	p := workers.New(4, false)
	defer func() {
		r := recover()
		require.NotNil(t, r, "Run must re-panic")
		s, ok := r.(string)
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(s, "task failure"), s)
	}()
	p.Run(func(w *workers.Worker) {
		for i := 0; i < 16; i++ {
			w.Submit(func(*workers.Worker) {})
		}
		panic("task failure")
	})
	t.Fatal("unreachable")
}

func TestOwnerRunsNewestFirst(t *testing.T) {
	var order []int
	p := workers.New(1, false)
	p.Run(func(w *workers.Worker) {
		for i := 0; i < 3; i++ {
			i := i
			w.Submit(func(w *workers.Worker) {
				order = append(order, i)
				if len(order) == 3 {
					w.Stop()
				}
			})
		}
	})
	assert.Equal(t, []int{2, 1, 0}, order)
}

func TestNewRejectsEmptyPool(t *testing.T) {
	assert.Panics(t, func() { workers.New(0, false) })
}

func TestPinnedRun(t *testing.T) {
	var leaves atomic.Int64
	remaining := atomic.NewInt64(1 << 4)
	p := workers.New(2, true)
	p.Run(spawn(4, &leaves, remaining))
	assert.Equal(t, int64(16), leaves.Load())
}
