package scan

import (
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/atomic"

	"github.com/intel/forGoScan/gsync"
	"github.com/intel/forGoScan/workers"
)

// An Observer watches the scheduling of a run without influencing it.
//
// Speculative is called before each speculative fold, possibly from several
// goroutines at once.
type Observer interface {
	Speculative(r Range)
}

// A Scanner runs parallel scans with a fixed body, combiner and
// configuration. A Scanner can be used for any number of runs, including
// concurrent ones.
type Scanner[T any] struct {
	body     Body[T]
	combiner Combiner[T]
	config   Config
	arenas   gsync.Pool[arena[T]]
}

// New returns a Scanner, or an error wrapping ErrInvalidConfig if config is
// invalid.
func New[T any](body Body[T], combiner Combiner[T], config Config) (*Scanner[T], error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Scanner[T]{
		body:     body,
		combiner: combiner,
		config:   config,
	}
	s.arenas.New = func() *arena[T] { return new(arena[T]) }
	s.arenas.Reset = (*arena[T]).reset
	return s, nil
}

// Config returns the configuration of s.
func (s *Scanner[T]) Config() Config {
	return s.config
}

// Run scans the range [0, n) and returns the fold of the whole range, which
// is the combiner's identity if n == 0. No worker is started for n == 0.
//
// Run returns an error if n is negative. If the body or the combiner panics,
// Run waits for all workers to stop and then panics with the first recovered
// panic value; outputs written until then are unspecified.
func (s *Scanner[T]) Run(n int) (T, error) {
	return s.RunWith(n, nil)
}

// Measure is like Run, and additionally reports the fraction of indices that
// were folded only once, that is, not speculatively. A ratio of 1 means that
// no speculative work was done.
func (s *Scanner[T]) Measure(n int) (result T, ratio float64, err error) {
	probe := NewProbe(n)
	result, err = s.RunWith(n, probe)
	return result, probe.Ratio(), err
}

// RunWith is like Run, and reports scheduling events to observer if it is
// not nil.
func (s *Scanner[T]) RunWith(n int, observer Observer) (result T, err error) {
	switch {
	case n < 0:
		return result, errors.Errorf("scan: invalid range size %d", n)
	case n == 0:
		return s.combiner.Identity(), nil
	}

	a := s.arenas.Get()
	defer s.arenas.Put(a)
	a.build(Range{0, n}, s.config.Grain, s.config.Workers > 1)

	r := &run[T]{
		body:     s.body,
		combiner: s.combiner,
		identity: s.combiner.Identity(),
		nodes:    a.nodes,
		observer: observer,
	}
	r.remaining.Store(int64(a.leaves))

	pool := workers.New(s.config.Workers, s.config.Pin)
	pool.Run(r.start)

	executed, stolen := pool.Stats()
	jww.DEBUG.Printf("scan: n=%d grain=%d workers=%d leaves=%d tasks=%d stolen=%d",
		n, s.config.Grain, s.config.Workers, a.leaves, executed, stolen)

	root := &a.nodes[0]
	root.mutex.Lock()
	result = root.out
	root.mutex.Unlock()
	return result, nil
}

type factKind uint8

const (
	factIn factKind = iota
	factAgg
	factOut
)

type fact[T any] struct {
	kind  factKind
	index int
	value T
}

// run is the state of a single scan.
type run[T any] struct {
	body      Body[T]
	combiner  Combiner[T]
	identity  T
	nodes     []node[T]
	observer  Observer
	remaining atomic.Int64
}

func (r *run[T]) start(w *workers.Worker) {
	r.publish(w, fact[T]{factIn, 0, r.identity})
	r.descend(w, 0)
}

// descend walks down the left spine of the subtree at index, offering every
// right child to other workers, and processes the leftmost leaf.
func (r *run[T]) descend(w *workers.Worker, index int) {
	for {
		n := &r.nodes[index]
		if n.leaf() {
			r.leaf(w, index)
			return
		}
		right := n.right
		w.Submit(func(w *workers.Worker) {
			r.descend(w, right)
		})
		index = n.left
	}
}

func (r *run[T]) leaf(w *workers.Worker, index int) {
	n := &r.nodes[index]
	n.mutex.Lock()
	final := n.has(hasIn)
	acc := n.in
	if final {
		n.state = n.state.To(Final)
	} else {
		n.state = n.state.To(Speculative)
	}
	n.mutex.Unlock()

	if !final {
		if r.observer != nil {
			r.observer.Speculative(n.r)
		}
		agg := r.body.Scan(n.r, r.identity, false)

		n.mutex.Lock()
		n.state = n.state.To(Combined)
		if final = n.has(hasIn); final {
			n.state = n.state.To(Final)
			acc = n.in
		}
		n.mutex.Unlock()

		r.publish(w, fact[T]{factAgg, index, agg})
		if !final {
			// Whoever delivers the prefix schedules the final fold.
			return
		}
	}
	r.finish(w, index, acc)
}

func (r *run[T]) finish(w *workers.Worker, index int, acc T) {
	n := &r.nodes[index]
	out := r.body.Scan(n.r, acc, true)

	n.mutex.Lock()
	n.state = n.state.To(Done)
	n.mutex.Unlock()

	r.publish(w, fact[T]{factOut, index, out})
	if r.remaining.Dec() == 0 {
		w.Stop()
	}
}

// publish records f and everything that can be derived from it. Combiner
// calls happen outside of node locks.
func (r *run[T]) publish(w *workers.Worker, f fact[T]) {
	pending := []fact[T]{f}
	for len(pending) > 0 {
		f := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		n := &r.nodes[f.index]

		switch f.kind {
		case factIn:
			n.mutex.Lock()
			if n.has(hasIn) {
				n.mutex.Unlock()
				continue
			}
			n.facts |= hasIn
			n.in = f.value
			resume := false
			if n.leaf() && n.state == Combined {
				n.state = n.state.To(Final)
				resume = true
			}
			hadAgg, agg := n.has(hasAgg), n.agg
			n.mutex.Unlock()

			if !n.leaf() {
				pending = append(pending, fact[T]{factIn, n.left, f.value})
			}
			if hadAgg {
				pending = append(pending, fact[T]{factOut, f.index, r.combiner.Combine(f.value, agg)})
			}
			if resume {
				index, acc := f.index, f.value
				w.Submit(func(w *workers.Worker) {
					r.finish(w, index, acc)
				})
			}

		case factAgg:
			n.mutex.Lock()
			if n.has(hasAgg) {
				n.mutex.Unlock()
				continue
			}
			n.facts |= hasAgg
			n.agg = f.value
			hadIn, in := n.has(hasIn), n.in
			n.mutex.Unlock()

			if hadIn {
				pending = append(pending, fact[T]{factOut, f.index, r.combiner.Combine(in, f.value)})
			}
			if n.parent == noNode {
				continue
			}
			p := &r.nodes[n.parent]
			p.mutex.Lock()
			if p.left == f.index {
				p.facts |= hasLeftAgg
				p.leftAgg = f.value
			} else {
				p.facts |= hasRightAgg
				p.rightAgg = f.value
			}
			both := p.has(hasLeftAgg) && p.has(hasRightAgg)
			left, right := p.leftAgg, p.rightAgg
			p.mutex.Unlock()
			if both {
				pending = append(pending, fact[T]{factAgg, n.parent, r.combiner.Combine(left, right)})
			}

		case factOut:
			n.mutex.Lock()
			if n.has(hasOut) {
				n.mutex.Unlock()
				continue
			}
			n.facts |= hasOut
			n.out = f.value
			n.mutex.Unlock()

			if n.parent == noNode {
				continue
			}
			if p := &r.nodes[n.parent]; p.left == f.index {
				pending = append(pending, fact[T]{factIn, p.right, f.value})
			} else {
				pending = append(pending, fact[T]{factOut, n.parent, f.value})
			}
		}
	}
}
