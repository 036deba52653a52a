// Package gsync provides typed synchronization abstractions.
package gsync

import (
	"sync"

	"go.uber.org/atomic"
)

// Pool is a type-safe version of sync.Pool.
//
// New must be set before the first call to Get. If Reset is set, it is
// applied to every value passed to Put before the value is made available
// again.
type Pool[T any] struct {
	New      func() *T
	Reset    func(*T)
	syncPool atomic.Pointer[sync.Pool]
}

func (p *Pool[T]) getSyncPool() *sync.Pool {
	if result := p.syncPool.Load(); result != nil {
		return result
	}
	result := &sync.Pool{
		New: func() any {
			return p.New()
		},
	}
	if p.syncPool.CompareAndSwap(nil, result) {
		return result
	}
	return p.syncPool.Load()
}

func (p *Pool[T]) Get() *T {
	return p.getSyncPool().Get().(*T)
}

func (p *Pool[T]) Put(x *T) {
	if p.Reset != nil {
		p.Reset(x)
	}
	p.getSyncPool().Put(x)
}
