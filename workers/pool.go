// Package workers provides a bounded pool of worker goroutines with
// work-stealing dispatch.
//
// Each worker owns a deque of pending tasks. Tasks submitted by a worker go to
// the back of its own deque and are taken back from there first; idle workers
// steal from the front of other workers' deques. Tasks submitted from outside
// the pool go to a shared FIFO queue.
package workers

import (
	"runtime"
	"sync"

	jww "github.com/spf13/jwalterweatherman"
	"go.uber.org/atomic"

	"github.com/intel/forGoScan/gsync"
	"github.com/intel/forGoScan/internal"
	"github.com/intel/forGoScan/internal/affinity"
)

// A Task is a unit of work. It receives the worker that executes it, which it
// can use to submit further tasks.
type Task func(w *Worker)

// A Worker is one goroutine of a Pool.
type Worker struct {
	id    int
	pool  *Pool
	local deque
}

// ID returns the index of the worker in its pool, from 0 to Size()-1.
func (w *Worker) ID() int {
	return w.id
}

// Submit pushes task onto the worker's own deque.
func (w *Worker) Submit(task Task) {
	w.pool.queued.Inc()
	w.local.pushBack(task)
	w.pool.wakeOne()
}

// Stop ends the run of the worker's pool. See Pool.Stop.
func (w *Worker) Stop() {
	w.pool.Stop()
}

// A Pool runs tasks on a fixed number of workers until it is stopped.
//
// A Pool is used for exactly one call to Run.
type Pool struct {
	workers []*Worker
	global  gsync.Queue[Task]
	pin     bool

	mutex   sync.Mutex
	cond    *sync.Cond
	queued  atomic.Int64
	stopped atomic.Bool

	executed atomic.Int64
	stolen   atomic.Int64

	panicOnce sync.Once
	p         interface{}
}

// New creates a pool with n workers. If pin is true, each worker locks its
// goroutine to an OS thread and pins that thread to a CPU.
//
// New panics if n < 1.
func New(n int, pin bool) *Pool {
	if n < 1 {
		panic("workers: pool size must be positive")
	}
	p := &Pool{pin: pin}
	p.cond = sync.NewCond(&p.mutex)
	p.workers = make([]*Worker, n)
	for i := range p.workers {
		p.workers[i] = &Worker{id: i, pool: p}
	}
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stats reports how many tasks were executed and how many of them were stolen
// from another worker's deque.
func (p *Pool) Stats() (executed, stolen int64) {
	return p.executed.Load(), p.stolen.Load()
}

// Submit pushes task onto the shared queue.
func (p *Pool) Submit(task Task) {
	p.queued.Inc()
	p.global.Push(task)
	p.wakeOne()
}

// Stop makes all workers exit as soon as they finish their current task.
// Pending tasks are dropped. Stop may be called more than once and from any
// goroutine.
func (p *Pool) Stop() {
	if p.stopped.CompareAndSwap(false, true) {
		p.mutex.Lock()
		p.cond.Broadcast()
		p.mutex.Unlock()
	}
}

// Run submits root, starts the workers, and returns when all workers have
// exited after a call to Stop.
//
// If a task panics, the worker recovers the panic and stops the pool, and Run
// eventually panics with the first recovered panic value.
func (p *Pool) Run(root Task) {
	p.Submit(root)
	var wg sync.WaitGroup
	wg.Add(len(p.workers))
	for _, w := range p.workers {
		go func(w *Worker) {
			defer wg.Done()
			p.work(w)
		}(w)
	}
	wg.Wait()
	if p.p != nil {
		panic(p.p)
	}
}

func (p *Pool) wakeOne() {
	p.mutex.Lock()
	p.cond.Signal()
	p.mutex.Unlock()
}

func (p *Pool) work(w *Worker) {
	if p.pin {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		if err := affinity.Pin(w.id); err != nil {
			jww.WARN.Printf("workers: worker %d runs unpinned: %v", w.id, err)
		}
	}
	for !p.stopped.Load() {
		if task, ok := p.next(w); ok {
			p.queued.Dec()
			p.execute(w, task)
			continue
		}
		if p.queued.Load() > 0 {
			// A task is being pushed or was just taken by another worker.
			runtime.Gosched()
			continue
		}
		p.mutex.Lock()
		for p.queued.Load() == 0 && !p.stopped.Load() {
			p.cond.Wait()
		}
		p.mutex.Unlock()
	}
}

func (p *Pool) next(w *Worker) (Task, bool) {
	if task, ok := w.local.popBack(); ok {
		return task, true
	}
	if task, ok := p.global.Pop(); ok {
		return task, true
	}
	n := len(p.workers)
	for i := 1; i < n; i++ {
		victim := p.workers[(w.id+i)%n]
		if task, ok := victim.local.popFront(); ok {
			p.stolen.Inc()
			return task, true
		}
	}
	return nil, false
}

func (p *Pool) execute(w *Worker, task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.panicOnce.Do(func() {
				p.p = internal.WrapPanic(r)
			})
			p.Stop()
		}
	}()
	p.executed.Inc()
	task(w)
}
