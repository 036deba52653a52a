package gsync

import (
	"sync"

	"github.com/eapache/queue"
)

// Queue is a type-safe FIFO queue that is safe for concurrent use. The zero
// value is an empty queue.
type Queue[T any] struct {
	mutex sync.Mutex
	q     *queue.Queue
}

// Push appends value at the back of the queue.
func (q *Queue[T]) Push(value T) {
	q.mutex.Lock()
	if q.q == nil {
		q.q = queue.New()
	}
	q.q.Add(value)
	q.mutex.Unlock()
}

// Pop removes and returns the value at the front of the queue. The second
// return value is false if the queue was empty.
func (q *Queue[T]) Pop() (value T, ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.q == nil || q.q.Length() == 0 {
		return
	}
	return q.q.Remove().(T), true
}

// Len returns the number of queued values.
func (q *Queue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	if q.q == nil {
		return 0
	}
	return q.q.Length()
}
