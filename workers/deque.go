package workers

import "sync"

// deque holds the pending tasks of one worker. The owner pushes and pops at
// the back, thieves take from the front, so the owner sees its most recently
// split (smallest, leftmost-pending) work first while thieves take the oldest
// and largest pieces.
type deque struct {
	mutex sync.Mutex
	head  int
	tasks []Task
}

func (d *deque) pushBack(task Task) {
	d.mutex.Lock()
	d.tasks = append(d.tasks, task)
	d.mutex.Unlock()
}

func (d *deque) popBack() (task Task, ok bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	last := len(d.tasks) - 1
	if last < d.head {
		return nil, false
	}
	task = d.tasks[last]
	d.tasks[last] = nil
	d.tasks = d.tasks[:last]
	d.compact()
	return task, true
}

func (d *deque) popFront() (task Task, ok bool) {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.head >= len(d.tasks) {
		return nil, false
	}
	task = d.tasks[d.head]
	d.tasks[d.head] = nil
	d.head++
	d.compact()
	return task, true
}

// compact drops the consumed prefix once the deque runs empty.
func (d *deque) compact() {
	if d.head == len(d.tasks) {
		d.head = 0
		d.tasks = d.tasks[:0]
	}
}
