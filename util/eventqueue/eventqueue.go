// Package eventqueue implements an unbounded synchronized FIFO queue with
// a single consumer loop. The ledger posts executed-transaction
// notifications into it; observers consume without ever blocking the
// state-transition path.
package eventqueue

import (
	"sync"

	"github.com/gammazero/deque"
)

type Queue[T any] struct {
	mutex  sync.Mutex
	cond   *sync.Cond
	buf    deque.Deque[T]
	closed bool
}

func New[T any]() *Queue[T] {
	ret := &Queue[T]{}
	ret.cond = sync.NewCond(&ret.mutex)
	return ret
}

// Post appends an element. Never blocks
func (q *Queue[T]) Post(elem T) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.closed {
		panic("attempt to post to the closed event queue")
	}
	q.buf.PushBack(elem)
	q.cond.Signal()
}

// Close stops the queue. Consume drains buffered elements and returns
func (q *Queue[T]) Close() {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	q.closed = true
	q.cond.Broadcast()
}

// Consume runs fun on each element in posting order until the queue is
// closed and drained. Intended to be run on the consumer's goroutine
func (q *Queue[T]) Consume(fun func(elem T)) {
	for {
		elem, ok := q.pop()
		if !ok {
			return
		}
		fun(elem)
	}
}

func (q *Queue[T]) pop() (T, bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	for q.buf.Len() == 0 {
		if q.closed {
			var nilT T
			return nilT, false
		}
		q.cond.Wait()
	}
	return q.buf.PopFront(), true
}

// Len returns the number of buffered elements. Non-deterministic
func (q *Queue[T]) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	return q.buf.Len()
}
