package queue

import (
	"sync"

	"github.com/gammazero/deque"
)

// Queue is an unbounded multi-producer/multi-consumer FIFO. Push never
// blocks; Pop blocks until an element is available. Every pushed element is
// delivered to exactly one consumer.
type Queue[T any] struct {
	mu    sync.Mutex
	ready *sync.Cond
	buf   deque.Deque[T]
}

func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.ready = sync.NewCond(&q.mu)
	return q
}

func (q *Queue[T]) Push(v T) {
	q.mu.Lock()
	q.buf.PushBack(v)
	q.mu.Unlock()
	q.ready.Signal()
}

func (q *Queue[T]) Pop() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.buf.Len() == 0 {
		q.ready.Wait()
	}
	return q.buf.PopFront()
}

func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.buf.Len()
}
