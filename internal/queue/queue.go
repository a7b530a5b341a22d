// Package queue buffers rows between the match workers and a storage writer.
package queue

import (
	"errors"
	"sync"
)

// ErrClosed is returned by Push once the queue has been closed.
var ErrClosed = errors.New("queue closed")

// Queue is a goroutine-safe FIFO with a wake-up channel for its single consumer.
type Queue[T any] struct {
	mu     sync.Mutex
	items  []T
	ready  chan struct{}
	closed bool
}

// New creates a new empty queue.
func New[T any]() *Queue[T] {
	return &Queue[T]{
		ready: make(chan struct{}, 1),
	}
}

// Push appends items and wakes the consumer.
func (q *Queue[T]) Push(items ...T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	if len(items) == 0 {
		return nil
	}
	q.items = append(q.items, items...)
	select {
	case q.ready <- struct{}{}:
	default:
	}
	return nil
}

// Drain returns everything queued so far, oldest first, and empties the queue.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	result := q.items
	q.items = nil
	return result
}

// Len returns the number of items in the queue.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Ready signals that items may be waiting. It is closed by Close, after which the
// consumer should drain one last time and stop.
func (q *Queue[T]) Ready() <-chan struct{} {
	return q.ready
}

// Close rejects further pushes. Items already queued can still be drained.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		q.closed = true
		close(q.ready)
	}
}
