package parallel

import "sync"

// Queue is a FIFO of jobs that workers pull from.
//
// The same mutex that guards the queue also serializes writes into the
// shared output buffer (see Locked), so pixel computation runs in parallel
// while buffer mutation stays single-writer.
//
// Thread safety: Queue is safe for concurrent use.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
	head  int
}

// NewQueue creates a queue holding jobs in the given order.
func NewQueue[T any](jobs ...T) *Queue[T] {
	q := &Queue[T]{items: make([]T, 0, len(jobs))}
	q.items = append(q.items, jobs...)
	return q
}

// Pop removes the oldest job. The second result is false when the queue
// is exhausted.
func (q *Queue[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	job := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	return job, true
}

// Len returns the number of jobs not yet pulled.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

// Drain discards every pending job and returns how many were dropped.
func (q *Queue[T]) Drain() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items) - q.head
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return n
}

// Locked runs fn while holding the queue lock.
func (q *Queue[T]) Locked(fn func()) {
	q.mu.Lock()
	defer q.mu.Unlock()
	fn()
}
