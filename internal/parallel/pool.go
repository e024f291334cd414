package parallel

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Work renders one job. worker is the index of the calling worker.
// Returning a non-nil error stops the worker that returned it; the error is
// reported by Group.Wait.
type Work[T any] func(ctx context.Context, worker int, job T) error

// Group is a fixed set of workers draining a Queue.
//
// No job is assigned ahead of time: each worker pulls the next job when it
// finishes the previous one and exits when the queue is exhausted or ctx is
// canceled. Cancellation is cooperative; a job already running is expected
// to poll ctx itself.
//
// Thread safety: Group is safe for concurrent use.
type Group[T any] struct {
	// workers is the number of worker goroutines started.
	workers int

	// active counts workers that have not yet returned.
	active atomic.Int32

	// eg is the completion barrier for all workers.
	eg errgroup.Group

	// done is closed once every worker has exited.
	done chan struct{}

	// err is the first error returned by a Work call.
	err error
}

// Workers normalizes a requested worker count: values <= 0 mean GOMAXPROCS,
// and the result never exceeds jobs. Returns 0 when there are no jobs.
func Workers(requested, jobs int) int {
	if jobs <= 0 {
		return 0
	}
	if requested <= 0 {
		requested = runtime.GOMAXPROCS(0)
	}
	return min(requested, jobs)
}

// Start launches Workers(workers, q.Len()) goroutines running fn over q.
// The returned group is already running; use Wait to block until it drains.
func Start[T any](ctx context.Context, q *Queue[T], workers int, fn Work[T]) *Group[T] {
	g := &Group[T]{
		workers: Workers(workers, q.Len()),
		done:    make(chan struct{}),
	}

	g.active.Store(int32(g.workers)) //nolint:gosec // bounded by job count
	for id := range g.workers {
		g.eg.Go(func() error {
			defer g.active.Add(-1)
			return g.worker(ctx, id, q, fn)
		})
	}

	go func() {
		g.err = g.eg.Wait()
		close(g.done)
	}()

	return g
}

// worker is the main loop for each worker goroutine. A canceled context
// drops the jobs still queued.
func (g *Group[T]) worker(ctx context.Context, id int, q *Queue[T], fn Work[T]) error {
	for {
		if ctx.Err() != nil {
			q.Drain()
			return nil
		}
		job, ok := q.Pop()
		if !ok {
			return nil
		}
		if err := fn(ctx, id, job); err != nil {
			return err
		}
	}
}

// Wait blocks until every worker has exited and returns the first error
// reported by a Work call.
func (g *Group[T]) Wait() error {
	<-g.done
	return g.err
}

// Done returns a channel closed when every worker has exited.
func (g *Group[T]) Done() <-chan struct{} {
	return g.done
}

// Workers returns the number of workers started.
func (g *Group[T]) Workers() int {
	return g.workers
}

// Active returns the number of workers still running.
func (g *Group[T]) Active() int {
	return int(g.active.Load())
}
