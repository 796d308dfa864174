// Package queue carries scheduled games from the season planner to the
// simulation workers.
package queue

import (
	"context"
	"sync"

	"github.com/okian/gridiron/internal/domain/model"
	"github.com/okian/gridiron/internal/domain/ruleset"
	"github.com/okian/gridiron/pkg/metrics"
)

const defaultQueueCapacity = 64

// GameJob is one scheduled game. Index is the game's position in the
// schedule and is what results are merged by.
type GameJob struct {
	Index   int
	Week    int
	Home    model.Team
	Away    model.Team
	Seed    uint64
	Options []ruleset.Option
}

// Queue hands jobs to workers.
type Queue interface {
	// Enqueue blocks until the job is queued, ctx is done or the queue is
	// closed.
	Enqueue(ctx context.Context, j GameJob) error

	// TryEnqueue queues the job only if there is room.
	TryEnqueue(j GameJob) error

	// Dequeue returns a channel of jobs. It is closed when the queue is
	// closed and drained, or when ctx is done.
	Dequeue(ctx context.Context) <-chan GameJob

	Len() int
	Close() error
	IsClosed() bool
}

// InMemoryQueue implements Queue with a buffered channel.
type InMemoryQueue struct {
	jobs     chan GameJob
	capacity int

	// done is closed before jobs so blocked producers can give up; the
	// lock keeps close(jobs) from racing a send.
	done     chan struct{}
	doneOnce sync.Once
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity, done: make(chan struct{})}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan GameJob, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a job, waiting for room.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j GameJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrQueueClosed
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	case <-q.done:
		metrics.RecordQueueEnqueueError()
		return ErrQueueClosed
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return ctx.Err()
	}
}

// TryEnqueue adds a job only if the queue has room.
func (q *InMemoryQueue) TryEnqueue(j GameJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		return ErrQueueClosed
	}
	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrQueueFull
	}
}

// Dequeue returns a channel that receives jobs as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan GameJob {
	out := make(chan GameJob)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case j, ok := <-q.jobs:
				if !ok {
					return
				}
				select {
				case out <- j:
					metrics.RecordQueueDequeue()
					metrics.UpdateQueueSize(len(q.jobs))
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len returns the number of queued jobs.
func (q *InMemoryQueue) Len() int {
	return len(q.jobs)
}

// Close stops accepting jobs. Jobs already queued are still delivered.
func (q *InMemoryQueue) Close() error {
	q.mu.RLock()
	if q.closed {
		q.mu.RUnlock()
		return nil
	}
	q.mu.RUnlock()

	q.doneOnce.Do(func() { close(q.done) })
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		close(q.jobs)
		q.closed = true
	}
	return nil
}

// IsClosed reports whether Close has been called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
