// Package queue carries snapshot save jobs from the match service to the
// save worker.
//
// Enqueue never blocks: a full queue drops the job and the caller moves on.
// A later change of the same match enqueues a newer snapshot anyway.
package queue

import (
	"context"
	"sync"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/metrics"
)

const defaultCapacity = 1024

// Job asks for the snapshot of one match to be persisted.
type Job struct {
	MatchID  string
	Snapshot model.Snapshot
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job; it returns ErrFull or ErrClosed when the job was dropped.
	Enqueue(ctx context.Context, j Job) error
	// Dequeue returns the receive side; it is closed once the queue is closed and drained.
	Dequeue() <-chan Job
	Len() int
	Close() error
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)
	metrics.UpdateSaveQueueSize(0)
	return q
}

// Enqueue adds j to the queue without blocking.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: jobs travel by value
	if err := ctx.Err(); err != nil {
		return err
	}

	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		metrics.RecordSaveDropped()
		return ErrClosed
	}

	select {
	case q.jobs <- j:
		metrics.UpdateSaveQueueSize(len(q.jobs))
		return nil
	default:
		metrics.RecordSaveDropped()
		return ErrFull
	}
}

// Dequeue returns the job channel.
func (q *InMemoryQueue) Dequeue() <-chan Job { return q.jobs }

// Len returns the number of buffered jobs.
func (q *InMemoryQueue) Len() int {
	n := len(q.jobs)
	metrics.UpdateSaveQueueSize(n)
	return n
}

// Close stops accepting jobs. Buffered jobs remain readable.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil
	}
	q.closed = true
	close(q.jobs)
	return nil
}

// IsClosed reports whether Close was called.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
