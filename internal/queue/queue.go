// Package queue is the bounded buffer between the stream producer and the consumers.
package queue

import (
	"context"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
)

// Queue is a bounded blocking FIFO of statuses.
// Enqueue blocks while the queue is full; items are never dropped.
type Queue struct {
	items chan *domain.Status
}

// New creates a queue holding at most capacity statuses
func New(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{items: make(chan *domain.Status, capacity)}
}

// Enqueue appends a status, blocking until there is room or ctx is done
func (q *Queue) Enqueue(ctx context.Context, status *domain.Status) error {
	select {
	case q.items <- status:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Dequeue removes the oldest status, blocking until one is available or ctx is done
func (q *Queue) Dequeue(ctx context.Context) (*domain.Status, error) {
	// Prefer ctx so a stopping consumer does not pull a new item
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case status := <-q.items:
		return status, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of buffered statuses
func (q *Queue) Len() int {
	return len(q.items)
}

// Cap returns the capacity of the queue
func (q *Queue) Cap() int {
	return cap(q.items)
}
