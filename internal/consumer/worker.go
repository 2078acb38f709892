// Package consumer drains the ingestion queue into the store.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/metrics"
	"github.com/feral-file/ff-tweet-indexer/internal/persister"
	"github.com/feral-file/ff-tweet-indexer/internal/queue"
	"github.com/feral-file/ff-tweet-indexer/internal/throughput"
)

// Reporter counters of a worker
const (
	CounterAccepted  = "accepted"
	CounterDuplicate = "duplicate"
	CounterDropped   = "dropped"
	CounterFailed    = "failed"
)

// Outcome is how a worker handled one queue item
type Outcome string

const (
	OutcomeCreated   Outcome = metrics.ResultCreated
	OutcomeDuplicate Outcome = metrics.ResultDuplicate
	OutcomeDropped   Outcome = metrics.ResultDropped
	OutcomeFailed    Outcome = metrics.ResultFailed
)

// Worker persists queue items through its own persister
type Worker struct {
	id        int
	queue     *queue.Queue
	persister persister.Persister
	filter    domain.LanguageFilter
	opts      persister.Options
	clock     adapter.Clock
	reporter  *throughput.Reporter
	totals    *Totals
}

// NewWorker creates a worker. The persister must be bound to a connection no other worker uses.
func NewWorker(id int, q *queue.Queue, p persister.Persister, filter domain.LanguageFilter, opts persister.Options,
	clock adapter.Clock, logInterval time.Duration, totals *Totals) *Worker {
	reporter := throughput.NewReporter(
		fmt.Sprintf("consumer-%d", id), logInterval, clock, logger.Component("consumer", zap.Int("worker", id)),
		CounterAccepted, CounterDuplicate, CounterDropped, CounterFailed,
	).WithQueueDepth(q.Len)

	if totals == nil {
		totals = &Totals{}
	}

	return &Worker{
		id:        id,
		queue:     q,
		persister: p,
		filter:    filter,
		opts:      opts,
		clock:     clock,
		reporter:  reporter,
		totals:    totals,
	}
}

// Run handles items until ctx is cancelled. An item already dequeued is always
// processed to completion; cancellation only stops the next dequeue.
func (w *Worker) Run(ctx context.Context) error {
	logger.InfoCtx(ctx, "Consumer started", zap.Int("worker", w.id))

	for {
		status, err := w.queue.Dequeue(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				logger.InfoCtx(ctx, "Consumer stopped", zap.Int("worker", w.id))
				return nil
			}
			return err
		}
		metrics.QueueDepth.Set(float64(w.queue.Len()))

		w.Handle(context.WithoutCancel(ctx), status)
		w.reporter.Observe()
	}
}

// Handle persists one status and records the outcome
func (w *Worker) Handle(ctx context.Context, status *domain.Status) Outcome {
	outcome := w.handle(ctx, status)

	switch outcome {
	case OutcomeCreated:
		w.reporter.Inc(CounterAccepted)
	case OutcomeDuplicate:
		w.reporter.Inc(CounterDuplicate)
	case OutcomeDropped:
		w.reporter.Inc(CounterDropped)
	case OutcomeFailed:
		w.reporter.Inc(CounterFailed)
	}
	w.totals.record(outcome)
	metrics.Consumed.WithLabelValues(string(outcome)).Inc()

	return outcome
}

func (w *Worker) handle(ctx context.Context, status *domain.Status) Outcome {
	if !w.filter.Allows(status.Lang) {
		return OutcomeDropped
	}

	start := w.clock.Now()
	defer metrics.ObservePersistDuration(start)

	if _, err := w.persister.UpsertUser(ctx, status.Author); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to store author of tweet %d: %w", status.ID, err),
			zap.Int("worker", w.id),
			zap.Int64("user_id", status.Author.ID))
		return OutcomeFailed
	}

	result, err := w.persister.UpsertTweet(ctx, status, w.opts)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			logger.DebugCtx(ctx, "Duplicate tweet suppressed", zap.Int("worker", w.id), zap.Int64("tweet_id", status.ID))
			return OutcomeDuplicate
		}
		logger.ErrorCtx(ctx, fmt.Errorf("failed to store tweet %d: %w", status.ID, err), zap.Int("worker", w.id))
		return OutcomeFailed
	}
	if !result.Created {
		return OutcomeDuplicate
	}

	return OutcomeCreated
}
