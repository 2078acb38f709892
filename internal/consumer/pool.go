package consumer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/persister"
	"github.com/feral-file/ff-tweet-indexer/internal/queue"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
)

// PersisterFactory builds the persister of one worker on top of its dedicated connection
type PersisterFactory func(conn store.Store) (persister.Persister, error)

// Config holds the pool settings
type Config struct {
	Consumers    int
	CaptureMedia bool
	LogInterval  time.Duration
}

// Pool runs a fixed number of workers, each pinned to its own store connection
type Pool struct {
	config  Config
	store   store.Store
	queue   *queue.Queue
	filter  domain.LanguageFilter
	factory PersisterFactory
	clock   adapter.Clock
	totals  *Totals
}

// NewPool creates a consumer pool
func NewPool(cfg Config, st store.Store, q *queue.Queue, filter domain.LanguageFilter, factory PersisterFactory, clock adapter.Clock) *Pool {
	return &Pool{
		config:  cfg,
		store:   st,
		queue:   q,
		filter:  filter,
		factory: factory,
		clock:   clock,
		totals:  &Totals{},
	}
}

// Totals returns the lifetime counts of the pool
func (p *Pool) Totals() TotalsSnapshot {
	return p.totals.Snapshot()
}

// Run starts the workers and blocks until all of them stop.
// Workers stop taking new items when ctx is cancelled and finish the item in hand.
func (p *Pool) Run(ctx context.Context) error {
	if p.config.Consumers <= 0 {
		return fmt.Errorf("consumers must be positive, got %d", p.config.Consumers)
	}

	workers := pond.NewPool(p.config.Consumers)
	defer workers.StopAndWait()

	logger.InfoCtx(ctx, "Starting consumer pool", zap.Int("consumers", p.config.Consumers))

	tasks := make([]pond.Task, 0, p.config.Consumers)
	for id := 1; id <= p.config.Consumers; id++ {
		tasks = append(tasks, workers.SubmitErr(func() error {
			return p.runWorker(ctx, id)
		}))
	}

	var errs []error
	for _, task := range tasks {
		if err := task.Wait(); err != nil {
			errs = append(errs, err)
		}
	}

	logger.InfoCtx(ctx, "Consumer pool stopped",
		zap.Uint64("completed", workers.CompletedTasks()),
		zap.Uint64("failed", workers.FailedTasks()))

	return errors.Join(errs...)
}

func (p *Pool) runWorker(ctx context.Context, id int) error {
	// the connection is held for the whole life of the worker
	return p.store.Connection(context.WithoutCancel(ctx), func(conn store.Store) error {
		pers, err := p.factory(conn)
		if err != nil {
			return fmt.Errorf("failed to create persister for worker %d: %w", id, err)
		}

		worker := NewWorker(id, p.queue, pers, p.filter, persister.Options{CaptureMedia: p.config.CaptureMedia},
			p.clock, p.config.LogInterval, p.totals)
		return worker.Run(ctx)
	})
}
