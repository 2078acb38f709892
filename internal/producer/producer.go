// Package producer pulls statuses from a live feed into the ingestion queue.
package producer

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/feed"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/metrics"
	"github.com/feral-file/ff-tweet-indexer/internal/queue"
	"github.com/feral-file/ff-tweet-indexer/internal/throughput"
)

// Reporter counters of the producer
const (
	CounterTotal    = "total"
	CounterAccepted = "accepted"
)

// State is the connection state of the producer
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateStreaming
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// Config holds the producer settings
type Config struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	LogInterval    time.Duration
}

// Counts are the lifetime status counts of the producer
type Counts struct {
	Total    int64 `json:"total"`
	Accepted int64 `json:"accepted"`
}

// Producer owns the feed connection and feeds accepted statuses into the queue
type Producer struct {
	config Config
	source feed.Source
	queue  *queue.Queue
	filter domain.LanguageFilter
	clock  adapter.Clock

	state    atomic.Int32
	total    atomic.Int64
	accepted atomic.Int64
	reporter *throughput.Reporter
}

// New creates a producer
func New(cfg Config, source feed.Source, q *queue.Queue, filter domain.LanguageFilter, clock adapter.Clock) *Producer {
	return &Producer{
		config: cfg,
		source: source,
		queue:  q,
		filter: filter,
		clock:  clock,
		reporter: throughput.NewReporter("producer", cfg.LogInterval, clock, logger.Component("producer"),
			CounterTotal, CounterAccepted).WithQueueDepth(q.Len),
	}
}

// State returns the current connection state
func (p *Producer) State() State {
	return State(p.state.Load())
}

// Counts returns the lifetime status counts
func (p *Producer) Counts() Counts {
	return Counts{Total: p.total.Load(), Accepted: p.accepted.Load()}
}

func (p *Producer) setState(s State) {
	p.state.Store(int32(s))
}

// Run connects and streams until ctx is cancelled, reconnecting with backoff
// after every failure. It only returns on shutdown.
func (p *Producer) Run(ctx context.Context) error {
	defer p.setState(StateDisconnected)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.config.InitialBackoff
	b.MaxInterval = p.config.MaxBackoff
	b.MaxElapsedTime = 0
	b.Reset()

	for {
		if ctx.Err() != nil {
			return nil
		}

		p.setState(StateConnecting)
		session := ulid.Make().String()
		log := []zap.Field{zap.String("session", session)}

		stream, err := p.source.Connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logFeedError(ctx, "Failed to connect to feed", err, log...)
		} else {
			p.setState(StateStreaming)
			logger.InfoCtx(ctx, "Connected to feed", log...)

			received, err := p.consume(ctx, stream)
			if closeErr := stream.Close(); closeErr != nil {
				logger.WarnCtx(ctx, "Failed to close feed stream", append(log, zap.Error(closeErr))...)
			}
			if ctx.Err() != nil {
				logger.InfoCtx(ctx, "Feed stream closed for shutdown", log...)
				return nil
			}

			// a session that delivered statuses was healthy, start over with short waits
			if received > 0 {
				b.Reset()
			}
			p.logFeedError(ctx, "Feed stream broken", err, append(log, zap.Int64("received", received))...)
		}

		p.setState(StateConnecting)
		wait := b.NextBackOff()
		logger.InfoCtx(ctx, "Reconnecting to feed", append(log, zap.Duration("backoff", wait))...)
		select {
		case <-ctx.Done():
			return nil
		case <-p.clock.After(wait):
		}
		metrics.FeedReconnects.Inc()
	}
}

// consume moves statuses from stream to the queue until the stream fails or ctx is done
func (p *Producer) consume(ctx context.Context, stream feed.Stream) (int64, error) {
	var received int64
	for {
		status, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, feed.ErrIdleTimeout) {
				logger.WarnCtx(ctx, "Feed idle, still waiting")
				p.reporter.Observe()
				continue
			}
			return received, err
		}

		received++
		p.total.Add(1)
		p.reporter.Inc(CounterTotal)

		if !p.filter.Allows(status.Lang) {
			metrics.Statuses.WithLabelValues(metrics.StatusFiltered).Inc()
			p.reporter.Observe()
			continue
		}

		if err := p.queue.Enqueue(ctx, status); err != nil {
			return received, err
		}
		p.accepted.Add(1)
		p.reporter.Inc(CounterAccepted)
		metrics.Statuses.WithLabelValues(metrics.StatusAccepted).Inc()
		metrics.QueueDepth.Set(float64(p.queue.Len()))
		p.reporter.Observe()
	}
}

// logFeedError logs credential failures as errors and everything else as warnings;
// both are retried
func (p *Producer) logFeedError(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if errors.Is(err, feed.ErrUnauthorized) {
		logger.ErrorCtx(ctx, err, append(fields, zap.String("message", msg))...)
		return
	}
	logger.WarnCtx(ctx, msg, append(fields, zap.Error(err))...)
}
