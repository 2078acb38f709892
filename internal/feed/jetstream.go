package feed

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/twitter"
)

// JetStreamConfig holds the settings of the NATS JetStream source
type JetStreamConfig struct {
	URL            string
	StreamName     string
	ConsumerName   string
	Subject        string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWait        time.Duration
	IdleTimeout    time.Duration
}

type jetStreamSource struct {
	config JetStreamConfig
	natsJS adapter.NatsJetStream
	clock  adapter.Clock
}

// NewJetStreamSource creates a source reading raw status payloads from a durable JetStream consumer
func NewJetStreamSource(cfg JetStreamConfig, natsJS adapter.NatsJetStream, clock adapter.Clock) Source {
	return &jetStreamSource{config: cfg, natsJS: natsJS, clock: clock}
}

// Connect dials NATS and starts consuming
func (s *jetStreamSource) Connect(ctx context.Context) (Stream, error) {
	opts := []nats.Option{
		nats.Name(s.config.ConnectionName),
		nats.MaxReconnects(s.config.MaxReconnects),
		nats.ReconnectWait(s.config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("Disconnected from NATS", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
	}

	nc, js, err := s.natsJS.Connect(s.config.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to NATS: %w", ErrProtocol, err)
	}

	consumer, err := js.CreateOrUpdateConsumer(ctx, s.config.StreamName, jetstream.ConsumerConfig{
		Durable:       s.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       s.config.AckWait,
		FilterSubject: s.config.Subject,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("%w: failed to create/update consumer: %w", ErrProtocol, err)
	}

	stream := &jetStreamStream{
		nc:    nc,
		idle:  s.config.IdleTimeout,
		clock: s.clock,
		msgs:  make(chan adapter.Message, 100),
		done:  make(chan struct{}),
	}

	cc, err := consumer.Consume(func(msg adapter.Message) {
		select {
		case stream.msgs <- msg:
		case <-stream.done:
		}
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("%w: failed to start consuming: %w", ErrProtocol, err)
	}
	stream.cc = cc

	logger.InfoCtx(ctx, "Consuming statuses from NATS",
		zap.String("url", nc.ConnectedUrl()),
		zap.String("stream", s.config.StreamName),
		zap.String("consumer", s.config.ConsumerName))

	return stream, nil
}

type jetStreamStream struct {
	nc    adapter.NatsConn
	cc    adapter.ConsumeContext
	idle  time.Duration
	clock adapter.Clock

	msgs chan adapter.Message
	done chan struct{}
	once sync.Once
}

// Next returns the next status. Messages are acknowledged once handed out;
// undecodable ones are terminated so they are not redelivered.
func (s *jetStreamStream) Next(ctx context.Context) (*domain.Status, error) {
	for {
		var timeout <-chan time.Time
		if s.idle > 0 {
			timeout = s.clock.After(s.idle)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timeout:
			return nil, ErrIdleTimeout
		case <-s.cc.Closed():
			return nil, fmt.Errorf("%w: consumer closed: %v", ErrProtocol, s.nc.LastError())
		case msg := <-s.msgs:
			status, err := twitter.DecodeStatus(msg.Data())
			if err != nil {
				logger.WarnCtx(ctx, "Terminating undecodable message", zap.String("subject", msg.Subject()), zap.Error(err))
				if err := msg.Term(); err != nil {
					logger.WarnCtx(ctx, "Failed to terminate message", zap.Error(err))
				}
				continue
			}

			if err := msg.Ack(); err != nil {
				logger.WarnCtx(ctx, "Failed to acknowledge message", zap.String("subject", msg.Subject()), zap.Error(err))
			}
			if status == nil {
				continue
			}

			return status, nil
		}
	}
}

// Close stops consuming and closes the NATS connection
func (s *jetStreamStream) Close() error {
	s.once.Do(func() {
		close(s.done)
		s.cc.Stop()
		s.nc.Close()
	})
	return nil
}
