// Package feed connects to live status feeds.
package feed

import (
	"context"
	"errors"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
)

var (
	// ErrProtocol is a transient transport or protocol failure; the caller reconnects
	ErrProtocol = errors.New("feed protocol error")

	// ErrIdleTimeout means nothing arrived within the idle timeout; the stream is still usable
	ErrIdleTimeout = errors.New("feed idle timeout")

	// ErrUnauthorized means the feed rejected the credentials
	ErrUnauthorized = errors.New("feed unauthorized")
)

// Source opens streams of statuses
//
//go:generate mockgen -source=feed.go -destination=../mocks/feed.go -package=mocks -mock_names=Source=MockFeedSource,Stream=MockFeedStream
type Source interface {
	// Connect opens a new stream
	Connect(ctx context.Context) (Stream, error)
}

// Stream is one open feed connection
type Stream interface {
	// Next blocks until the next status arrives.
	// It fails with ErrIdleTimeout when the feed stays silent for the idle timeout,
	// and with ErrProtocol when the connection is broken.
	Next(ctx context.Context) (*domain.Status, error)

	// Close releases the connection. It is safe to call more than once.
	Close() error
}
