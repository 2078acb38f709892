package feed

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/twitter"
)

// maxMessageSize bounds one newline delimited message
const maxMessageSize = 1 << 20

// HTTPConfig holds the settings of the HTTP streaming source
type HTTPConfig struct {
	URL         string
	BearerToken string
	IdleTimeout time.Duration
}

type httpSource struct {
	config HTTPConfig
	client adapter.HTTPClient
	clock  adapter.Clock
}

// NewHTTPSource creates a source reading newline delimited statuses from a long-lived HTTP response
func NewHTTPSource(cfg HTTPConfig, client adapter.HTTPClient, clock adapter.Clock) Source {
	return &httpSource{config: cfg, client: client, clock: clock}
}

// Connect opens the streaming request
func (s *httpSource) Connect(ctx context.Context) (Stream, error) {
	headers := http.Header{}
	if s.config.BearerToken != "" {
		headers.Set("Authorization", "Bearer "+s.config.BearerToken)
	}

	resp, err := s.client.Stream(ctx, s.config.URL, headers)
	if err != nil {
		var statusErr *adapter.StatusError
		if errors.As(err, &statusErr) &&
			(statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrProtocol, err)
	}

	return newLineStream(resp.Body, s.config.IdleTimeout, s.clock), nil
}

// lineStream decodes one status per line of body
type lineStream struct {
	body  io.ReadCloser
	idle  time.Duration
	clock adapter.Clock

	lines   chan []byte
	done    chan struct{}
	readErr error
	once    sync.Once
}

func newLineStream(body io.ReadCloser, idle time.Duration, clock adapter.Clock) *lineStream {
	s := &lineStream{
		body:  body,
		idle:  idle,
		clock: clock,
		lines: make(chan []byte),
		done:  make(chan struct{}),
	}
	go s.read()
	return s
}

func (s *lineStream) read() {
	defer close(s.lines)

	scanner := bufio.NewScanner(s.body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)
	for scanner.Scan() {
		line := append([]byte(nil), scanner.Bytes()...)
		select {
		case s.lines <- line:
		case <-s.done:
			return
		}
	}

	s.readErr = scanner.Err()
	if s.readErr == nil {
		s.readErr = io.EOF
	}
}

// Next returns the next status, skipping keep-alive lines and non-status messages
func (s *lineStream) Next(ctx context.Context) (*domain.Status, error) {
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
		case line, ok := <-s.lines:
			if !ok {
				return nil, fmt.Errorf("%w: %w", ErrProtocol, s.readErr)
			}

			line = bytes.TrimSpace(line)
			if len(line) == 0 {
				continue
			}

			status, err := twitter.DecodeStatus(line)
			if err != nil {
				logger.WarnCtx(ctx, "Skipping undecodable feed message", zap.Error(err), zap.Int("size", len(line)))
				continue
			}
			if status == nil {
				continue
			}

			return status, nil
		}
	}
}

// Close stops the reader and closes the response body
func (s *lineStream) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.body.Close()
	})
	return err
}
