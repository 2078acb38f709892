package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/logger"
)

// ErrBodyTooLarge is returned when a response body exceeds the requested limit
var ErrBodyTooLarge = errors.New("response body too large")

// StatusError is returned for non-OK responses
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d: %s", e.StatusCode, e.Body)
}

// maxErrorBody bounds how much of an error response is kept in StatusError
const maxErrorBody = 512

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// GetJSON performs a GET request and unmarshals the response into result
	GetJSON(ctx context.Context, url string, headers http.Header, result interface{}) error

	// GetBytes performs a GET request and returns at most maxBytes of the body.
	// A larger body fails with ErrBodyTooLarge. maxBytes <= 0 disables the limit.
	GetBytes(ctx context.Context, url string, maxBytes int64) ([]byte, error)

	// Stream opens a long-lived GET request without an overall timeout.
	// The caller is responsible for closing the response body.
	Stream(ctx context.Context, url string, headers http.Header) (*http.Response, error)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client       *http.Client
	streamClient *http.Client
}

// NewHTTPClient creates a new real HTTP client.
// timeout bounds whole requests and, for streams, the wait for response headers.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &RealHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		streamClient: &http.Client{
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout:   timeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   timeout,
				ResponseHeaderTimeout: timeout,
			},
		},
	}
}

// doRequestWithRetry executes an HTTP request with exponential backoff retry for rate limiting
// and server errors. Other non-OK status codes are permanent.
func (c *RealHTTPClient) doRequestWithRetry(ctx context.Context, req *http.Request, maxBytes int64) ([]byte, error) {
	var respBody []byte

	operation := func() error {
		resp, err := c.client.Do(req.Clone(ctx))
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			// Network errors are retryable
			return fmt.Errorf("failed to perform request: %w", err)
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				logger.Warn("Failed to close response body", zap.Error(err), zap.String("url", req.URL.String()))
			}
		}()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
			logger.Warn("Retryable response, retrying with backoff",
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode))
			return newStatusError(resp)
		}

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(newStatusError(resp))
		}

		if maxBytes > 0 && resp.ContentLength > maxBytes {
			return backoff.Permanent(fmt.Errorf("%w: %d bytes", ErrBodyTooLarge, resp.ContentLength))
		}

		reader := io.Reader(resp.Body)
		if maxBytes > 0 {
			reader = io.LimitReader(resp.Body, maxBytes+1)
		}
		respBody, err = io.ReadAll(reader)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to read response body: %w", err))
		}
		if maxBytes > 0 && int64(len(respBody)) > maxBytes {
			return backoff.Permanent(fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxBytes))
		}

		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 2 * time.Second
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = 1 * time.Minute
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		return nil, fmt.Errorf("request failed after retries: %w", err)
	}

	return respBody, nil
}

// GetJSON performs a GET request and unmarshals the response into result
func (c *RealHTTPClient) GetJSON(ctx context.Context, url string, headers http.Header, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	respBody, err := c.doRequestWithRetry(ctx, req, 0)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// GetBytes performs a GET request and returns the response body
func (c *RealHTTPClient) GetBytes(ctx context.Context, url string, maxBytes int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.doRequestWithRetry(ctx, req, maxBytes)
}

// Stream opens a long-lived GET request. Non-OK responses are closed and returned as *StatusError.
func (c *RealHTTPClient) Stream(ctx context.Context, url string, headers http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := newStatusError(resp)
		_ = resp.Body.Close()
		return nil, statusErr
	}

	return resp, nil
}

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
}
