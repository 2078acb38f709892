package media

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
)

// Fetched is a downloaded media payload
type Fetched struct {
	URL      string
	Data     []byte
	MimeType string
	// Extension includes the leading dot; taken from the URL, else from the sniffed type
	Extension string
}

// Fetcher downloads media bytes
//
//go:generate mockgen -source=fetcher.go -destination=../mocks/media_fetcher.go -package=mocks -mock_names=Fetcher=MockMediaFetcher
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*Fetched, error)
}

type httpFetcher struct {
	client  adapter.HTTPClient
	limiter *rate.Limiter
	maxSize int64
}

// NewFetcher creates a fetcher paced by a token bucket shared by all callers
func NewFetcher(client adapter.HTTPClient, requestsPerSecond float64, burst int, maxSize int64) Fetcher {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}

	return &httpFetcher{
		client:  client,
		limiter: rate.NewLimiter(limit, burst),
		maxSize: maxSize,
	}
}

// Fetch downloads rawURL and sniffs its content type
func (f *httpFetcher) Fetch(ctx context.Context, rawURL string) (*Fetched, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}

	data, err := f.client.GetBytes(ctx, rawURL, f.maxSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch media: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("failed to fetch media: empty body from %s", rawURL)
	}

	mtype := mimetype.Detect(data)
	ext := urlExtension(rawURL)
	if ext == "" {
		ext = mtype.Extension()
	}

	return &Fetched{
		URL:       rawURL,
		Data:      data,
		MimeType:  mtype.String(),
		Extension: ext,
	}, nil
}

// NativeFilename returns the last path element of a media URL
func NativeFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return ""
	}
	name := path.Base(u.Path)
	if name == "/" || name == "." {
		return ""
	}
	return name
}

func urlExtension(rawURL string) string {
	return strings.ToLower(path.Ext(NativeFilename(rawURL)))
}
