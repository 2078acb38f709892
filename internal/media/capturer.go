// Package media captures the attachments of a tweet for storage.
package media

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/metrics"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
)

const (
	StorageBlob = "blob"
	StorageFile = "file"
)

// Config holds the capture settings
type Config struct {
	Storage           string
	Path              string
	RequestsPerSecond float64
	Burst             int
	MaxSize           int64
}

// Capturer fetches and stores the media of one tweet
//
//go:generate mockgen -source=capturer.go -destination=../mocks/media_capturer.go -package=mocks -mock_names=Capturer=MockMediaCapturer
type Capturer interface {
	// Capture returns one row per media entity that could be fetched and stored.
	// Failures are logged and skipped so they never fail the tweet.
	Capture(ctx context.Context, tweetID int64, entities []domain.MediaEntity) []schema.Media
}

type capturer struct {
	fetcher Fetcher
	storage Storage
}

// NewCapturer creates a capturer for the configured storage mode
func NewCapturer(cfg Config, client adapter.HTTPClient, fs adapter.FileSystem) (Capturer, error) {
	var storage Storage
	switch cfg.Storage {
	case StorageBlob, "":
		storage = NewBlobStorage()
	case StorageFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("media path is required for file storage")
		}
		storage = NewFileStorage(fs, cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported media storage %q", cfg.Storage)
	}

	return NewCapturerWith(NewFetcher(client, cfg.RequestsPerSecond, cfg.Burst, cfg.MaxSize), storage), nil
}

// NewCapturerWith creates a capturer from explicit parts
func NewCapturerWith(fetcher Fetcher, storage Storage) Capturer {
	return &capturer{fetcher: fetcher, storage: storage}
}

// Capture fetches and stores every media entity, skipping the ones that fail
func (c *capturer) Capture(ctx context.Context, tweetID int64, entities []domain.MediaEntity) []schema.Media {
	rows := make([]schema.Media, 0, len(entities))
	for index, entity := range entities {
		row, err := c.captureOne(ctx, tweetID, index, entity)
		if err != nil {
			metrics.MediaFetchFailures.Inc()
			logger.WarnCtx(ctx, "Skipping media",
				zap.Int64("tweet_id", tweetID),
				zap.Int("media_index", index),
				zap.String("url", entity.URL),
				zap.Error(err))
			continue
		}
		rows = append(rows, *row)
	}

	return rows
}

func (c *capturer) captureOne(ctx context.Context, tweetID int64, index int, entity domain.MediaEntity) (*schema.Media, error) {
	if entity.URL == "" {
		return nil, fmt.Errorf("media entity has no url")
	}

	fetched, err := c.fetcher.Fetch(ctx, entity.URL)
	if err != nil {
		return nil, err
	}

	return c.storage.Store(tweetID, index, fetched)
}
