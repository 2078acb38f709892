// Package timeline imports the timeline of a single user through the REST API.
package timeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/persister"
	"github.com/feral-file/ff-tweet-indexer/internal/twitter"
)

// DefaultPageSize is the largest page the user_timeline endpoint serves
const DefaultPageSize = 200

// Config holds the importer settings
type Config struct {
	PageSize     int
	CaptureMedia bool
}

// Result summarizes one import
type Result struct {
	UserCreated bool
	Pages       int
	Created     int
	Updated     int
}

// Importer stores a user and every status of their timeline
type Importer struct {
	config    Config
	client    twitter.Client
	persister persister.Persister
}

// NewImporter creates an importer
func NewImporter(cfg Config, client twitter.Client, p persister.Persister) *Importer {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	return &Importer{config: cfg, client: client, persister: p}
}

// Import walks the timeline of userID from the newest status backwards until an
// empty page. The language allow-list does not apply to an explicit import.
func (i *Importer) Import(ctx context.Context, userID int64) (*Result, error) {
	author, err := i.client.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	userResult, err := i.persister.UpsertUser(ctx, *author)
	if err != nil {
		return nil, fmt.Errorf("failed to store user %d: %w", userID, err)
	}
	result := &Result{UserCreated: userResult.Created}

	logger.InfoCtx(ctx, "Importing timeline", zap.Int64("user_id", userID), zap.String("screen_name", author.ScreenName))

	opts := persister.Options{CaptureMedia: i.config.CaptureMedia}
	var maxID int64
	for {
		page, err := i.client.GetUserTimeline(ctx, userID, maxID, i.config.PageSize)
		if err != nil {
			return result, err
		}
		if len(page) == 0 {
			break
		}
		result.Pages++

		for _, status := range page {
			stored, err := i.persister.UpsertTweet(ctx, status, opts)
			if err != nil {
				return result, fmt.Errorf("failed to store tweet %d: %w", status.ID, err)
			}
			if stored.Created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		logger.InfoCtx(ctx, "Imported timeline page",
			zap.Int64("user_id", userID),
			zap.Int("page", result.Pages),
			zap.Int("statuses", len(page)),
			zap.Int64("oldest_id", page[len(page)-1].ID))

		maxID = page[len(page)-1].ID - 1
		if maxID <= 0 {
			break
		}
	}

	return result, nil
}
