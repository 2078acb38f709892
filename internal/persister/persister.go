// Package persister writes statuses and their authors with idempotent upsert semantics.
package persister

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/lexicon"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/media"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
	"github.com/feral-file/ff-tweet-indexer/internal/tokenizer"
)

// Options controls optional work done when a tweet is first stored
type Options struct {
	CaptureMedia bool
}

// Result describes the outcome of an upsert
type Result struct {
	// Created is true when the row was inserted, false when an existing row was updated
	Created bool
}

// Persister upserts users and tweets
//
//go:generate mockgen -source=persister.go -destination=../mocks/persister.go -package=mocks -mock_names=Persister=MockPersister
type Persister interface {
	// UpsertUser inserts the author or overwrites its mutable profile fields
	UpsertUser(ctx context.Context, author domain.Author) (*Result, error)

	// UpsertTweet inserts the status with all of its child rows, or, when the
	// tweet is already stored, overwrites only its engagement counters
	UpsertTweet(ctx context.Context, status *domain.Status, opts Options) (*Result, error)
}

type persister struct {
	store    store.Store
	interner lexicon.Interner
	capturer media.Capturer
}

// New creates a persister. capturer may be nil when media capture is disabled.
func New(st store.Store, interner lexicon.Interner, capturer media.Capturer) Persister {
	return &persister{
		store:    st,
		interner: interner,
		capturer: capturer,
	}
}

// UpsertUser inserts the author or overwrites its mutable profile fields.
// Losing an insert race to another worker falls through to the update.
func (p *persister) UpsertUser(ctx context.Context, author domain.Author) (*Result, error) {
	user := userRow(author)

	existing, err := p.store.GetUser(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return p.updateUser(ctx, user)
	}

	if err := p.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			logger.DebugCtx(ctx, "User inserted concurrently, updating instead", zap.Int64("user_id", author.ID))
			return p.updateUser(ctx, user)
		}
		return nil, err
	}

	return &Result{Created: true}, nil
}

func (p *persister) updateUser(ctx context.Context, user *schema.User) (*Result, error) {
	if err := p.store.UpdateUserProfile(ctx, user); err != nil {
		return nil, err
	}
	return &Result{Created: false}, nil
}

// UpsertTweet stores a status. Child rows are derived only when the tweet is
// created; a known tweet only has its counters refreshed.
func (p *persister) UpsertTweet(ctx context.Context, status *domain.Status, opts Options) (*Result, error) {
	existing, err := p.store.GetTweet(ctx, status.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return p.updateTweet(ctx, status)
	}

	input, err := p.buildTweet(ctx, status, opts)
	if err != nil {
		return nil, err
	}

	if err := p.store.CreateTweetWithEntities(ctx, *input); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			logger.DebugCtx(ctx, "Tweet inserted concurrently, updating instead", zap.Int64("tweet_id", status.ID))
			return p.updateTweet(ctx, status)
		}
		return nil, err
	}

	return &Result{Created: true}, nil
}

func (p *persister) updateTweet(ctx context.Context, status *domain.Status) (*Result, error) {
	err := p.store.UpdateTweetCounters(ctx, store.UpdateTweetCountersInput{
		TweetID:       status.ID,
		RetweetCount:  status.RetweetCount,
		FavoriteCount: status.FavoriteCount,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Created: false}, nil
}

// buildTweet resolves lexicon ids and captures media ahead of the tweet transaction
func (p *persister) buildTweet(ctx context.Context, status *domain.Status, opts Options) (*store.CreateTweetInput, error) {
	input := &store.CreateTweetInput{
		Tweet: schema.Tweet{
			TweetID:       status.ID,
			UserID:        status.Author.ID,
			Text:          status.Text,
			Lang:          status.Lang,
			Source:        status.Source,
			TweetedAt:     status.CreatedAt,
			RetweetCount:  status.RetweetCount,
			FavoriteCount: status.FavoriteCount,
		},
		URLs: status.URLs,
	}
	if len(status.Place) > 0 {
		input.Tweet.Place = datatypes.JSON(status.Place)
	}

	hashtags := make([]string, 0, len(status.Hashtags))
	for _, tag := range status.Hashtags {
		if normalized := tokenizer.NormalizeHashtag(tag); normalized != "" {
			hashtags = append(hashtags, normalized)
		}
	}
	hashtagIDs, err := p.interner.InternAll(ctx, domain.LexiconHashtag, hashtags)
	if err != nil {
		return nil, fmt.Errorf("failed to intern hashtags of tweet %d: %w", status.ID, err)
	}
	input.Hashtags = hashtagIDs

	wordIDs, err := p.interner.InternAll(ctx, domain.LexiconWord, tokenizer.Words(status.Text))
	if err != nil {
		return nil, fmt.Errorf("failed to intern words of tweet %d: %w", status.ID, err)
	}
	input.Words = wordIDs

	for _, m := range status.Mentions {
		input.Mentions = append(input.Mentions, schema.Mention{
			SourceUserID: status.Author.ID,
			TargetUserID: m.UserID,
		})
	}

	if status.HasGeo() {
		input.Geotag = &schema.Geotag{
			Latitude:  status.Coordinates.Latitude,
			Longitude: status.Coordinates.Longitude,
		}
	}

	if opts.CaptureMedia && p.capturer != nil && len(status.Media) > 0 {
		input.Media = p.capturer.Capture(ctx, status.ID, status.Media)
	}

	return input, nil
}

func userRow(author domain.Author) *schema.User {
	return &schema.User{
		UserID:           author.ID,
		Username:         author.ScreenName,
		Name:             author.Name,
		Location:         author.Location,
		Description:      author.Description,
		NumFollowers:     author.FollowersCount,
		NumFriends:       author.FriendsCount,
		NumTweets:        author.StatusesCount,
		AccountCreatedAt: author.CreatedAt,
		TimeZone:         author.TimeZone,
		GeoEnabled:       author.GeoEnabled,
		Verified:         author.Verified,
	}
}
