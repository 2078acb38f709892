package store

import (
	"context"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
)

// LexiconStore defines the lexicon operations the interner is built on
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore,LexiconStore=MockLexiconStore
type LexiconStore interface {
	// FindLexiconID looks up text in a lexicon; found is false when absent
	FindLexiconID(ctx context.Context, lexicon domain.Lexicon, text string) (id int64, found bool, err error)
	// CreateLexiconEntry inserts text into a lexicon without conflict handling.
	// A concurrent insert of the same text fails with domain.ErrDuplicateKey.
	CreateLexiconEntry(ctx context.Context, lexicon domain.Lexicon, text string) (int64, error)
}

// Store defines the interface for database operations
type Store interface {
	LexiconStore

	// Connection runs fn with a store pinned to a single dedicated connection
	Connection(ctx context.Context, fn func(Store) error) error

	// GetUser retrieves a user by platform id; nil when absent
	GetUser(ctx context.Context, userID int64) (*schema.User, error)
	// CreateUser inserts a new user; fails with domain.ErrDuplicateKey if the id exists
	CreateUser(ctx context.Context, user *schema.User) error
	// UpdateUserProfile overwrites the mutable profile fields of an existing user
	UpdateUserProfile(ctx context.Context, user *schema.User) error

	// GetTweet retrieves a tweet by platform id; nil when absent
	GetTweet(ctx context.Context, tweetID int64) (*schema.Tweet, error)
	// CreateTweetWithEntities inserts a tweet and all of its child rows in one transaction.
	// Fails with domain.ErrDuplicateKey if the tweet id exists, leaving nothing behind.
	CreateTweetWithEntities(ctx context.Context, input CreateTweetInput) error
	// UpdateTweetCounters overwrites the engagement counters of an existing tweet
	UpdateTweetCounters(ctx context.Context, input UpdateTweetCountersInput) error

	// CountTweetEntities counts the child rows of a tweet
	CountTweetEntities(ctx context.Context, tweetID int64) (*TweetEntityCounts, error)
}

// CreateTweetInput holds a tweet row and its child rows.
// Child TweetID fields are filled in by the store.
type CreateTweetInput struct {
	Tweet    schema.Tweet
	Hashtags []int64 // hashtag lexicon ids, one per occurrence
	Words    []int64 // tweet lexicon ids, one per token
	Mentions []schema.Mention
	URLs     []string
	Geotag   *schema.Geotag
	Media    []schema.Media
}

// UpdateTweetCountersInput holds the mutable fields of a tweet
type UpdateTweetCountersInput struct {
	TweetID       int64
	RetweetCount  int
	FavoriteCount int
}

// TweetEntityCounts holds the number of child rows per table for one tweet
type TweetEntityCounts struct {
	Hashtags int64
	Words    int64
	Mentions int64
	URLs     int64
	Geotags  int64
	Media    int64
}
