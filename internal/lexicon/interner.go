// Package lexicon resolves hashtag and word text to stable lexicon ids.
package lexicon

import (
	"context"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/logger"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
)

// DefaultCacheSize is the number of ids each interner remembers
const DefaultCacheSize = 10000

// Interner maps text to a lexicon id, creating the entry on first sighting
//
//go:generate mockgen -source=interner.go -destination=../mocks/interner.go -package=mocks -mock_names=Interner=MockInterner
type Interner interface {
	// Intern returns the id of text in the lexicon
	Intern(ctx context.Context, lexicon domain.Lexicon, text string) (int64, error)
	// InternAll returns the ids of texts in order; repeated texts share an id
	InternAll(ctx context.Context, lexicon domain.Lexicon, texts []string) ([]int64, error)
}

type cacheKey struct {
	lexicon domain.Lexicon
	text    string
}

type interner struct {
	store store.LexiconStore
	cache *lru.Cache[cacheKey, int64]
}

// NewInterner creates an interner on top of a lexicon store.
// Lexicon entries are never updated or deleted, so cached ids stay valid.
func NewInterner(s store.LexiconStore, cacheSize int) (Interner, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[cacheKey, int64](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create lexicon cache: %w", err)
	}

	return &interner{store: s, cache: cache}, nil
}

// Intern looks text up and inserts it when absent. The unique index on the
// lexicon text is the only synchronization with other workers: losing an
// insert race means the winner's row is now visible to the next lookup.
func (i *interner) Intern(ctx context.Context, lexicon domain.Lexicon, text string) (int64, error) {
	key := cacheKey{lexicon: lexicon, text: text}
	if id, ok := i.cache.Get(key); ok {
		return id, nil
	}

	for attempt := 1; attempt <= domain.MaxInternAttempts; attempt++ {
		id, found, err := i.store.FindLexiconID(ctx, lexicon, text)
		if err != nil {
			return 0, err
		}
		if found {
			i.cache.Add(key, id)
			return id, nil
		}

		id, err = i.store.CreateLexiconEntry(ctx, lexicon, text)
		if err == nil {
			i.cache.Add(key, id)
			return id, nil
		}
		if !errors.Is(err, domain.ErrDuplicateKey) {
			return 0, err
		}

		logger.DebugCtx(ctx, "Lost lexicon insert race, looking up again",
			zap.String("lexicon", string(lexicon)),
			zap.String("text", text),
			zap.Int("attempt", attempt))
	}

	return 0, fmt.Errorf("%w: %s %q", domain.ErrInternRetriesExhausted, lexicon, text)
}

// InternAll interns texts in order
func (i *interner) InternAll(ctx context.Context, lexicon domain.Lexicon, texts []string) ([]int64, error) {
	ids := make([]int64, 0, len(texts))
	for _, text := range texts {
		id, err := i.Intern(ctx, lexicon, text)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
