package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore creates a new store backed by a gorm connection pool (postgres or sqlite)
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Connection runs fn with a store pinned to a single dedicated connection.
// The connection returns to the pool when fn returns.
func (s *gormStore) Connection(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return fn(&gormStore{db: conn})
	})
}

// GetUser retrieves a user by platform id
func (s *gormStore) GetUser(ctx context.Context, userID int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// CreateUser inserts a new user
func (s *gormStore) CreateUser(ctx context.Context, user *schema.User) error {
	if user.LastUpdated.IsZero() {
		user.LastUpdated = time.Now().UTC()
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return wrapWriteError("failed to create user", err)
	}

	return nil
}

// UpdateUserProfile overwrites the mutable profile fields of an existing user.
// Identity and account creation time are never touched.
func (s *gormStore) UpdateUserProfile(ctx context.Context, user *schema.User) error {
	user.LastUpdated = time.Now().UTC()

	result := s.db.WithContext(ctx).
		Model(&schema.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"name":          user.Name,
			"location":      user.Location,
			"description":   user.Description,
			"num_followers": user.NumFollowers,
			"num_friends":   user.NumFriends,
			"num_tweets":    user.NumTweets,
			"time_zone":     user.TimeZone,
			"geo_enabled":   user.GeoEnabled,
			"verified":      user.Verified,
			"last_updated":  user.LastUpdated,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update user %d: %w", user.UserID, gorm.ErrRecordNotFound)
	}

	return nil
}

// GetTweet retrieves a tweet by platform id
func (s *gormStore) GetTweet(ctx context.Context, tweetID int64) (*schema.Tweet, error) {
	var tweet schema.Tweet
	err := s.db.WithContext(ctx).Where("tweet_id = ?", tweetID).Take(&tweet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}

	return &tweet, nil
}

// CreateTweetWithEntities inserts a tweet and its children in one transaction.
// The tweet row goes first so no child is ever written without its parent.
func (s *gormStore) CreateTweetWithEntities(ctx context.Context, input CreateTweetInput) error {
	tweetID := input.Tweet.TweetID

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tweet := input.Tweet
		if err := tx.Omit(clause.Associations).Create(&tweet).Error; err != nil {
			return wrapWriteError("failed to create tweet", err)
		}

		if len(input.Hashtags) > 0 {
			hashtags := make([]schema.Hashtag, 0, len(input.Hashtags))
			for _, id := range input.Hashtags {
				hashtags = append(hashtags, schema.Hashtag{TweetID: tweetID, HashtagID: id})
			}
			if err := tx.Omit(clause.Associations).Create(&hashtags).Error; err != nil {
				return wrapWriteError("failed to create hashtags", err)
			}
		}

		if len(input.Mentions) > 0 {
			mentions := make([]schema.Mention, len(input.Mentions))
			for i, m := range input.Mentions {
				m.TweetID = tweetID
				mentions[i] = m
			}
			if err := tx.Omit(clause.Associations).Create(&mentions).Error; err != nil {
				return wrapWriteError("failed to create mentions", err)
			}
		}

		if len(input.URLs) > 0 {
			urls := make([]schema.URLData, 0, len(input.URLs))
			for _, u := range input.URLs {
				urls = append(urls, schema.URLData{TweetID: tweetID, URL: u})
			}
			if err := tx.Omit(clause.Associations).Create(&urls).Error; err != nil {
				return wrapWriteError("failed to create urls", err)
			}
		}

		if input.Geotag != nil {
			geotag := *input.Geotag
			geotag.TweetID = tweetID
			if err := tx.Omit(clause.Associations).Create(&geotag).Error; err != nil {
				return wrapWriteError("failed to create geotag", err)
			}
		}

		if len(input.Media) > 0 {
			media := make([]schema.Media, len(input.Media))
			for i, m := range input.Media {
				m.TweetID = tweetID
				media[i] = m
			}
			if err := tx.Omit(clause.Associations).Create(&media).Error; err != nil {
				return wrapWriteError("failed to create media", err)
			}
		}

		if len(input.Words) > 0 {
			words := make([]schema.TweetWord, 0, len(input.Words))
			for _, id := range input.Words {
				words = append(words, schema.TweetWord{TweetID: tweetID, WordID: id})
			}
			if err := tx.Omit(clause.Associations).CreateInBatches(&words, wordBatchSize).Error; err != nil {
				return wrapWriteError("failed to create words", err)
			}
		}

		return nil
	})
}

// wordBatchSize keeps long texts well under the bind parameter limits of both drivers
const wordBatchSize = 200

// UpdateTweetCounters overwrites the engagement counters of an existing tweet
func (s *gormStore) UpdateTweetCounters(ctx context.Context, input UpdateTweetCountersInput) error {
	result := s.db.WithContext(ctx).
		Model(&schema.Tweet{}).
		Where("tweet_id = ?", input.TweetID).
		Updates(map[string]interface{}{
			"retweet_count":  input.RetweetCount,
			"favorite_count": input.FavoriteCount,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update tweet counters: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("failed to update tweet %d: %w", input.TweetID, gorm.ErrRecordNotFound)
	}

	return nil
}

// CountTweetEntities counts the child rows of a tweet
func (s *gormStore) CountTweetEntities(ctx context.Context, tweetID int64) (*TweetEntityCounts, error) {
	var counts TweetEntityCounts
	db := s.db.WithContext(ctx)

	targets := []struct {
		model interface{}
		dest  *int64
	}{
		{&schema.Hashtag{}, &counts.Hashtags},
		{&schema.TweetWord{}, &counts.Words},
		{&schema.Mention{}, &counts.Mentions},
		{&schema.URLData{}, &counts.URLs},
		{&schema.Geotag{}, &counts.Geotags},
		{&schema.Media{}, &counts.Media},
	}
	for _, target := range targets {
		if err := db.Model(target.model).Where("tweet_id = ?", tweetID).Count(target.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to count tweet entities: %w", err)
		}
	}

	return &counts, nil
}

// FindLexiconID looks up text in a lexicon
func (s *gormStore) FindLexiconID(ctx context.Context, lexicon domain.Lexicon, text string) (int64, bool, error) {
	table, err := lexiconTable(lexicon)
	if err != nil {
		return 0, false, err
	}

	var ids []int64
	err = s.db.WithContext(ctx).
		Table(table).
		Where("text = ?", text).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, false, fmt.Errorf("failed to find %s lexicon entry: %w", lexicon, err)
	}
	if len(ids) == 0 {
		return 0, false, nil
	}

	return ids[0], true, nil
}

// CreateLexiconEntry inserts text into a lexicon
func (s *gormStore) CreateLexiconEntry(ctx context.Context, lexicon domain.Lexicon, text string) (int64, error) {
	db := s.db.WithContext(ctx)

	switch lexicon {
	case domain.LexiconHashtag:
		entry := schema.HashtagLexicon{Text: text}
		if err := db.Create(&entry).Error; err != nil {
			return 0, wrapWriteError("failed to create hashtag lexicon entry", err)
		}
		return entry.ID, nil
	case domain.LexiconWord:
		entry := schema.TweetLexicon{Text: text}
		if err := db.Create(&entry).Error; err != nil {
			return 0, wrapWriteError("failed to create tweet lexicon entry", err)
		}
		return entry.ID, nil
	default:
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownLexicon, lexicon)
	}
}

func lexiconTable(lexicon domain.Lexicon) (string, error) {
	switch lexicon {
	case domain.LexiconHashtag:
		return schema.HashtagLexicon{}.TableName(), nil
	case domain.LexiconWord:
		return schema.TweetLexicon{}.TableName(), nil
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownLexicon, lexicon)
	}
}

// wrapWriteError marks uniqueness violations with domain.ErrDuplicateKey
func wrapWriteError(msg string, err error) error {
	if IsDuplicateKey(err) {
		return fmt.Errorf("%s: %w: %w", msg, domain.ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
