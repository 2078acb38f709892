package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
	"github.com/feral-file/ff-tweet-indexer/internal/store/storetest"
)

// InitDBFunc prepares an empty, migrated database for one test
type InitDBFunc func(t *testing.T) *gorm.DB

// RunStoreTests runs the store test suite against a database implementation
func RunStoreTests(t *testing.T, initDB InitDBFunc) {
	t.Run("Users", func(t *testing.T) { testUsers(t, initDB(t)) })
	t.Run("Tweets", func(t *testing.T) { testTweets(t, initDB(t)) })
	t.Run("Lexicon", func(t *testing.T) { testLexicon(t, initDB(t)) })
	t.Run("ForeignKeys", func(t *testing.T) { testForeignKeys(t, initDB(t)) })
	t.Run("Connection", func(t *testing.T) { testConnection(t, initDB(t)) })
	t.Run("ConcurrentInserts", func(t *testing.T) { testConcurrentInserts(t, initDB(t)) })
}

// =============================================================================
// Test Data Builders
// =============================================================================

func buildTestUser(id int64) *schema.User {
	return &schema.User{
		UserID:           id,
		Username:         "jack",
		Name:             "Jack",
		Location:         "San Francisco",
		Description:      "just setting up",
		NumFollowers:     10,
		NumFriends:       20,
		NumTweets:        30,
		AccountCreatedAt: time.Date(2006, 3, 21, 20, 50, 14, 0, time.UTC),
		TimeZone:         "Pacific Time (US & Canada)",
		GeoEnabled:       true,
		Verified:         false,
	}
}

func buildTestTweet(id int64) schema.Tweet {
	return schema.Tweet{
		TweetID:       id,
		UserID:        12,
		Text:          "hello #world from @friend",
		Place:         datatypes.JSON(`{"id":"5a110d312052166f","full_name":"San Francisco, CA"}`),
		Lang:          "en",
		Source:        "web",
		TweetedAt:     time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
		RetweetCount:  1,
		FavoriteCount: 2,
	}
}

// =============================================================================
// Test: Users
// =============================================================================

func testUsers(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	s := store.NewStore(db)

	t.Run("missing user returns nil", func(t *testing.T) {
		user, err := s.GetUser(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("create and get", func(t *testing.T) {
		require.NoError(t, s.CreateUser(ctx, buildTestUser(1)))

		user, err := s.GetUser(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "jack", user.Username)
		assert.Equal(t, 10, user.NumFollowers)
		assert.True(t, user.GeoEnabled)
		assert.False(t, user.LastUpdated.IsZero())
	})

	t.Run("duplicate create is classified", func(t *testing.T) {
		err := s.CreateUser(ctx, buildTestUser(1))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		assert.True(t, store.IsDuplicateKey(err))
	})

	t.Run("update overwrites mutable fields only", func(t *testing.T) {
		before, err := s.GetUser(ctx, 1)
		require.NoError(t, err)

		updated := buildTestUser(1)
		updated.Username = "jack2"
		updated.NumFollowers = 0
		updated.GeoEnabled = false
		updated.Verified = true
		updated.AccountCreatedAt = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(t, s.UpdateUserProfile(ctx, updated))

		after, err := s.GetUser(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "jack2", after.Username)
		assert.Equal(t, 0, after.NumFollowers)
		assert.False(t, after.GeoEnabled)
		assert.True(t, after.Verified)
		assert.True(t, before.AccountCreatedAt.Equal(after.AccountCreatedAt), "account creation time must not change")
		assert.False(t, after.LastUpdated.Before(before.LastUpdated))
	})

	t.Run("update of missing user fails", func(t *testing.T) {
		err := s.UpdateUserProfile(ctx, buildTestUser(999))
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

// =============================================================================
// Test: Tweets
// =============================================================================

func testTweets(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	s := store.NewStore(db)

	hashtagID, err := s.CreateLexiconEntry(ctx, domain.LexiconHashtag, "world")
	require.NoError(t, err)
	helloID, err := s.CreateLexiconEntry(ctx, domain.LexiconWord, "hello")
	require.NoError(t, err)
	fromID, err := s.CreateLexiconEntry(ctx, domain.LexiconWord, "from")
	require.NoError(t, err)

	local := "ab/cd/ef/0123.jpg"
	input := store.CreateTweetInput{
		Tweet:    buildTestTweet(100),
		Hashtags: []int64{hashtagID, hashtagID},
		Words:    []int64{helloID, fromID, helloID},
		Mentions: []schema.Mention{{SourceUserID: 12, TargetUserID: 13}},
		URLs:     []string{"https://example.com/a", "https://example.com/b"},
		Geotag:   &schema.Geotag{Latitude: 37.78, Longitude: -122.39},
		Media: []schema.Media{
			{MediaIndex: 0, NativeFilename: "a.jpg", MimeType: "image/jpeg", Blob: []byte{1, 2, 3}},
			{MediaIndex: 1, NativeFilename: "b.jpg", MimeType: "image/jpeg", LocalFilename: &local},
		},
	}

	t.Run("missing tweet returns nil", func(t *testing.T) {
		tweet, err := s.GetTweet(ctx, 100)
		require.NoError(t, err)
		assert.Nil(t, tweet)
	})

	t.Run("create with entities", func(t *testing.T) {
		require.NoError(t, s.CreateTweetWithEntities(ctx, input))

		tweet, err := s.GetTweet(ctx, 100)
		require.NoError(t, err)
		require.NotNil(t, tweet)
		assert.Equal(t, "hello #world from @friend", tweet.Text)
		assert.Equal(t, "en", tweet.Lang)
		assert.True(t, input.Tweet.TweetedAt.Equal(tweet.TweetedAt))
		assert.JSONEq(t, `{"id":"5a110d312052166f","full_name":"San Francisco, CA"}`, string(tweet.Place))

		counts, err := s.CountTweetEntities(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, store.TweetEntityCounts{Hashtags: 2, Words: 3, Mentions: 1, URLs: 2, Geotags: 1, Media: 2}, *counts)

		var media []schema.Media
		require.NoError(t, db.Where("tweet_id = ?", 100).Order("media_index").Find(&media).Error)
		require.Len(t, media, 2)
		assert.Equal(t, []byte{1, 2, 3}, media[0].Blob)
		assert.Nil(t, media[0].LocalFilename)
		require.NotNil(t, media[1].LocalFilename)
		assert.Equal(t, local, *media[1].LocalFilename)
	})

	t.Run("duplicate create leaves children untouched", func(t *testing.T) {
		err := s.CreateTweetWithEntities(ctx, input)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)

		counts, err := s.CountTweetEntities(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(2), counts.Hashtags)
		assert.Equal(t, int64(3), counts.Words)
		assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.Tweet{}, ""))
	})

	t.Run("update counters only", func(t *testing.T) {
		require.NoError(t, s.UpdateTweetCounters(ctx, store.UpdateTweetCountersInput{
			TweetID:       100,
			RetweetCount:  50,
			FavoriteCount: 0,
		}))

		tweet, err := s.GetTweet(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 50, tweet.RetweetCount)
		assert.Equal(t, 0, tweet.FavoriteCount)
		assert.Equal(t, "hello #world from @friend", tweet.Text)
	})

	t.Run("update of missing tweet fails", func(t *testing.T) {
		err := s.UpdateTweetCounters(ctx, store.UpdateTweetCountersInput{TweetID: 404})
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("tweet without entities", func(t *testing.T) {
		require.NoError(t, s.CreateTweetWithEntities(ctx, store.CreateTweetInput{Tweet: buildTestTweet(101)}))

		counts, err := s.CountTweetEntities(ctx, 101)
		require.NoError(t, err)
		assert.Equal(t, store.TweetEntityCounts{}, *counts)
	})
}

// =============================================================================
// Test: Lexicon
// =============================================================================

func testLexicon(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	s := store.NewStore(db)

	t.Run("absent text", func(t *testing.T) {
		id, found, err := s.FindLexiconID(ctx, domain.LexiconHashtag, "golang")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, id)
	})

	t.Run("create then find", func(t *testing.T) {
		created, err := s.CreateLexiconEntry(ctx, domain.LexiconHashtag, "golang")
		require.NoError(t, err)
		assert.NotZero(t, created)

		id, found, err := s.FindLexiconID(ctx, domain.LexiconHashtag, "golang")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, created, id)
	})

	t.Run("duplicate text is classified", func(t *testing.T) {
		_, err := s.CreateLexiconEntry(ctx, domain.LexiconHashtag, "golang")
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.HashtagLexicon{}, "text = ?", "golang"))
	})

	t.Run("lexicons are independent", func(t *testing.T) {
		_, found, err := s.FindLexiconID(ctx, domain.LexiconWord, "golang")
		require.NoError(t, err)
		assert.False(t, found)

		_, err = s.CreateLexiconEntry(ctx, domain.LexiconWord, "golang")
		require.NoError(t, err)
	})

	t.Run("unknown lexicon", func(t *testing.T) {
		_, _, err := s.FindLexiconID(ctx, domain.Lexicon("emoji"), "x")
		assert.ErrorIs(t, err, domain.ErrUnknownLexicon)

		_, err = s.CreateLexiconEntry(ctx, domain.Lexicon("emoji"), "x")
		assert.ErrorIs(t, err, domain.ErrUnknownLexicon)
	})
}

// =============================================================================
// Test: Foreign keys
// =============================================================================

func testForeignKeys(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	s := store.NewStore(db)

	t.Run("child tables reference tweets", func(t *testing.T) {
		for _, assoc := range []string{"Hashtags", "Words", "Mentions", "URLs", "Geotag", "Media"} {
			assert.True(t, db.Migrator().HasConstraint(&schema.Tweet{}, assoc), assoc)
		}
		assert.True(t, db.Migrator().HasConstraint(&schema.Hashtag{}, "Lexicon"))
		assert.True(t, db.Migrator().HasConstraint(&schema.TweetWord{}, "Lexicon"))
	})

	t.Run("tweet without children", func(t *testing.T) {
		require.NoError(t, s.CreateTweetWithEntities(ctx, store.CreateTweetInput{Tweet: buildTestTweet(199)}))

		tweet, err := s.GetTweet(ctx, 199)
		require.NoError(t, err)
		require.NotNil(t, tweet)
		assert.Equal(t, int64(199), tweet.TweetID)
	})

	t.Run("unknown lexicon id rolls back the tweet", func(t *testing.T) {
		err := s.CreateTweetWithEntities(ctx, store.CreateTweetInput{
			Tweet:    buildTestTweet(200),
			Hashtags: []int64{987654},
		})
		require.Error(t, err)
		assert.True(t, store.IsForeignKeyViolation(err), err)
		assert.False(t, errors.Is(err, domain.ErrDuplicateKey))

		tweet, err := s.GetTweet(ctx, 200)
		require.NoError(t, err)
		assert.Nil(t, tweet)
	})

	t.Run("orphan child rejected", func(t *testing.T) {
		err := db.Create(&schema.URLData{TweetID: 404, URL: "https://example.com"}).Error
		require.Error(t, err)
		assert.True(t, store.IsForeignKeyViolation(err), err)
	})

	t.Run("deleting a tweet cascades", func(t *testing.T) {
		word, err := s.CreateLexiconEntry(ctx, domain.LexiconWord, "cascade")
		require.NoError(t, err)
		require.NoError(t, s.CreateTweetWithEntities(ctx, store.CreateTweetInput{
			Tweet: buildTestTweet(201),
			URLs:  []string{"https://example.com/a"},
			Words: []int64{word},
		}))

		require.NoError(t, db.Delete(&schema.Tweet{}, "tweet_id = ?", 201).Error)
		assert.Zero(t, storetest.CountRows(t, db, &schema.URLData{}, "tweet_id = ?", 201))
		assert.Zero(t, storetest.CountRows(t, db, &schema.TweetWord{}, "tweet_id = ?", 201))
	})
}

// =============================================================================
// Test: Connection pinning
// =============================================================================

func testConnection(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	s := store.NewStore(db)

	err := s.Connection(ctx, func(conn store.Store) error {
		if err := conn.CreateUser(ctx, buildTestUser(7)); err != nil {
			return err
		}
		return conn.CreateTweetWithEntities(ctx, store.CreateTweetInput{Tweet: buildTestTweet(700)})
	})
	require.NoError(t, err)

	user, err := s.GetUser(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, user)

	sentinel := errors.New("stop")
	err = s.Connection(ctx, func(store.Store) error { return sentinel })
	assert.ErrorIs(t, err, sentinel)
}

// =============================================================================
// Test: Concurrent inserts
// =============================================================================

func testConcurrentInserts(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	s := store.NewStore(db)
	const workers = 4

	t.Run("same tweet id", func(t *testing.T) {
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Connection(ctx, func(conn store.Store) error {
					return conn.CreateTweetWithEntities(ctx, store.CreateTweetInput{
						Tweet: buildTestTweet(300),
						URLs:  []string{"https://example.com"},
					})
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.Tweet{}, "tweet_id = ?", 300))
		assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.URLData{}, "tweet_id = ?", 300))
	})

	t.Run("same lexicon text", func(t *testing.T) {
		errs := make([]error, workers)
		var wg sync.WaitGroup
		for i := range workers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = s.Connection(ctx, func(conn store.Store) error {
					_, err := conn.CreateLexiconEntry(ctx, domain.LexiconWord, "race")
					return err
				})
			}(i)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, domain.ErrDuplicateKey)
		}
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.TweetLexicon{}, "text = ?", "race"))
	})
}
