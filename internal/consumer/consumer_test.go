package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
	"github.com/feral-file/ff-tweet-indexer/internal/consumer"
	"github.com/feral-file/ff-tweet-indexer/internal/domain"
	"github.com/feral-file/ff-tweet-indexer/internal/lexicon"
	"github.com/feral-file/ff-tweet-indexer/internal/mocks"
	"github.com/feral-file/ff-tweet-indexer/internal/persister"
	"github.com/feral-file/ff-tweet-indexer/internal/queue"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
	"github.com/feral-file/ff-tweet-indexer/internal/store/storetest"
)

func newStatus(id int64, lang string) *domain.Status {
	return &domain.Status{
		ID:        id,
		Author:    domain.Author{ID: 42, ScreenName: "gopher"},
		Text:      fmt.Sprintf("status number %d about gophers", id),
		Lang:      lang,
		CreatedAt: time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC),
		Hashtags:  []string{"golang"},
	}
}

func TestWorker_Handle(t *testing.T) {
	ctx := context.Background()
	english := domain.NewLanguageFilter([]string{"en"})

	tests := []struct {
		name     string
		status   *domain.Status
		setup    func(p *mocks.MockPersister)
		expected consumer.Outcome
	}{
		{
			name:   "created",
			status: newStatus(1, "en"),
			setup: func(p *mocks.MockPersister) {
				p.EXPECT().UpsertUser(ctx, gomock.Any()).Return(&persister.Result{Created: true}, nil)
				p.EXPECT().UpsertTweet(ctx, gomock.Any(), persister.Options{}).Return(&persister.Result{Created: true}, nil)
			},
			expected: consumer.OutcomeCreated,
		},
		{
			name:   "already stored",
			status: newStatus(1, "en"),
			setup: func(p *mocks.MockPersister) {
				p.EXPECT().UpsertUser(ctx, gomock.Any()).Return(&persister.Result{}, nil)
				p.EXPECT().UpsertTweet(ctx, gomock.Any(), gomock.Any()).Return(&persister.Result{Created: false}, nil)
			},
			expected: consumer.OutcomeDuplicate,
		},
		{
			name:   "duplicate key escaping the persister",
			status: newStatus(1, "EN"),
			setup: func(p *mocks.MockPersister) {
				p.EXPECT().UpsertUser(ctx, gomock.Any()).Return(&persister.Result{}, nil)
				p.EXPECT().UpsertTweet(ctx, gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("failed to update tweet: %w", domain.ErrDuplicateKey))
			},
			expected: consumer.OutcomeDuplicate,
		},
		{
			name:   "tweet failure",
			status: newStatus(1, "en"),
			setup: func(p *mocks.MockPersister) {
				p.EXPECT().UpsertUser(ctx, gomock.Any()).Return(&persister.Result{}, nil)
				p.EXPECT().UpsertTweet(ctx, gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expected: consumer.OutcomeFailed,
		},
		{
			name:   "author failure skips the tweet",
			status: newStatus(1, "en"),
			setup: func(p *mocks.MockPersister) {
				p.EXPECT().UpsertUser(ctx, gomock.Any()).Return(nil, errors.New("connection reset"))
			},
			expected: consumer.OutcomeFailed,
		},
		{
			name:     "disallowed language",
			status:   newStatus(1, "ja"),
			setup:    func(p *mocks.MockPersister) {},
			expected: consumer.OutcomeDropped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			p := mocks.NewMockPersister(ctrl)
			tt.setup(p)

			totals := &consumer.Totals{}
			w := consumer.NewWorker(1, queue.New(1), p, english, persister.Options{}, adapter.NewClock(), time.Minute, totals)
			assert.Equal(t, tt.expected, w.Handle(ctx, tt.status))

			snapshot := totals.Snapshot()
			assert.Equal(t, int64(1), snapshot.Created+snapshot.Duplicate+snapshot.Dropped+snapshot.Failed)
		})
	}
}

func TestWorker_RunStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	p := mocks.NewMockPersister(ctrl)
	q := queue.New(4)
	w := consumer.NewWorker(1, q, p, domain.NewLanguageFilter([]string{"all"}), persister.Options{}, adapter.NewClock(), time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func newPool(t *testing.T, st store.Store, q *queue.Queue, consumers int, languages ...string) *consumer.Pool {
	t.Helper()
	return consumer.NewPool(
		consumer.Config{Consumers: consumers, LogInterval: time.Minute},
		st, q, domain.NewLanguageFilter(languages),
		func(conn store.Store) (persister.Persister, error) {
			interner, err := lexicon.NewInterner(conn, 0)
			if err != nil {
				return nil, err
			}
			return persister.New(conn, interner, nil), nil
		},
		adapter.NewClock(),
	)
}

func runPool(t *testing.T, pool *consumer.Pool) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- pool.Run(ctx) }()
	return cancel, done
}

func waitStopped(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("pool did not stop")
	}
}

func TestPool_SameTweetTwice(t *testing.T) {
	db := storetest.OpenSQLite(t)
	q := queue.New(10)
	pool := newPool(t, store.NewStore(db), q, 2, "all")
	cancel, done := runPool(t, pool)

	ctx := context.Background()
	require.NoError(t, q.Enqueue(ctx, newStatus(7, "en")))
	require.NoError(t, q.Enqueue(ctx, newStatus(7, "en")))

	require.Eventually(t, func() bool {
		totals := pool.Totals()
		return totals.Created+totals.Duplicate+totals.Failed == 2
	}, 10*time.Second, 10*time.Millisecond)

	cancel()
	waitStopped(t, done)

	totals := pool.Totals()
	assert.Equal(t, int64(1), totals.Created)
	assert.Equal(t, int64(1), totals.Duplicate)
	assert.Zero(t, totals.Failed)
	assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.Tweet{}, "tweet_id = ?", 7))
	assert.Equal(t, int64(1), storetest.CountRows(t, db, &schema.Hashtag{}, "tweet_id = ?", 7))
}

func TestPool_DisallowedLanguage(t *testing.T) {
	db := storetest.OpenSQLite(t)
	q := queue.New(10)
	pool := newPool(t, store.NewStore(db), q, 1, "en")
	cancel, done := runPool(t, pool)

	require.NoError(t, q.Enqueue(context.Background(), newStatus(8, "ja")))
	require.Eventually(t, func() bool {
		return pool.Totals().Dropped == 1
	}, 10*time.Second, 10*time.Millisecond)

	cancel()
	waitStopped(t, done)

	assert.Zero(t, pool.Totals().Duplicate)
	assert.Zero(t, storetest.CountRows(t, db, &schema.Tweet{}, ""))
	assert.Zero(t, storetest.CountRows(t, db, &schema.User{}, ""))
}

func TestPool_StopLeavesQueuedItems(t *testing.T) {
	db := storetest.OpenSQLite(t)
	q := queue.New(10)
	pool := newPool(t, store.NewStore(db), q, 2, "all")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, q.Enqueue(context.Background(), newStatus(9, "en")))

	require.NoError(t, pool.Run(ctx))
	assert.Equal(t, 1, q.Len())
	assert.Zero(t, storetest.CountRows(t, db, &schema.Tweet{}, ""))
}

func TestPool_Errors(t *testing.T) {
	t.Run("factory failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		st := mocks.NewMockStore(ctrl)
		st.EXPECT().Connection(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(store.Store) error) error {
				return fn(st)
			}).Times(2)

		pool := consumer.NewPool(consumer.Config{Consumers: 2, LogInterval: time.Minute}, st, queue.New(1),
			domain.NewLanguageFilter([]string{"all"}),
			func(conn store.Store) (persister.Persister, error) {
				return nil, errors.New("no cache")
			},
			adapter.NewClock())

		err := pool.Run(context.Background())
		assert.ErrorContains(t, err, "no cache")
	})

	t.Run("no consumers", func(t *testing.T) {
		pool := consumer.NewPool(consumer.Config{}, nil, queue.New(1), domain.LanguageFilter{}, nil, adapter.NewClock())
		assert.Error(t, pool.Run(context.Background()))
	})
}
