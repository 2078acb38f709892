package store_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/feral-file/ff-tweet-indexer/internal/store"
)

func TestIsDuplicateKey(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "gorm translated", err: fmt.Errorf("wrapped: %w", gorm.ErrDuplicatedKey), expected: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, expected: true},
		{name: "postgres foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: false},
		{name: "sqlite unique violation", err: errors.New("constraint failed: UNIQUE constraint failed: tweets.tweet_id (1555)"), expected: true},
		{name: "other", err: errors.New("connection refused"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.IsDuplicateKey(tt.err))
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil", err: nil, expected: false},
		{name: "gorm translated", err: fmt.Errorf("wrapped: %w", gorm.ErrForeignKeyViolated), expected: true},
		{name: "postgres foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: true},
		{name: "postgres unique violation", err: &pgconn.PgError{Code: "23505"}, expected: false},
		{name: "sqlite foreign key violation", err: errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), expected: true},
		{name: "sqlite foreign key mismatch", err: errors.New(`SQL logic error: foreign key mismatch - "tweets" referencing "url_data" (1)`), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, store.IsForeignKeyViolation(tt.err))
		})
	}
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	open, idle, lifetime, idleTime := store.NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 20, open)
	assert.Equal(t, 5, idle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	open, idle, _, _ = store.NormalizeConnectionPoolSettings(3, 10, time.Hour, time.Minute)
	assert.Equal(t, 3, open)
	assert.Equal(t, 3, idle)
}

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := store.Open("oracle", "", false)
	assert.Error(t, err)
}
