// Package storetest provides database fixtures for tests of packages built on the store.
package storetest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/feral-file/ff-tweet-indexer/internal/config"
	"github.com/feral-file/ff-tweet-indexer/internal/store"
	"github.com/feral-file/ff-tweet-indexer/internal/store/schema"
)

// OpenSQLite opens a migrated sqlite database in a per-test temp dir
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tweets.db")
	db, err := store.Open(store.TypeSQLite, config.SQLiteDSN(path), false)
	require.NoError(t, err)
	db.Logger = logger.Default.LogMode(logger.Silent)
	require.NoError(t, store.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

// Postgres is a database started for a test binary
type Postgres struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// StartPostgres connects to TEST_DB_HOST when set, otherwise starts a container.
// The schema is migrated before returning.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	var (
		dsn       string
		container *postgres.PostgresContainer
		err       error
	)

	if dbHost := os.Getenv("TEST_DB_HOST"); dbHost != "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost,
			envOr("TEST_DB_PORT", "5432"),
			envOr("TEST_DB_USER", "postgres"),
			envOr("TEST_DB_PASSWORD", "postgres"),
			envOr("TEST_DB_NAME", "test_db"))
	} else {
		container, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to start PostgreSQL container: %w", err)
		}

		dsn, err = container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			_ = container.Terminate(ctx)
			return nil, fmt.Errorf("failed to get connection string: %w", err)
		}
	}

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		if container != nil {
			_ = container.Terminate(ctx)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Start from an empty schema when reusing an external database
	err = store.Drop(db)
	if err == nil {
		err = store.Migrate(db)
	}
	if err != nil {
		if container != nil {
			_ = container.Terminate(ctx)
		}
		return nil, err
	}

	return &Postgres{DB: db, container: container}, nil
}

// Truncate empties every table and resets identities
func (p *Postgres) Truncate(t *testing.T) {
	t.Helper()

	tables := []string{
		schema.Media{}.TableName(),
		schema.Geotag{}.TableName(),
		schema.URLData{}.TableName(),
		schema.Mention{}.TableName(),
		schema.TweetWord{}.TableName(),
		schema.Hashtag{}.TableName(),
		schema.TweetLexicon{}.TableName(),
		schema.HashtagLexicon{}.TableName(),
		schema.Tweet{}.TableName(),
		schema.User{}.TableName(),
	}
	for _, table := range tables {
		require.NoError(t, p.DB.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error)
	}
}

// Terminate closes the connection and stops the container if one was started
func (p *Postgres) Terminate(ctx context.Context) {
	if sqlDB, err := p.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	if p.container != nil {
		if err := p.container.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// CountRows counts the rows of a model's table, optionally filtered
func CountRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()

	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
