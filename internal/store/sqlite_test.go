package store_test

import (
	"testing"

	"gorm.io/gorm"

	"github.com/feral-file/ff-tweet-indexer/internal/store/storetest"
)

// TestSQLiteStore runs all store tests against an embedded sqlite database
func TestSQLiteStore(t *testing.T) {
	RunStoreTests(t, func(t *testing.T) *gorm.DB {
		return storetest.OpenSQLite(t)
	})
}
