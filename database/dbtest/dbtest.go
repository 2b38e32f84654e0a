// Package dbtest opens throwaway in-memory SQLite databases for tests.
package dbtest

import (
	"testing"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/storefront/database"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Open returns a migrated, private in-memory database that is closed when the
// test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := database.Open("sqlite", dsn, "silent", zap.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// A single connection keeps the shared-cache database alive and avoids
	// SQLITE_LOCKED between concurrent writers.
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
