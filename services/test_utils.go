package services

import (
	"testing"

	"github.com/MikeBarney88/golf-club-api/database"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SetupSQLiteTestDB creates a migrated in-memory SQLite database for testing.
// The pool is pinned to one connection because every :memory: connection is a separate database.
func SetupSQLiteTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:"))
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}
