package store

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sweetshop/internal/domain"
)

// newTestDB opens an in-memory SQLite database with the schema applied.
// Shared-cache in-memory sqlite returns SQLITE_LOCKED under concurrent
// writers, so the pool is capped at one connection; every statement is
// serialized, which the atomic-update paths do not depend on.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared&_busy_timeout=5000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&domain.User{}, &domain.Sweet{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestMigrateIdempotent(t *testing.T) {
	db := newTestDB(t)
	// Second migration over an existing schema must be a no-op.
	if err := db.AutoMigrate(&domain.User{}, &domain.Sweet{}); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
}
