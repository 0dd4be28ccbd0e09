package db

import (
	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library

	"sweetshop/internal/domain" // Domain models
)

// Open connects to MySQL. TranslateError maps driver duplicate-key failures
// onto gorm.ErrDuplicatedKey, which the store layer relies on.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate creates the users and sweets tables if they do not yet exist.
// AutoMigrate is idempotent, so this runs on every process start.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.User{}, &domain.Sweet{})
}
