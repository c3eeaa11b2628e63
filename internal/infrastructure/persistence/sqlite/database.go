// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	gormModels "github.com/foodml/recipelab/internal/infrastructure/persistence/gorm"
)

// IsInMemory reports whether a DSN names a transient in-memory
// database rather than a file.
func IsInMemory(dbPath string) bool {
	return dbPath == "" ||
		dbPath == ":memory:" ||
		strings.HasPrefix(dbPath, "file::memory:") ||
		strings.Contains(dbPath, "mode=memory")
}

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(dbPath string, logLevel logger.LogLevel) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	inMemory := IsInMemory(dbPath)
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Every pooled connection to :memory: would see its own empty
	// database, so keep a single one.
	if inMemory {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access database pool: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	// FK enforcement is off by default in sqlite
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := db.AutoMigrate(gormModels.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}
