// Package repo persists the domain model through GORM. This file opens the
// database (pure-Go SQLite by default, PostgreSQL when a DSN is configured)
// and runs schema migration.
package repo

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/DavidCraggs/PropertySwipe-sub001/internal/domain"
)

// sqlitePragmas are applied to every SQLite connection: WAL keeps readers
// unblocked during the sweep loop, foreign_keys enforces the match and
// message cascades, busy_timeout absorbs writer contention.
var sqlitePragmas = []string{
	"PRAGMA journal_mode=WAL;",
	"PRAGMA synchronous=NORMAL;",
	"PRAGMA foreign_keys=ON;",
	"PRAGMA busy_timeout=5000;",
}

func tunePool(db *gorm.DB, maxOpen int) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// OpenSQLite opens (or creates) the SQLite file at path and applies the
// connection PRAGMAs. A missing parent directory is reported as the os
// error rather than the driver's opaque "out of memory (14)".
func OpenSQLite(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return nil, err
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	for _, pragma := range sqlitePragmas {
		db.Exec(pragma)
	}
	tunePool(db, 10)
	return db, nil
}

// OpenPostgres connects using a standard DSN or URL.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	tunePool(db, 25)
	return db, nil
}

// Open selects the backing store: Postgres when databaseURL is set,
// otherwise the embedded SQLite file at sqlitePath. Query spans are attached
// to the active trace via the GORM OpenTelemetry plugin.
func Open(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	if strings.TrimSpace(databaseURL) != "" {
		db, err = OpenPostgres(databaseURL)
	} else {
		db, err = OpenSQLite(sqlitePath)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Use(tracing.NewPlugin(tracing.WithoutMetrics())); err != nil {
		return nil, err
	}
	return db, nil
}

// AutoMigrate creates or updates the schema for every domain model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Property{},
		&domain.Interest{},
		&domain.Match{},
		&domain.Message{},
		&domain.Rating{},
		&domain.Idempotency{},
	)
}
