package prelude

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Store wraps the on-disk prelude-freshness cache (§ DOMAIN STACK,
// `internal/prelude`). It uses the pure-Go glebarez/sqlite driver so the
// CLI stays cgo-free, the way termfx-morfx's db package picks its dialect
// based on the DSN before handing it to gorm.Open.
type Store struct {
	db *gorm.DB
}

// Open connects to the sqlite database at dsn, creating its parent
// directory and running migrations if needed.
func Open(dsn string, debug bool) (*Store, error) {
	if dir := filepath.Dir(dsn); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("prelude: creating cache directory: %w", err)
		}
	}

	config := &gorm.Config{}
	if debug {
		config.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), config)
	if err != nil {
		return nil, fmt.Errorf("prelude: opening cache database: %w", err)
	}
	if err := db.AutoMigrate(&CacheEntry{}); err != nil {
		return nil, fmt.Errorf("prelude: migrating cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Fresh reports whether modulePath's last recorded source hash still
// matches sourceHash — i.e. whether its sources have not changed since
// the last time it was loaded.
func (s *Store) Fresh(modulePath, sourceHash string) (bool, error) {
	var entry CacheEntry
	err := s.db.Where("module_path = ?", modulePath).First(&entry).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, nil
		}
		return false, fmt.Errorf("prelude: looking up cache entry for %s: %w", modulePath, err)
	}
	return entry.SourceHash == sourceHash, nil
}

// Record upserts modulePath's current source hash, marking it fresh for
// future lookups until its sources change again. A plain Save won't do
// here: gorm's Save issues an UPDATE whenever the primary key is set,
// which silently affects zero rows the first time a module is recorded.
func (s *Store) Record(modulePath, sourceHash string) error {
	entry := CacheEntry{ModulePath: modulePath, SourceHash: sourceHash, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "module_path"}},
		DoUpdates: clause.AssignmentColumns([]string{"source_hash", "updated_at"}),
	}).Create(&entry).Error
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
