// Package prelude loads external modules into a checker.ExternPrelude
// (§4.F phase 1, §6.2) and caches the fact that a module's sources were
// last seen unchanged, so a driver compiling many sibling packages in the
// same project doesn't re-parse and re-build a prelude module's arena on
// every compilation. The cache is content-addressed by module path plus
// a hash of its concatenated source bytes; a stale row is simply a miss.
package prelude

import "time"

// CacheEntry is the persisted row for one prelude module: the last source
// hash it was built from and when that build happened. It carries no AST
// data itself — the arena lives only in the in-process Loader cache for
// the lifetime of one driver run; the database row's sole purpose is to
// let the Loader answer "has modulePath changed since I last looked at
// it" by comparing the stored hash with a hash of the module's sources,
// which the Loader re-reads and re-hashes on every Load.
type CacheEntry struct {
	ModulePath string `gorm:"primaryKey"`
	SourceHash string `gorm:"not null"`
	UpdatedAt  time.Time
}

func (CacheEntry) TableName() string { return "prelude_cache" }
