package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ecagle/herald/internal/config"
	_ "modernc.org/sqlite"
)

// CurrentSchemaVersion is the latest schema version.
// Bump this when adding migrations.
const CurrentSchemaVersion = 1

// Init initializes the SQLite database at baseDir/herald.db.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.herald.
func Init(baseDir string) (*sql.DB, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)

	dbPath := filepath.Join(baseDir, "herald.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := verifyWALMode(db); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	_ = os.Chmod(dbPath, 0600)

	return db, nil
}

// ConfigurePool applies connection pool settings from config.
// Only sets limits if explicitly configured (non-zero values).
func ConfigurePool(db *sql.DB, cfg *config.Config) {
	if cfg == nil {
		return
	}
	if cfg.DBMaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	}
	if cfg.DBMaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	}
}

// migrate applies schema migrations based on user_version.
func migrate(db *sql.DB) error {
	version, err := GetUserVersion(db)
	if err != nil {
		return err
	}

	// Migration 0 -> 1: Initial schema (v1)
	if version < 1 {
		schema := `
		CREATE TABLE IF NOT EXISTS events (
		  id         TEXT PRIMARY KEY,
		  title      TEXT NOT NULL,
		  summary    TEXT,
		  starts_at  INTEGER NOT NULL,
		  url        TEXT,
		  image_url  TEXT,
		  score      REAL NOT NULL DEFAULT 0,
		  status     TEXT NOT NULL DEFAULT 'published',
		  created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_events_status_starts
		ON events(status, starts_at);

		CREATE TABLE IF NOT EXISTS articles (
		  id           TEXT PRIMARY KEY,
		  title        TEXT NOT NULL,
		  summary      TEXT,
		  published_at INTEGER NOT NULL,
		  url          TEXT,
		  image_url    TEXT,
		  score        REAL NOT NULL DEFAULT 0,
		  status       TEXT NOT NULL DEFAULT 'published',
		  story        INTEGER NOT NULL DEFAULT 0,
		  created_at   INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_articles_status_published
		ON articles(status, published_at DESC);

		CREATE TABLE IF NOT EXISTS resources (
		  id         TEXT PRIMARY KEY,
		  title      TEXT NOT NULL,
		  summary    TEXT,
		  url        TEXT,
		  image_url  TEXT,
		  score      REAL NOT NULL DEFAULT 0,
		  active     INTEGER NOT NULL DEFAULT 1,
		  created_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS intelligence (
		  id           TEXT PRIMARY KEY,
		  tag          TEXT NOT NULL,
		  payload_json TEXT NOT NULL,
		  stale        INTEGER NOT NULL DEFAULT 0,
		  updated_at   INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_intelligence_tag
		ON intelligence(tag, updated_at DESC)
		WHERE stale = 0;

		CREATE TABLE IF NOT EXISTS editions (
		  id              TEXT PRIMARY KEY,
		  edition_type    TEXT NOT NULL,
		  title           TEXT NOT NULL,
		  subject_line    TEXT NOT NULL,
		  html_content    TEXT NOT NULL,
		  sections_json   TEXT NOT NULL,
		  status          TEXT NOT NULL DEFAULT 'draft',
		  sendfox_list_id TEXT,
		  created_at      INTEGER NOT NULL,
		  updated_at      INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_editions_created
		ON editions(created_at DESC);
		`
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("migration 1 failed: %w", err)
		}
		if err := SetUserVersion(db, 1); err != nil {
			return err
		}
	}

	// Future migrations go here:
	// if version < 2 { ... }

	return nil
}

// verifyWALMode checks that WAL mode is active (set via connection string).
func verifyWALMode(db *sql.DB) error {
	var journalMode string
	if err := db.QueryRow("PRAGMA journal_mode;").Scan(&journalMode); err != nil {
		return fmt.Errorf("failed to verify journal mode: %w", err)
	}
	if journalMode != "wal" {
		return fmt.Errorf("expected WAL mode, got %s", journalMode)
	}
	return nil
}

// GetUserVersion returns the current schema version (user_version pragma).
func GetUserVersion(db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to get user_version: %w", err)
	}
	return version, nil
}

// SetUserVersion sets the schema version (user_version pragma).
func SetUserVersion(db *sql.DB, version int) error {
	_, err := db.Exec(fmt.Sprintf("PRAGMA user_version=%d", version))
	if err != nil {
		return fmt.Errorf("failed to set user_version: %w", err)
	}
	return nil
}
