// Package sqlitedb opens the local SQLite database shared by the SQLite
// repositories and keeps its schema current.
package sqlitedb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SchemaVersion is the current schema version of the local database.
const SchemaVersion = 1

// Open opens or creates the database at path and migrates it.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("open: path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("open: create dir: %w", err)
		}
	}

	dsn := "file:" + path + "?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	// a single writer avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open: ping: %w", err)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

var schema = []struct {
	name string
	stmt string
}{
	{"users table", `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL DEFAULT '',
			birthdate TEXT NOT NULL DEFAULT '',
			zodiac TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'zh',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`},
	{"idx_users_email", `CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);`},
	{"identities table", `
		CREATE TABLE IF NOT EXISTS identities (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			provider TEXT NOT NULL,
			provider_subject TEXT NOT NULL,
			provider_email TEXT NOT NULL DEFAULT '',
			refresh_token TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			UNIQUE(provider, provider_subject),
			UNIQUE(user_id, provider),
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		);`},
	{"horoscopes table", `
		CREATE TABLE IF NOT EXISTS horoscopes (
			id TEXT PRIMARY KEY,
			sign TEXT NOT NULL,
			period TEXT NOT NULL,
			date TEXT NOT NULL,
			language TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE(sign, period, date, language)
		);`},
	{"idx_horoscopes_date", `CREATE INDEX IF NOT EXISTS idx_horoscopes_date ON horoscopes(date);`},
}

// Migrate ensures the schema exists and is at SchemaVersion.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`); err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range schema {
		if _, err := tx.Exec(step.stmt); err != nil {
			return fmt.Errorf("migrate: create %s: %w", step.name, err)
		}
	}
	if _, err := tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion); err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}
	return nil
}
