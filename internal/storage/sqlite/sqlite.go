// Package sqlite provides a SQLite-backed implementation of the
// storage.KeyValue slot using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. A two-column table is all a key-value slot needs.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aanand-mishra/student-roster/internal/storage"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

var _ storage.KeyValue = (*SQLite)(nil)

// SQLite is the concrete implementation of storage.KeyValue.
// It holds a *sql.DB which is a connection pool managed by database/sql.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the kv table if it does
// not already exist, and returns a ready-to-use *SQLite.
func New(path string) (*SQLite, error) {
	// The driver creates the file but not its directory.
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: mkdir: %w", err)
		}
	}

	// sql.Open does NOT open a real connection yet - it just validates
	// the driver name and data source name (DSN).
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// One writer at a time; a single connection also keeps ":memory:"
	// databases alive for the life of the pool.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: ping: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent - safe to run on every
	// startup.
	//
	// Schema:
	//   key   - slot name, e.g. "students"
	//   value - the serialized snapshot
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Open adapts New to storage.Opener.
func Open(path string) (storage.KeyValue, error) {
	return New(path)
}

// GetItem fetches the value stored under key.
func (s *SQLite) GetItem(key string) (string, bool, error) {
	stmt, err := s.Db.Prepare("SELECT value FROM kv WHERE key = ? LIMIT 1")
	if err != nil {
		return "", false, fmt.Errorf("GetItem: prepare: %w", err)
	}
	defer stmt.Close()

	var value string
	err = stmt.QueryRow(key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Never set: not an error for a slot.
			return "", false, nil
		}
		return "", false, fmt.Errorf("GetItem: scan: %w", err)
	}

	return value, true, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// SetItem upserts the value under key.
//
// ON CONFLICT(key) DO UPDATE turns the INSERT into an UPDATE when the key
// already exists, so the slot is always a full overwrite in one statement.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) SetItem(key, value string) error {
	stmt, err := s.Db.Prepare(
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
	)
	if err != nil {
		return fmt.Errorf("SetItem: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(key, value); err != nil {
		return fmt.Errorf("SetItem: exec: %w", err)
	}

	return nil
}

// RemoveItem deletes the row for key.
func (s *SQLite) RemoveItem(key string) error {
	stmt, err := s.Db.Prepare("DELETE FROM kv WHERE key = ?")
	if err != nil {
		return fmt.Errorf("RemoveItem: prepare: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(key); err != nil {
		return fmt.Errorf("RemoveItem: exec: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
