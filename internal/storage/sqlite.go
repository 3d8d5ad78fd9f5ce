package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/migration"
	"github.com/julianstephens/tally/migrations"
)

const sqliteUpsert = `
	INSERT INTO documents (key, body, updated_at, size_bytes)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET
		body = excluded.body,
		updated_at = excluded.updated_at,
		size_bytes = excluded.size_bytes`

// SQLiteBackend stores documents as rows of a single SQLite table.
type SQLiteBackend struct {
	path string
	db   *sql.DB
}

// NewSQLiteBackend returns a backend for the database at path. Call Open
// before use.
func NewSQLiteBackend(path string) *SQLiteBackend {
	return &SQLiteBackend{path: path}
}

// Open creates the database if needed and applies pending migrations.
func (b *SQLiteBackend) Open() error {
	if b.db != nil {
		return nil
	}

	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", b.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection serializes writers inside the process.
	db.SetMaxOpenConns(1)
	b.db = db

	if err := b.runMigrations(); err != nil {
		db.Close()
		b.db = nil
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (b *SQLiteBackend) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(b.db, subFS, migration.DialectSQLite)
	_, err = runner.ApplyMigrations(func(msg string) {
		logger.Debug(msg)
	})
	return err
}

// Runner returns a migration runner bound to the open database.
func (b *SQLiteBackend) Runner() (*migration.Runner, error) {
	if b.db == nil {
		return nil, fmt.Errorf("database not open")
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, err
	}
	return migration.NewRunner(b.db, subFS, migration.DialectSQLite), nil
}

func (b *SQLiteBackend) Get(key string) ([]byte, error) {
	if b.db == nil {
		return nil, fmt.Errorf("database not open")
	}

	var body string
	err := b.db.QueryRow("SELECT body FROM documents WHERE key = ?", key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return []byte(body), nil
}

func (b *SQLiteBackend) Set(key string, data []byte) error {
	if b.db == nil {
		return fmt.Errorf("database not open")
	}

	_, err := b.db.Exec(sqliteUpsert, key, string(data), time.Now().UTC().Format(time.RFC3339), len(data))
	return err
}

// SetMany upserts every document in one transaction.
func (b *SQLiteBackend) SetMany(docs map[string][]byte) error {
	if b.db == nil {
		return fmt.Errorf("database not open")
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339)
	for key, data := range docs {
		if _, err := tx.Exec(sqliteUpsert, key, string(data), now, len(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (b *SQLiteBackend) Erase(key string) error {
	if b.db == nil {
		return fmt.Errorf("database not open")
	}
	_, err := b.db.Exec("DELETE FROM documents WHERE key = ?", key)
	return err
}

func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

func (b *SQLiteBackend) Location() string { return b.path }

// Path returns the database file path.
func (b *SQLiteBackend) Path() string { return b.path }
