package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/tally/internal/logger"
	"github.com/julianstephens/tally/internal/migration"
	"github.com/julianstephens/tally/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

const postgresUpsert = `
	INSERT INTO documents (key, body, updated_at, size_bytes)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (key) DO UPDATE SET
		body = EXCLUDED.body,
		updated_at = EXCLUDED.updated_at,
		size_bytes = EXCLUDED.size_bytes`

// PostgresBackend stores documents as JSONB rows.
type PostgresBackend struct {
	connStr string
	db      *sql.DB
}

// NewPostgresBackend returns a backend for connStr. Call Open before use.
func NewPostgresBackend(connStr string) *PostgresBackend {
	return &PostgresBackend{connStr: connStr}
}

// Open connects and applies pending migrations.
func (b *PostgresBackend) Open() error {
	if b.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", b.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	b.db = db

	runner, err := b.Runner()
	if err != nil {
		return err
	}
	if _, err := runner.ApplyMigrations(func(msg string) { logger.Debug(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Runner returns a migration runner bound to the open database.
func (b *PostgresBackend) Runner() (*migration.Runner, error) {
	if b.db == nil {
		return nil, fmt.Errorf("database not open")
	}
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewRunner(b.db, subFS, migration.DialectPostgres), nil
}

func (b *PostgresBackend) Get(key string) ([]byte, error) {
	if b.db == nil {
		return nil, fmt.Errorf("database not open")
	}

	var body []byte
	err := b.db.QueryRow("SELECT body FROM documents WHERE key = $1", key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return body, nil
}

func (b *PostgresBackend) Set(key string, data []byte) error {
	if b.db == nil {
		return fmt.Errorf("database not open")
	}

	_, err := b.db.Exec(postgresUpsert, key, string(data), time.Now().UTC(), len(data))
	return err
}

// SetMany upserts every document in one transaction.
func (b *PostgresBackend) SetMany(docs map[string][]byte) error {
	if b.db == nil {
		return fmt.Errorf("database not open")
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for key, data := range docs {
		if _, err := tx.Exec(postgresUpsert, key, string(data), now, len(data)); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (b *PostgresBackend) Erase(key string) error {
	if b.db == nil {
		return fmt.Errorf("database not open")
	}
	_, err := b.db.Exec("DELETE FROM documents WHERE key = $1", key)
	return err
}

func (b *PostgresBackend) Close() error {
	if b.db != nil {
		err := b.db.Close()
		b.db = nil
		return err
	}
	return nil
}

func (b *PostgresBackend) Location() string {
	if u, err := url.Parse(b.connStr); err == nil && u.Host != "" {
		return u.Host + u.Path
	}
	return "postgres"
}

// ValidateConnString checks if a connection string is a valid PostgreSQL
// connection string (URI or DSN) and that it does not contain a password.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if isPostgresURL(connStr) {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}
		if _, isSet := parsedURL.User.Password(); isSet {
			return ErrEmbeddedCredentials
		}
		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
		return nil
	}

	for _, pair := range strings.Fields(connStr) {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) == 2 && strings.EqualFold(strings.TrimSpace(parts[0]), "password") {
			return ErrEmbeddedCredentials
		}
	}
	return nil
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}
