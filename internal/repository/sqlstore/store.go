// Package sqlstore keeps the key-value collections in a single SQL table.
// The same statements run on PostgreSQL (lib/pq) and SQLite (modernc).
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"clubroster/internal/domain"
)

const (
	createTableQuery = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			entry_key   TEXT PRIMARY KEY,
			entry_value TEXT NOT NULL,
			updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	getQuery = `SELECT entry_value FROM kv_entries WHERE entry_key = $1`
	upsertQuery = `
		INSERT INTO kv_entries (entry_key, entry_value, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (entry_key) DO UPDATE
		SET entry_value = EXCLUDED.entry_value, updated_at = EXCLUDED.updated_at
	`
)

// Store implements domain.KeyValueStore on database/sql.
type Store struct {
	DB *sql.DB
}

// New wraps an open database. The caller owns migrations; see Migrate.
func New(db *sql.DB) *Store {
	return &Store{DB: db}
}

// OpenPostgres connects to PostgreSQL and verifies the connection.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	return open(ctx, "postgres", dsn)
}

// OpenSQLite opens (creating if needed) a SQLite database file.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	s, err := open(ctx, "sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers; one connection avoids SQLITE_BUSY on upserts.
	s.DB.SetMaxOpenConns(1)
	return s, nil
}

func open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, wrapErr(err))
	}
	return New(db), nil
}

// Migrate creates the kv_entries table when missing.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create kv_entries: %w", wrapErr(err))
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.DB.QueryRowContext(ctx, getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get %q: %w", key, wrapErr(err))
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if _, err := s.DB.ExecContext(ctx, upsertQuery, key, value); err != nil {
		return fmt.Errorf("set %q: %w", key, wrapErr(err))
	}
	return nil
}

// SetMany upserts all entries in one transaction.
func (s *Store) SetMany(ctx context.Context, entries ...domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", wrapErr(err))
	}
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, upsertQuery, e.Key, e.Value); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("set %q: %w", e.Key, wrapErr(err))
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", wrapErr(err))
	}
	return nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// wrapErr prefixes PostgreSQL errors with their SQLSTATE code.
func wrapErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("postgres %s: %w", pqErr.Code, err)
	}
	return err
}
