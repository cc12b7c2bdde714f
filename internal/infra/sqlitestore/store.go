package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store keeps quotes, tasks and search history in a single sqlite file.
type Store struct {
	db *sql.DB
}

type OpenOptions struct {
	Fast bool
}

func Open(path string) (*Store, error) {
	return OpenWithOptions(path, OpenOptions{})
}

func OpenWithOptions(path string, opts OpenOptions) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path required")
	}

	if shouldCreateDir(path) {
		dir := filepath.Dir(path)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &Store{db: db}
	if err := store.applyPragmas(context.Background(), opts); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var schema = []struct {
	name string
	stmt string
}{
	{"quotes", `
		CREATE TABLE IF NOT EXISTS quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quote TEXT NOT NULL,
			author TEXT NOT NULL
		)
	`},
	{"daily_quotes", `
		CREATE TABLE IF NOT EXISTS daily_quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			quote_id INTEGER NOT NULL REFERENCES quotes(id),
			time_stamp INTEGER NOT NULL
		)
	`},
	{"tasks", `
		CREATE TABLE IF NOT EXISTS tasks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			task TEXT NOT NULL,
			description TEXT,
			status TEXT NOT NULL CHECK (status IN ('incomplete', 'complete')),
			time_stamp INTEGER NOT NULL,
			due_date INTEGER,
			renewal_duration INTEGER
		)
	`},
	{"task_relations", `
		CREATE TABLE IF NOT EXISTS task_relations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			parent_id INTEGER NOT NULL REFERENCES tasks(id),
			child_id INTEGER NOT NULL UNIQUE REFERENCES tasks(id)
		)
	`},
	{"searches", `
		CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			website TEXT,
			allintext TEXT,
			time_stamp INTEGER NOT NULL
		)
	`},
	{"searches_time_stamp", `
		CREATE INDEX IF NOT EXISTS searches_time_stamp ON searches (time_stamp)
	`},
}

func (s *Store) initSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		return fmt.Errorf("enable foreign keys: %w", err)
	}
	for _, table := range schema {
		if _, err := s.db.ExecContext(ctx, table.stmt); err != nil {
			return fmt.Errorf("create %s: %w", table.name, err)
		}
	}
	return nil
}

func (s *Store) applyPragmas(ctx context.Context, opts OpenOptions) error {
	if !opts.Fast {
		return nil
	}
	var mode string
	if err := s.db.QueryRowContext(ctx, "PRAGMA journal_mode = WAL").Scan(&mode); err != nil {
		return fmt.Errorf("set journal_mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA synchronous = NORMAL"); err != nil {
		return fmt.Errorf("set synchronous: %w", err)
	}
	return nil
}

func shouldCreateDir(path string) bool {
	if path == ":memory:" {
		return false
	}
	if strings.HasPrefix(path, "file:") {
		return false
	}
	return true
}

// Timestamps are stored as unix seconds and read back in local time.
func toUnix(t time.Time) int64 {
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	return time.Unix(sec, 0)
}

func nullUnix(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
