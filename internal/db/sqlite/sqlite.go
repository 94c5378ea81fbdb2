package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AI2HU/gdc/internal/models"
)

// SQLite implements the counter store on a local SQLite file
type SQLite struct {
	db      *sql.DB
	config  *models.Config
	version uint
}

// New creates a new SQLite store instance
func New(config *models.Config) (*SQLite, error) {
	if config.URI == "" {
		return nil, fmt.Errorf("sqlite counter store requires a database path")
	}
	return &SQLite{
		config: config,
	}, nil
}

func (s *SQLite) Name() string { return "sqlite" }

// Connect opens the database file and brings the schema up to date
func (s *SQLite) Connect(ctx context.Context) error {
	db, err := Open(ctx, s.config.URI)
	if err != nil {
		return err
	}

	version, err := RunMigrations(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	s.version = version
	return nil
}

// Open opens and pings the SQLite database at uri without touching the schema
func Open(ctx context.Context, uri string) (*sql.DB, error) {
	dbPath, err := resolvePath(uri)
	if err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database at path '%s': %w", dbPath, err)
	}
	if dbPath == ":memory:" {
		// each pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database at path '%s': %w", dbPath, err)
	}

	return db, nil
}

// Disconnect closes the SQLite connection
func (s *SQLite) Disconnect(ctx context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ping checks the database connection
func (s *SQLite) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("not connected to database")
	}
	return s.db.PingContext(ctx)
}

// SchemaVersion returns the migration version applied on Connect
func (s *SQLite) SchemaVersion() uint {
	return s.version
}

// Get returns the value under key
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	if s.db == nil {
		return "", false, fmt.Errorf("not connected to database")
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM view_counters WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get counter: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value under key
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if s.db == nil {
		return fmt.Errorf("not connected to database")
	}

	query := `
	INSERT INTO view_counters (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set counter: %w", err)
	}
	return nil
}

// Keys lists keys starting with prefix
func (s *SQLite) Keys(ctx context.Context, prefix string) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT key FROM view_counters WHERE substr(key, 1, ?) = ? ORDER BY key`,
		len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list counters: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan counter key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// resolvePath expands ~ and makes relative paths absolute
func resolvePath(uri string) (string, error) {
	if uri == ":memory:" {
		return uri, nil
	}
	if strings.HasPrefix(uri, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, uri[1:]), nil
	}
	abs, err := filepath.Abs(uri)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}
	return abs, nil
}
