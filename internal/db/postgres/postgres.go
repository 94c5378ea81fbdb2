package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/AI2HU/gdc/internal/models"
)

// Postgres implements the counter store on PostgreSQL
type Postgres struct {
	db     *sql.DB
	config *models.Config
}

// New creates a new Postgres store instance
func New(config *models.Config) (*Postgres, error) {
	if config.URI == "" {
		return nil, fmt.Errorf("postgres counter store requires a connection URI")
	}
	return &Postgres{
		config: config,
	}, nil
}

func (p *Postgres) Name() string { return "postgres" }

// Connect opens the connection pool and creates the counters table
func (p *Postgres) Connect(ctx context.Context) error {
	db, err := sql.Open("postgres", p.config.URI)
	if err != nil {
		return fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping postgres: %w", err)
	}

	p.db = db

	if err := p.createTables(ctx); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	return nil
}

// Disconnect closes the connection pool
func (p *Postgres) Disconnect(ctx context.Context) error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}

// Ping checks the database connection
func (p *Postgres) Ping(ctx context.Context) error {
	if p.db == nil {
		return fmt.Errorf("not connected to database")
	}
	return p.db.PingContext(ctx)
}

func (p *Postgres) createTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS view_counters (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_view_counters_updated_at ON view_counters(updated_at)`,
	}

	for _, query := range queries {
		if _, err := p.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}
	return nil
}

// Get returns the value under key
func (p *Postgres) Get(ctx context.Context, key string) (string, bool, error) {
	if p.db == nil {
		return "", false, fmt.Errorf("not connected to database")
	}

	var value string
	err := p.db.QueryRowContext(ctx, `SELECT value FROM view_counters WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get counter: %w", err)
	}
	return value, true, nil
}

// Set overwrites the value under key
func (p *Postgres) Set(ctx context.Context, key, value string) error {
	if p.db == nil {
		return fmt.Errorf("not connected to database")
	}

	query := `
		INSERT INTO view_counters (key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := p.db.ExecContext(ctx, query, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to set counter: %w", err)
	}
	return nil
}

// Keys lists keys starting with prefix
func (p *Postgres) Keys(ctx context.Context, prefix string) ([]string, error) {
	if p.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT key FROM view_counters WHERE left(key, $1) = $2 ORDER BY key`,
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
