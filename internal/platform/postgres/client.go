package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"cleanhome/internal/platform/config"
)

// Client wraps the database/sql handle for the outcome ledger.
type Client struct {
	*sql.DB
}

// New opens and pings a PostgreSQL connection through lib/pq.
// Returns nil if the URL is empty (database not configured).
func New(ctx context.Context, cfg config.DatabaseConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Client{DB: db}, nil
}

// Health checks if the database connection is healthy.
func (c *Client) Health(ctx context.Context) error {
	return c.PingContext(ctx)
}
