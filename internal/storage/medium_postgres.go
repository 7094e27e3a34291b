package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/easyclick/support-desk/internal/config"
)

const storageBlobsSchema = `
CREATE TABLE IF NOT EXISTS storage_blobs (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

// PostgresMedium stores each key as a row in a single key-value table. The
// upsert write keeps the whole-value-replace semantics the reconciler
// expects.
type PostgresMedium struct {
	pool *pgxpool.Pool
}

// NewPostgresMedium establishes a connection pool and ensures the blob table
// exists.
func NewPostgresMedium(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*PostgresMedium, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	if _, err := pool.Exec(ctx, storageBlobsSchema); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &PostgresMedium{pool: pool}, nil
}

// Get returns the stored value for key.
func (m *PostgresMedium) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := m.pool.QueryRow(ctx, `SELECT value FROM storage_blobs WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts the value for key.
func (m *PostgresMedium) Set(ctx context.Context, key, value string) error {
	_, err := m.pool.Exec(ctx, `
		INSERT INTO storage_blobs (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		key, value)
	return err
}

// Delete removes key.
func (m *PostgresMedium) Delete(ctx context.Context, key string) error {
	_, err := m.pool.Exec(ctx, `DELETE FROM storage_blobs WHERE key = $1`, key)
	return err
}

// Ping verifies database connectivity.
func (m *PostgresMedium) Ping(ctx context.Context) error {
	if m == nil || m.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return m.pool.Ping(ctx)
}

// Close releases pool resources.
func (m *PostgresMedium) Close() {
	if m != nil && m.pool != nil {
		m.pool.Close()
	}
}
