package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps snapshots in a client_snapshots table, one row per key.
// Saves are full-row upserts, matching the overwrite discipline of the other
// backends.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pgx connection pool, verifies connectivity with a
// ping and wraps it in a snapshot store.
func ConnectPostgres(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.MaxConnLifetime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Pool exposes the underlying pool for migrations.
func (s *PostgresStore) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `
SELECT snapshot
FROM client_snapshots
WHERE snapshot_key = $1
`
	var data []byte
	if err := s.pool.QueryRow(ctx, q, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return data, true, nil
}

func (s *PostgresStore) Save(ctx context.Context, key string, data []byte) error {
	const q = `
INSERT INTO client_snapshots (snapshot_key, snapshot, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (snapshot_key)
DO UPDATE SET snapshot = EXCLUDED.snapshot, updated_at = now()
`
	if _, err := s.pool.Exec(ctx, q, key, data); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	const q = `
DELETE FROM client_snapshots
WHERE snapshot_key = $1
`
	if _, err := s.pool.Exec(ctx, q, key); err != nil {
		return fmt.Errorf("delete snapshot %s: %w", key, err)
	}
	return nil
}
