// Package postgres stores the state snapshot in a Postgres key-value table.
// The app_state table is created by the goose migrations in migrations/.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"torresapp/internal/core"
	"torresapp/internal/infra/storage"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Load(ctx context.Context) (core.AppState, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM app_state WHERE key = $1`, storage.StateKey,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return core.NewAppState(), nil
	}
	if err != nil {
		return core.NewAppState(), fmt.Errorf("select snapshot: %w", err)
	}
	return storage.Decode(payload)
}

func (s *Store) Save(ctx context.Context, state core.AppState) error {
	payload, err := storage.Encode(state)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO app_state(key, payload, updated_at) VALUES($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = now()
	`, storage.StateKey, payload)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
