package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPool creates a pgx connection pool from the DSN and pings it to make
// sure the connection is valid.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// EnsureSchema creates the reservations table and, unless multiple active
// reservations per party are allowed, the partial unique index that backs
// the one-active-per-party invariant at the schema level.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, enforceSingleActive bool) error {
	const table = `
CREATE TABLE IF NOT EXISTS public.reservations (
	id         uuid PRIMARY KEY,
	party_id   text NOT NULL,
	name       text NOT NULL,
	phone      text NOT NULL,
	date       date NOT NULL,
	slot_label text NOT NULL,
	party_size int  NOT NULL CHECK (party_size >= 1),
	status     text NOT NULL CHECK (status IN ('active', 'cancelled', 'completed')),
	created_at timestamptz NOT NULL DEFAULT now(),
	updated_at timestamptz NOT NULL DEFAULT now()
)`
	if _, err := pool.Exec(ctx, table); err != nil {
		return fmt.Errorf("failed to create reservations table: %w", err)
	}

	const dateIndex = `
CREATE INDEX IF NOT EXISTS reservations_active_date
ON public.reservations (date) WHERE status = 'active'`
	if _, err := pool.Exec(ctx, dateIndex); err != nil {
		return fmt.Errorf("failed to create date index: %w", err)
	}

	if enforceSingleActive {
		const uniqueActive = `
CREATE UNIQUE INDEX IF NOT EXISTS reservations_one_active_per_party
ON public.reservations (party_id) WHERE status = 'active'`
		if _, err := pool.Exec(ctx, uniqueActive); err != nil {
			return fmt.Errorf("failed to create active-uniqueness index: %w", err)
		}
	}

	return nil
}
