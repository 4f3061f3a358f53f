package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRecords struct {
	db *pgxpool.Pool
}

// NewPostgresRecords stores records in the store_cache table, see MigratePostgres.
func NewPostgresRecords(db *pgxpool.Pool) RecordStore {
	return &postgresRecords{db: db}
}

// MigratePostgres creates the store_cache table when it does not exist yet.
func MigratePostgres(ctx context.Context, db *pgxpool.Pool) error {
	query := `
				CREATE TABLE IF NOT EXISTS store_cache
				(
					key        text primary key,
					value      bytea not null,
					updated_at timestamp with time zone not null default now()
				)`
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("exec %v", err)
	}
	return nil
}

func (r *postgresRecords) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM store_cache WHERE key = $1`
	var value []byte
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("exec %w", err)
	}
	return value, nil
}

func (r *postgresRecords) Set(ctx context.Context, key string, value []byte) error {
	query := `
				INSERT INTO store_cache (key, value, updated_at) VALUES ($1, $2, now())
				ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
				`
	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("exec %w", err)
	}
	return nil
}

func (r *postgresRecords) Delete(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM store_cache WHERE key = $1`, key); err != nil {
		return fmt.Errorf("exec %w", err)
	}
	return nil
}
