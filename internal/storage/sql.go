package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kampus/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type dialect struct {
	name   string
	get    string
	upsert string
	delete string
}

var (
	postgresDialect = dialect{
		name:   "postgres",
		get:    `SELECT payload FROM kv_snapshots WHERE storage_key = $1`,
		upsert: `INSERT INTO kv_snapshots (storage_key, payload, updated_at) VALUES ($1, $2, $3) ON CONFLICT (storage_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		delete: `DELETE FROM kv_snapshots WHERE storage_key = $1`,
	}

	sqliteDialect = dialect{
		name:   "sqlite",
		get:    `SELECT payload FROM kv_snapshots WHERE storage_key = ?`,
		upsert: `INSERT INTO kv_snapshots (storage_key, payload, updated_at) VALUES (?, ?, ?) ON CONFLICT (storage_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		delete: `DELETE FROM kv_snapshots WHERE storage_key = ?`,
	}
)

// The postgres table is owned by migrations; sqlite creates its own on open.
const sqliteSchema = `CREATE TABLE IF NOT EXISTS kv_snapshots (
	storage_key TEXT PRIMARY KEY,
	payload     TEXT NOT NULL,
	updated_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type sqlStorage struct {
	db      *sqlx.DB
	dialect dialect
}

func NewPostgres(db *sqlx.DB) Storage {
	return &sqlStorage{db: db, dialect: postgresDialect}
}

func NewSQLite(ctx context.Context, db *sqlx.DB) (Storage, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("failed to create sqlite schema: %w", err)
	}

	return &sqlStorage{db: db, dialect: sqliteDialect}, nil
}

func (s *sqlStorage) Get(ctx context.Context, key string) (string, error) {
	var payload string

	err := s.db.GetContext(ctx, &payload, s.dialect.get, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}

	if err != nil {
		log.Error().Err(err).Str("key", key).Str("storage", s.dialect.name).Msg("failed to get value")

		return "", fmt.Errorf("failed to get %s value: %w", s.dialect.name, err)
	}

	return payload, nil
}

func (s *sqlStorage) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value, timezone.Now()); err != nil {
		log.Error().Err(err).Str("key", key).Str("storage", s.dialect.name).Msg("failed to set value")

		return fmt.Errorf("failed to set %s value: %w", s.dialect.name, err)
	}

	return nil
}

func (s *sqlStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.delete, key); err != nil {
		log.Error().Err(err).Str("key", key).Str("storage", s.dialect.name).Msg("failed to delete value")

		return fmt.Errorf("failed to delete %s value: %w", s.dialect.name, err)
	}

	return nil
}

func (s *sqlStorage) Close() error {
	return s.db.Close()
}
