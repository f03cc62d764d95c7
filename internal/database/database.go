package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vedran77/replydesk/internal/config"
)

func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, cfg.DSN())

	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS operators (
	id            UUID PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	display_name  TEXT NOT NULL,
	company_name  TEXT,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS conversations (
	id         TEXT PRIMARY KEY,
	position   BIGSERIAL,
	owner_id   UUID NOT NULL REFERENCES operators(id) ON DELETE CASCADE,
	sender     TEXT NOT NULL,
	platform   TEXT NOT NULL CHECK (platform IN ('messenger', 'instagram', 'website')),
	unread     BOOLEAN NOT NULL DEFAULT TRUE,
	starred    BOOLEAN NOT NULL DEFAULT FALSE,
	paused     BOOLEAN NOT NULL DEFAULT FALSE,
	archived   BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL,
	CHECK (NOT (starred AND archived))
);

CREATE INDEX IF NOT EXISTS conversations_owner_idx ON conversations (owner_id, position);

CREATE TABLE IF NOT EXISTS messages (
	id               TEXT PRIMARY KEY,
	seq              BIGSERIAL,
	conversation_id  TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	role             TEXT NOT NULL CHECK (role IN ('user', 'bot')),
	content          TEXT NOT NULL,
	original_content TEXT,
	showing_original BOOLEAN NOT NULL DEFAULT FALSE,
	display_time     TEXT NOT NULL,
	sent_at          TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS messages_conversation_idx ON messages (conversation_id, seq);
`

// Migrate creates the tables the repositories expect if they are missing.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}
