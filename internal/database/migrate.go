package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate bootstraps the schema. Statements are idempotent and run in one
// transaction so a failed startup never leaves a half-created schema.
func (db *DB) Migrate(ctx context.Context) error {
	return db.WithTx(ctx, func(tx *sqlx.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}
		return nil
	})
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS blogs (
		id         BIGINT PRIMARY KEY,
		slug       TEXT NOT NULL,
		title      TEXT NOT NULL,
		excerpt    TEXT NOT NULL DEFAULT '',
		author     TEXT NOT NULL DEFAULT '',
		date       TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		tags       TEXT[] NOT NULL DEFAULT '{}',
		image_url  TEXT NOT NULL DEFAULT '',
		is_pinned  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS blogs_slug_key ON blogs (slug)`,

	`CREATE TABLE IF NOT EXISTS news (
		id         BIGINT PRIMARY KEY,
		slug       TEXT NOT NULL,
		title      TEXT NOT NULL,
		subtitle   TEXT NOT NULL DEFAULT '',
		content    TEXT NOT NULL DEFAULT '',
		layout     TEXT NOT NULL DEFAULT '',
		author     TEXT NOT NULL DEFAULT '',
		tags       TEXT[] NOT NULL DEFAULT '{}',
		image_urls TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS news_slug_key ON news (slug)`,

	`CREATE TABLE IF NOT EXISTS onboard_requests (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL,
		email        TEXT NOT NULL,
		organisation TEXT NOT NULL,
		title        TEXT NOT NULL,
		message      TEXT NOT NULL,
		meeting_date TEXT NOT NULL,
		meeting_time TEXT NOT NULL,
		meeting_id   TEXT NOT NULL,
		meeting_link TEXT,
		approved     BOOLEAN,
		done         BOOLEAN,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS onboard_requests_approved_idx ON onboard_requests (approved, done)`,
}
