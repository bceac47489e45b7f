package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the aws_accounts table definition. Applied idempotently on
// startup; a real migration tool is overkill for a single table.
const Schema = `
CREATE TABLE IF NOT EXISTS aws_accounts (
	id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id         uuid NOT NULL,
	account_id      char(12) NOT NULL,
	account_name    text NOT NULL,
	role_arn        text NOT NULL,
	description     text,
	region          text NOT NULL DEFAULT 'us-east-1',
	is_active       boolean NOT NULL DEFAULT true,
	last_assumed_at timestamptz,
	last_error      text,
	created_at      timestamptz NOT NULL DEFAULT now(),
	updated_at      timestamptz NOT NULL DEFAULT now(),
	UNIQUE (user_id, account_id)
);
`

// Migrate applies the schema.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, Schema)
	return err
}
