package db

import (
	"context"
)

const usersMigration = `
CREATE TABLE IF NOT EXISTS users (
    id bigserial PRIMARY KEY,
    username text NOT NULL,
    password_hash text NOT NULL,
    hash_version text NOT NULL DEFAULT 'bcrypt',
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_unique
ON users (username);
`

func RunMigration(ctx context.Context, db *DB) error {
	_, err := db.ExecContext(ctx, usersMigration)
	return err
}
