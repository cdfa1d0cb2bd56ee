package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         SERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id         SERIAL PRIMARY KEY,
		winner     INTEGER NOT NULL CONSTRAINT matches_winner_fkey REFERENCES players (id),
		loser      INTEGER NOT NULL CONSTRAINT matches_loser_fkey REFERENCES players (id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT matches_distinct_players CHECK (winner <> loser)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches (winner)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_loser ON matches (loser)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS players (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS matches (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		winner     INTEGER NOT NULL REFERENCES players (id),
		loser      INTEGER NOT NULL REFERENCES players (id),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT matches_distinct_players CHECK (winner <> loser)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches (winner)`,
	`CREATE INDEX IF NOT EXISTS idx_matches_loser ON matches (loser)`,
}

// Migrate creates the players and matches tables if they are missing.
func Migrate(ctx context.Context, conn *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverPostgres:
		stmts = postgresSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
