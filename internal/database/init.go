package database

import (
	"context"
	"fmt"

	"github.com/yourusername/jackpot-builder/internal/config"
)

// schema holds the table definitions for the jackpot store. Durability
// beyond a plain Postgres instance is out of scope; there is no migration
// tooling, just idempotent bootstrap.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS jackpots (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		week INT NOT NULL,
		stake NUMERIC(12,2) NOT NULL DEFAULT 0,
		status TEXT NOT NULL DEFAULT 'open',
		deadline TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS fixtures (
		id UUID PRIMARY KEY,
		jackpot_id UUID NOT NULL REFERENCES jackpots(id) ON DELETE CASCADE,
		position INT NOT NULL,
		home_team TEXT NOT NULL,
		away_team TEXT NOT NULL,
		league TEXT NOT NULL DEFAULT '',
		kickoff TIMESTAMPTZ NOT NULL,
		source TEXT NOT NULL DEFAULT '',
		home_odds NUMERIC(8,2),
		draw_odds NUMERIC(8,2),
		away_odds NUMERIC(8,2),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		UNIQUE (jackpot_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS predictions (
		id UUID PRIMARY KEY,
		jackpot_id UUID NOT NULL REFERENCES jackpots(id) ON DELETE CASCADE,
		fixture_id UUID NOT NULL REFERENCES fixtures(id) ON DELETE CASCADE,
		outcome TEXT NOT NULL,
		confidence INT NOT NULL,
		reasoning TEXT NOT NULL,
		strategy TEXT NOT NULL,
		wildcard BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fixtures_jackpot ON fixtures (jackpot_id, position)`,
	`CREATE INDEX IF NOT EXISTS idx_predictions_jackpot ON predictions (jackpot_id)`,
}

// Initialize creates a database connection pool and bootstraps the schema
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, stmt := range schema {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to bootstrap schema: %w", err)
		}
	}

	return db, nil
}
