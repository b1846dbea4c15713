package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/jackpot-builder/internal/database"
	"github.com/yourusername/jackpot-builder/internal/models"
)

// PostgresFixtureRepository implements FixtureRepository for PostgreSQL
type PostgresFixtureRepository struct {
	db *database.DB
}

// NewPostgresFixtureRepository creates a new fixture repository
func NewPostgresFixtureRepository(db *database.DB) FixtureRepository {
	return &PostgresFixtureRepository{db: db}
}

// CreateBatch inserts fixtures in a single transaction
func (r *PostgresFixtureRepository) CreateBatch(ctx context.Context, fixtures []*models.Fixture) error {
	if len(fixtures) == 0 {
		return nil
	}

	query := `
		INSERT INTO fixtures (id, jackpot_id, position, home_team, away_team, league, kickoff, source, home_odds, draw_odds, away_odds)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		for _, f := range fixtures {
			_, err := tx.Exec(ctx, query,
				f.ID, f.JackpotID, f.Position, f.HomeTeam, f.AwayTeam,
				f.League, f.Kickoff, f.Source, f.HomeOdds, f.DrawOdds, f.AwayOdds,
			)
			if err != nil {
				return fmt.Errorf("failed to insert fixture at position %d: %w", f.Position, err)
			}
		}
		return nil
	})
}

// GetByJackpot retrieves all fixtures for a jackpot in slip position order
func (r *PostgresFixtureRepository) GetByJackpot(ctx context.Context, jackpotID uuid.UUID) ([]*models.Fixture, error) {
	query := `
		SELECT id, jackpot_id, position, home_team, away_team, league, kickoff, source, home_odds, draw_odds, away_odds, created_at
		FROM fixtures
		WHERE jackpot_id = $1
		ORDER BY position ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, jackpotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query fixtures: %w", err)
	}
	defer rows.Close()

	var fixtures []*models.Fixture
	for rows.Next() {
		f := &models.Fixture{}
		err := rows.Scan(
			&f.ID, &f.JackpotID, &f.Position, &f.HomeTeam, &f.AwayTeam,
			&f.League, &f.Kickoff, &f.Source, &f.HomeOdds, &f.DrawOdds, &f.AwayOdds, &f.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fixture: %w", err)
		}
		fixtures = append(fixtures, f)
	}

	return fixtures, rows.Err()
}

// GetByID retrieves a fixture by ID
func (r *PostgresFixtureRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error) {
	query := `
		SELECT id, jackpot_id, position, home_team, away_team, league, kickoff, source, home_odds, draw_odds, away_odds, created_at
		FROM fixtures WHERE id = $1
	`

	f := &models.Fixture{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&f.ID, &f.JackpotID, &f.Position, &f.HomeTeam, &f.AwayTeam,
		&f.League, &f.Kickoff, &f.Source, &f.HomeOdds, &f.DrawOdds, &f.AwayOdds, &f.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fixture: %w", err)
	}

	return f, nil
}

// DeleteByJackpot removes all fixtures for a jackpot
func (r *PostgresFixtureRepository) DeleteByJackpot(ctx context.Context, jackpotID uuid.UUID) error {
	_, err := r.db.GetPool().Exec(ctx, `DELETE FROM fixtures WHERE jackpot_id = $1`, jackpotID)
	if err != nil {
		return fmt.Errorf("failed to delete fixtures: %w", err)
	}
	return nil
}
