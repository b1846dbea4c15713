package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/jackpot-builder/internal/database"
	"github.com/yourusername/jackpot-builder/internal/models"
)

// PostgresPredictionRepository implements PredictionRepository for PostgreSQL
type PostgresPredictionRepository struct {
	db *database.DB
}

// NewPostgresPredictionRepository creates a new prediction repository
func NewPostgresPredictionRepository(db *database.DB) PredictionRepository {
	return &PostgresPredictionRepository{db: db}
}

// CreateBatch replaces the prediction set for a slip in one transaction.
// Re-generating a slip first clears the previous records so a jackpot never
// carries a mix of two generation runs.
func (r *PostgresPredictionRepository) CreateBatch(ctx context.Context, records []*models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}

	insert := `
		INSERT INTO predictions (id, jackpot_id, fixture_id, outcome, confidence, reasoning, strategy, wildcard, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	return r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM predictions WHERE jackpot_id = $1`, records[0].JackpotID); err != nil {
			return fmt.Errorf("failed to clear previous predictions: %w", err)
		}

		for _, rec := range records {
			_, err := tx.Exec(ctx, insert,
				rec.ID, rec.JackpotID, rec.FixtureID, rec.Outcome, rec.Confidence,
				rec.Reasoning, rec.Strategy, rec.Wildcard, rec.CreatedAt,
			)
			if err != nil {
				return fmt.Errorf("failed to insert prediction: %w", err)
			}
		}
		return nil
	})
}

// GetByJackpot retrieves all prediction records for a jackpot
func (r *PostgresPredictionRepository) GetByJackpot(ctx context.Context, jackpotID uuid.UUID) ([]*models.PredictionRecord, error) {
	query := `
		SELECT p.id, p.jackpot_id, p.fixture_id, p.outcome, p.confidence, p.reasoning, p.strategy, p.wildcard, p.created_at
		FROM predictions p
		JOIN fixtures f ON f.id = p.fixture_id
		WHERE p.jackpot_id = $1
		ORDER BY f.position ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, jackpotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var records []*models.PredictionRecord
	for rows.Next() {
		rec := &models.PredictionRecord{}
		err := rows.Scan(
			&rec.ID, &rec.JackpotID, &rec.FixtureID, &rec.Outcome, &rec.Confidence,
			&rec.Reasoning, &rec.Strategy, &rec.Wildcard, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// DeleteByJackpot removes all predictions for a jackpot
func (r *PostgresPredictionRepository) DeleteByJackpot(ctx context.Context, jackpotID uuid.UUID) error {
	_, err := r.db.GetPool().Exec(ctx, `DELETE FROM predictions WHERE jackpot_id = $1`, jackpotID)
	if err != nil {
		return fmt.Errorf("failed to delete predictions: %w", err)
	}
	return nil
}
