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

// PostgresJackpotRepository implements JackpotRepository for PostgreSQL
type PostgresJackpotRepository struct {
	db *database.DB
}

// NewPostgresJackpotRepository creates a new jackpot repository
func NewPostgresJackpotRepository(db *database.DB) JackpotRepository {
	return &PostgresJackpotRepository{db: db}
}

// Create inserts a new jackpot
func (r *PostgresJackpotRepository) Create(ctx context.Context, jackpot *models.Jackpot) error {
	if err := jackpot.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO jackpots (id, name, week, stake, status, deadline)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		jackpot.ID, jackpot.Name, jackpot.Week, jackpot.Stake, jackpot.Status, jackpot.Deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to create jackpot: %w", err)
	}

	return nil
}

// GetByID retrieves a jackpot by ID
func (r *PostgresJackpotRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Jackpot, error) {
	query := `
		SELECT id, name, week, stake, status, deadline, created_at, updated_at
		FROM jackpots WHERE id = $1
	`

	jackpot := &models.Jackpot{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&jackpot.ID, &jackpot.Name, &jackpot.Week, &jackpot.Stake,
		&jackpot.Status, &jackpot.Deadline, &jackpot.CreatedAt, &jackpot.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot: %w", err)
	}

	return jackpot, nil
}

// GetByWeek retrieves the most recent jackpot for a week number
func (r *PostgresJackpotRepository) GetByWeek(ctx context.Context, week int) (*models.Jackpot, error) {
	query := `
		SELECT id, name, week, stake, status, deadline, created_at, updated_at
		FROM jackpots
		WHERE week = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	jackpot := &models.Jackpot{}
	err := r.db.GetPool().QueryRow(ctx, query, week).Scan(
		&jackpot.ID, &jackpot.Name, &jackpot.Week, &jackpot.Stake,
		&jackpot.Status, &jackpot.Deadline, &jackpot.CreatedAt, &jackpot.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get jackpot by week: %w", err)
	}

	return jackpot, nil
}

// List retrieves jackpots ordered by creation time, newest first
func (r *PostgresJackpotRepository) List(ctx context.Context, limit int) ([]*models.Jackpot, error) {
	query := `
		SELECT id, name, week, stake, status, deadline, created_at, updated_at
		FROM jackpots
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query jackpots: %w", err)
	}
	defer rows.Close()

	var jackpots []*models.Jackpot
	for rows.Next() {
		jackpot := &models.Jackpot{}
		err := rows.Scan(
			&jackpot.ID, &jackpot.Name, &jackpot.Week, &jackpot.Stake,
			&jackpot.Status, &jackpot.Deadline, &jackpot.CreatedAt, &jackpot.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan jackpot: %w", err)
		}
		jackpots = append(jackpots, jackpot)
	}

	return jackpots, rows.Err()
}

// Update updates an existing jackpot
func (r *PostgresJackpotRepository) Update(ctx context.Context, jackpot *models.Jackpot) error {
	query := `
		UPDATE jackpots SET
			name = $2, week = $3, stake = $4, status = $5, deadline = $6, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		jackpot.ID, jackpot.Name, jackpot.Week, jackpot.Stake, jackpot.Status, jackpot.Deadline,
	)
	if err != nil {
		return fmt.Errorf("failed to update jackpot: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes a jackpot and, via cascade, its fixtures and predictions
func (r *PostgresJackpotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	commandTag, err := r.db.GetPool().Exec(ctx, `DELETE FROM jackpots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete jackpot: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
