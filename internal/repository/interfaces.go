// Package repository provides data access for jackpots, fixtures and
// predictions.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/jackpot-builder/internal/models"
)

// JackpotRepository defines data access for jackpots
type JackpotRepository interface {
	Create(ctx context.Context, jackpot *models.Jackpot) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Jackpot, error)
	GetByWeek(ctx context.Context, week int) (*models.Jackpot, error)
	List(ctx context.Context, limit int) ([]*models.Jackpot, error)
	Update(ctx context.Context, jackpot *models.Jackpot) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FixtureRepository defines data access for fixtures
type FixtureRepository interface {
	CreateBatch(ctx context.Context, fixtures []*models.Fixture) error
	GetByJackpot(ctx context.Context, jackpotID uuid.UUID) ([]*models.Fixture, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error)
	DeleteByJackpot(ctx context.Context, jackpotID uuid.UUID) error
}

// PredictionRepository defines data access for prediction records
type PredictionRepository interface {
	CreateBatch(ctx context.Context, records []*models.PredictionRecord) error
	GetByJackpot(ctx context.Context, jackpotID uuid.UUID) ([]*models.PredictionRecord, error)
	DeleteByJackpot(ctx context.Context, jackpotID uuid.UUID) error
}
