package repository

import (
	"fmt"

	"github.com/yourusername/jackpot-builder/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Jackpot    JackpotRepository
	Fixture    FixtureRepository
	Prediction PredictionRepository
}

// NewRepositories creates the PostgreSQL-backed repository set
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Jackpot:    NewPostgresJackpotRepository(db),
		Fixture:    NewPostgresFixtureRepository(db),
		Prediction: NewPostgresPredictionRepository(db),
	}, nil
}
