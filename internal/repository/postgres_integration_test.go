package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/jackpot-builder/internal/database"
	"github.com/yourusername/jackpot-builder/internal/models"
)

// These tests run against a real Postgres instance and skip when the test
// database is not configured.

func seedJackpot(week int) *models.Jackpot {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.Jackpot{
		ID:        uuid.New(),
		Name:      "Integration Week",
		Week:      week,
		Stake:     decimal.NewFromInt(10),
		Status:    models.JackpotStatusOpen,
		Deadline:  now.Add(72 * time.Hour),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostgresJackpotRoundTrip(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	jackpot := seedJackpot(997)
	defer repos.Jackpot.Delete(ctx, jackpot.ID)

	if err := repos.Jackpot.Create(ctx, jackpot); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	got, err := repos.Jackpot.GetByID(ctx, jackpot.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Name != jackpot.Name || got.Week != jackpot.Week {
		t.Errorf("round trip mismatch: %+v vs %+v", got, jackpot)
	}

	got.Status = models.JackpotStatusClosed
	if err := repos.Jackpot.Update(ctx, got); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	updated, err := repos.Jackpot.GetByID(ctx, jackpot.ID)
	if err != nil {
		t.Fatalf("get after update failed: %v", err)
	}
	if updated.Status != models.JackpotStatusClosed {
		t.Errorf("expected closed status, got %s", updated.Status)
	}
}

func TestPostgresFixtureAndPredictionBatch(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	jackpot := seedJackpot(998)
	if err := repos.Jackpot.Create(ctx, jackpot); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	defer repos.Jackpot.Delete(ctx, jackpot.ID)
	defer repos.Prediction.DeleteByJackpot(ctx, jackpot.ID)
	defer repos.Fixture.DeleteByJackpot(ctx, jackpot.ID)

	now := time.Now().UTC().Truncate(time.Microsecond)
	fixtures := make([]*models.Fixture, models.JackpotSize)
	for i := range fixtures {
		fixtures[i] = &models.Fixture{
			ID:        uuid.New(),
			JackpotID: jackpot.ID,
			Position:  i + 1,
			HomeTeam:  "Home FC",
			AwayTeam:  "Away FC",
			League:    "Test League",
			Kickoff:   now.Add(time.Duration(i) * time.Hour),
			Source:    "synthetic",
			CreatedAt: now,
		}
	}
	if err := repos.Fixture.CreateBatch(ctx, fixtures); err != nil {
		t.Fatalf("fixture batch failed: %v", err)
	}

	records := make([]*models.PredictionRecord, models.JackpotSize)
	for i := range records {
		records[i] = &models.PredictionRecord{
			ID:         uuid.New(),
			JackpotID:  jackpot.ID,
			FixtureID:  fixtures[i].ID,
			Outcome:    models.OutcomeHome,
			Confidence: 70,
			Reasoning:  "Solid home form points to a win.",
			Strategy:   models.StrategyBalanced,
			CreatedAt:  now,
		}
	}
	if err := repos.Prediction.CreateBatch(ctx, records); err != nil {
		t.Fatalf("prediction batch failed: %v", err)
	}

	stored, err := repos.Prediction.GetByJackpot(ctx, jackpot.ID)
	if err != nil {
		t.Fatalf("get predictions failed: %v", err)
	}
	if len(stored) != models.JackpotSize {
		t.Fatalf("expected %d predictions, got %d", models.JackpotSize, len(stored))
	}
	for i, p := range stored {
		if p.FixtureID != fixtures[i].ID {
			t.Errorf("prediction %d out of slate order", i)
		}
	}

	// A second batch replaces the slip rather than appending
	if err := repos.Prediction.CreateBatch(ctx, records); err != nil {
		t.Fatalf("replacement batch failed: %v", err)
	}
	replaced, err := repos.Prediction.GetByJackpot(ctx, jackpot.ID)
	if err != nil {
		t.Fatalf("get predictions failed: %v", err)
	}
	if len(replaced) != models.JackpotSize {
		t.Errorf("expected replacement to keep %d predictions, got %d", models.JackpotSize, len(replaced))
	}
}

func TestPostgresGetMissingJackpot(t *testing.T) {
	db := database.SetupTestDB(t)
	defer database.TeardownTestDB(t, db)

	repos, err := NewRepositories(db)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = repos.Jackpot.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
