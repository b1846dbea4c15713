package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/jackpot-builder/internal/metrics"
	"github.com/yourusername/jackpot-builder/internal/models"
)

var csvHeader = []string{
	"position", "home_team", "away_team", "league", "kickoff",
	"outcome", "confidence", "wildcard", "reasoning",
}

// ExportCSV writes the jackpot's stored slip as CSV, one row per slate
// position. A jackpot without a generated slip exports fixture rows with
// empty prediction columns.
func (s *SlipService) ExportCSV(ctx context.Context, jackpotID uuid.UUID, w io.Writer) error {
	if _, err := s.repos.Jackpot.GetByID(ctx, jackpotID); err != nil {
		return err
	}

	fixtures, err := s.repos.Fixture.GetByJackpot(ctx, jackpotID)
	if err != nil {
		return fmt.Errorf("failed to load fixtures: %w", err)
	}

	predictions, err := s.repos.Prediction.GetByJackpot(ctx, jackpotID)
	if err != nil {
		return fmt.Errorf("failed to load predictions: %w", err)
	}

	byFixture := make(map[uuid.UUID]*models.PredictionRecord, len(predictions))
	for _, p := range predictions {
		byFixture[p.FixtureID] = p
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, f := range fixtures {
		row := []string{
			strconv.Itoa(f.Position),
			f.HomeTeam,
			f.AwayTeam,
			f.League,
			f.Kickoff.UTC().Format(time.RFC3339),
			"", "", "", "",
		}
		if p, ok := byFixture[f.ID]; ok {
			row[5] = string(p.Outcome)
			row[6] = strconv.Itoa(p.Confidence)
			row[7] = strconv.FormatBool(p.Wildcard)
			row[8] = p.Reasoning
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	metrics.RecordCSVExport()
	return nil
}
