package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"testing"

	"github.com/google/uuid"

	"github.com/yourusername/jackpot-builder/internal/generator"
	"github.com/yourusername/jackpot-builder/internal/models"
)

func TestExportCSVWritesSlipRows(t *testing.T) {
	svc, _ := newTestService(t, 13)
	ctx := context.Background()

	jackpot, err := svc.BuildJackpot(ctx, "Export", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GeneratePredictions(ctx, jackpot.ID, generator.Options{IncludeWildcards: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, jackpot.ID, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}

	if len(rows) != models.JackpotSize+1 {
		t.Fatalf("expected header plus %d rows, got %d", models.JackpotSize, len(rows))
	}
	if rows[0][0] != "position" || rows[0][5] != "outcome" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	for i, row := range rows[1:] {
		if row[0] != strconv.Itoa(i+1) {
			t.Errorf("row %d has position %s", i+1, row[0])
		}
		outcome := models.Outcome(row[5])
		if !outcome.IsValid() {
			t.Errorf("row %d has invalid outcome %q", i+1, row[5])
		}
		conf, err := strconv.Atoi(row[6])
		if err != nil || conf < models.MinConfidence || conf > models.MaxConfidence {
			t.Errorf("row %d has bad confidence %q", i+1, row[6])
		}
		if row[8] == "" {
			t.Errorf("row %d missing reasoning", i+1)
		}
	}
}

func TestExportCSVWithoutSlip(t *testing.T) {
	svc, _ := newTestService(t, 13)
	ctx := context.Background()

	jackpot, err := svc.BuildJackpot(ctx, "No Slip Yet", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if err := svc.ExportCSV(ctx, jackpot.ID, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("export is not valid CSV: %v", err)
	}
	if len(rows) != models.JackpotSize+1 {
		t.Fatalf("expected header plus %d rows, got %d", models.JackpotSize, len(rows))
	}
	for i, row := range rows[1:] {
		if row[5] != "" || row[6] != "" {
			t.Errorf("row %d has prediction columns without a slip: %v", i+1, row)
		}
	}
}

func TestExportCSVUnknownJackpot(t *testing.T) {
	svc, _ := newTestService(t, 13)

	var buf bytes.Buffer
	err := svc.ExportCSV(context.Background(), uuid.New(), &buf)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
