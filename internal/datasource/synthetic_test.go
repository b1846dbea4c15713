package datasource

import (
	"context"
	"testing"

	"github.com/yourusername/jackpot-builder/internal/models"
)

func TestSyntheticSourceIsDeterministic(t *testing.T) {
	source := NewSyntheticSource(testLogger())

	first, err := source.FetchFixtures(context.Background(), 23)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := source.FetchFixtures(context.Background(), 23)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("fixture counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].SourceID != second[i].SourceID ||
			first[i].HomeTeam != second[i].HomeTeam ||
			first[i].AwayTeam != second[i].AwayTeam {
			t.Errorf("fixture %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSyntheticSourceDifferentWeeksDiffer(t *testing.T) {
	source := NewSyntheticSource(testLogger())

	week5, err := source.FetchFixtures(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	week6, err := source.FetchFixtures(context.Background(), 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	same := true
	for i := range week5 {
		if week5[i].HomeTeam != week6[i].HomeTeam {
			same = false
			break
		}
	}
	if same {
		t.Error("expected different weeks to produce different fixture pools")
	}
}

func TestSyntheticSourcePoolCoversSlip(t *testing.T) {
	source := NewSyntheticSource(testLogger())

	fixtures, err := source.FetchFixtures(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fixtures) < models.JackpotSize {
		t.Errorf("pool of %d fixtures cannot fill a %d-leg slip", len(fixtures), models.JackpotSize)
	}

	for i, f := range fixtures {
		if f.HomeTeam == f.AwayTeam {
			t.Errorf("fixture %d pairs a team against itself: %s", i, f.HomeTeam)
		}
		if f.HomeOdds == nil || f.DrawOdds == nil || f.AwayOdds == nil {
			t.Errorf("fixture %d missing odds", i)
		}
		if f.Kickoff.IsZero() {
			t.Errorf("fixture %d has zero kickoff", i)
		}
	}
}

func TestSyntheticSourceAlwaysEnabled(t *testing.T) {
	source := NewSyntheticSource(nil)
	if !source.IsEnabled() {
		t.Error("synthetic source must always report enabled")
	}
	if source.Name() != "synthetic" {
		t.Errorf("unexpected name %s", source.Name())
	}
}

func TestSyntheticSourceCancelledContext(t *testing.T) {
	source := NewSyntheticSource(testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := source.FetchFixtures(ctx, 1); err == nil {
		t.Error("expected error for cancelled context")
	}
}
