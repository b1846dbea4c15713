package generator

import (
	"math/rand"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/jackpot-builder/internal/models"
)

func newTestGenerator(seed int64) *Generator {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return New(rand.New(rand.NewSource(seed)), logger)
}

func countOutcomes(records []models.PredictionRecord) map[models.Outcome]int {
	counts := make(map[models.Outcome]int)
	for _, r := range records {
		counts[r.Outcome]++
	}
	return counts
}

func TestGenerateRejectsWrongFixtureCount(t *testing.T) {
	g := newTestGenerator(1)

	for _, count := range []int{0, 1, 16, 18, 100} {
		records, err := g.Generate(count, Options{Strategy: models.StrategyBalanced})
		if err != models.ErrFixtureCount {
			t.Errorf("Generate(%d) error = %v, want ErrFixtureCount", count, err)
		}
		if records != nil {
			t.Errorf("Generate(%d) returned records on error", count)
		}
	}
}

func TestGenerateOutputLength(t *testing.T) {
	g := newTestGenerator(2)

	records, err := g.Generate(models.JackpotSize, Options{Strategy: models.StrategyBalanced, RiskLevel: 5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(records) != models.JackpotSize {
		t.Errorf("Expected %d records, got %d", models.JackpotSize, len(records))
	}
}

func TestGenerateRatioInvariant(t *testing.T) {
	tests := []struct {
		strategy models.Strategy
		home     int
		draw     int
		away     int
	}{
		{models.StrategyBalanced, 5, 6, 6},
		{models.StrategyConservative, 8, 5, 4},
		{models.StrategyAggressive, 3, 7, 7},
	}

	g := newTestGenerator(3)

	for _, tt := range tests {
		// Jitter and shuffle are random but must never move the ratio.
		for i := 0; i < 50; i++ {
			records, err := g.Generate(models.JackpotSize, Options{
				Strategy:  tt.strategy,
				RiskLevel: 1 + i%10,
			})
			if err != nil {
				t.Fatalf("Generate(%s) failed: %v", tt.strategy, err)
			}

			counts := countOutcomes(records)
			if counts[models.OutcomeHome] != tt.home || counts[models.OutcomeDraw] != tt.draw || counts[models.OutcomeAway] != tt.away {
				t.Fatalf("Strategy %s: got counts 1=%d X=%d 2=%d, want %d/%d/%d",
					tt.strategy,
					counts[models.OutcomeHome], counts[models.OutcomeDraw], counts[models.OutcomeAway],
					tt.home, tt.draw, tt.away)
			}
		}
	}
}

func TestGenerateUnknownStrategyFallsBackToBalanced(t *testing.T) {
	g := newTestGenerator(4)

	records, err := g.Generate(models.JackpotSize, Options{Strategy: "martingale"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	counts := countOutcomes(records)
	if counts[models.OutcomeHome] != 5 || counts[models.OutcomeDraw] != 6 || counts[models.OutcomeAway] != 6 {
		t.Errorf("Unknown strategy should use balanced ratio, got 1=%d X=%d 2=%d",
			counts[models.OutcomeHome], counts[models.OutcomeDraw], counts[models.OutcomeAway])
	}

	for _, r := range records {
		if r.Strategy != models.StrategyBalanced {
			t.Errorf("Record strategy = %q, want balanced", r.Strategy)
		}
	}
}

func TestGenerateConfidenceBounds(t *testing.T) {
	g := newTestGenerator(5)

	// Extreme risk levels must still clamp into [50,95].
	for _, risk := range []int{-10, 0, 4, 5, 7, 8, 10, 1000} {
		records, err := g.Generate(models.JackpotSize, Options{
			Strategy:         models.StrategyAggressive,
			RiskLevel:        risk,
			IncludeWildcards: true,
		})
		if err != nil {
			t.Fatalf("Generate(risk=%d) failed: %v", risk, err)
		}

		for _, r := range records {
			if !r.InBounds() {
				t.Errorf("risk=%d: confidence %d outside [%d,%d]", risk, r.Confidence, models.MinConfidence, models.MaxConfidence)
			}
		}
	}
}

func TestGenerateWildcardDeviationBounded(t *testing.T) {
	g := newTestGenerator(6)

	for i := 0; i < 200; i++ {
		records, err := g.Generate(models.JackpotSize, Options{
			Strategy:         models.StrategyConservative,
			RiskLevel:        6,
			IncludeWildcards: true,
		})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		wildcards := 0
		for _, r := range records {
			if r.Wildcard {
				wildcards++
			}
		}
		if wildcards > wildcardMaxSlots {
			t.Fatalf("Got %d wildcard records, max is %d", wildcards, wildcardMaxSlots)
		}

		// Each re-rolled slot can move one outcome count by at most one.
		counts := countOutcomes(records)
		deviation := abs(counts[models.OutcomeHome]-8) + abs(counts[models.OutcomeDraw]-5) + abs(counts[models.OutcomeAway]-4)
		if deviation > 2*wildcards {
			t.Fatalf("Ratio deviation %d exceeds wildcard allowance (%d re-rolls)", deviation, wildcards)
		}
	}
}

func TestGenerateReasoningFromPool(t *testing.T) {
	g := newTestGenerator(7)

	pool := make(map[string]bool, len(reasoningPool))
	for _, s := range reasoningPool {
		pool[s] = true
	}

	records, err := g.Generate(models.JackpotSize, Options{Strategy: models.StrategyBalanced, RiskLevel: 5})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for _, r := range records {
		if r.Reasoning == "" {
			t.Error("Empty reasoning string")
		}
		if !pool[r.Reasoning] {
			t.Errorf("Reasoning %q not in fixed pool", r.Reasoning)
		}
	}
}

func TestGenerateShufflesOrder(t *testing.T) {
	g := newTestGenerator(8)

	// The bucket fill emits all home picks first; a slip that still leads
	// with five straight home picks on every call would reveal the
	// strategy by position. Check across calls rather than asserting any
	// single ordering.
	leadingHomeAlways := true
	for i := 0; i < 20; i++ {
		records, err := g.Generate(models.JackpotSize, Options{Strategy: models.StrategyBalanced})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		for j := 0; j < 5; j++ {
			if records[j].Outcome != models.OutcomeHome {
				leadingHomeAlways = false
			}
		}
	}
	if leadingHomeAlways {
		t.Error("Output order always mirrors bucket fill; shuffle appears ineffective")
	}
}

func TestJitterMagnitude(t *testing.T) {
	tests := []struct {
		risk int
		want int
	}{
		{-5, 5}, {0, 5}, {4, 5},
		{5, 10}, {6, 10}, {7, 10},
		{8, 15}, {10, 15}, {99, 15},
	}
	for _, tt := range tests {
		if got := jitterMagnitude(tt.risk); got != tt.want {
			t.Errorf("jitterMagnitude(%d) = %d, want %d", tt.risk, got, tt.want)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
