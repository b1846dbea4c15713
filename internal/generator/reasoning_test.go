package generator

import (
	"strings"
	"testing"

	"github.com/yourusername/jackpot-builder/internal/models"
)

func TestFilterReasoningMatchesKeywords(t *testing.T) {
	for _, outcome := range []models.Outcome{models.OutcomeHome, models.OutcomeDraw, models.OutcomeAway} {
		matches := filterReasoning(outcome)
		if len(matches) == 0 {
			t.Errorf("No reasoning sentences match outcome %q", outcome)
			continue
		}

		for _, sentence := range matches {
			lower := strings.ToLower(sentence)
			found := false
			for _, kw := range outcomeKeywords[outcome] {
				if strings.Contains(lower, kw) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Sentence %q matched outcome %q without containing a keyword", sentence, outcome)
			}
		}
	}
}

func TestFilterReasoningUnknownOutcome(t *testing.T) {
	if matches := filterReasoning(models.Outcome("void")); matches != nil {
		t.Errorf("Expected nil matches for unknown outcome, got %d", len(matches))
	}
}

func TestPickReasoningFallsBackToPool(t *testing.T) {
	g := newTestGenerator(9)

	// An outcome with no keyword entry exercises the pool-wide fallback.
	s := g.pickReasoning(models.Outcome("void"))
	if s == "" {
		t.Fatal("Fallback returned empty reasoning")
	}

	inPool := false
	for _, sentence := range reasoningPool {
		if sentence == s {
			inPool = true
			break
		}
	}
	if !inPool {
		t.Errorf("Fallback reasoning %q not from the fixed pool", s)
	}
}
