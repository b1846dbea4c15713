package generator

import (
	"strings"

	"github.com/yourusername/jackpot-builder/internal/models"
)

// reasoningPool is the fixed set of canned reasoning sentences. Selection is
// keyword-filtered by outcome with a pool-wide fallback, so every sentence
// must stand on its own.
var reasoningPool = []string{
	"Strong home form over the last six matches.",
	"Home advantage should prove decisive here.",
	"Hosts unbeaten at home this season.",
	"Home side rested and at full strength.",
	"The hosts tend to raise their game in front of their own crowd.",
	"Recent results point to a routine home win.",
	"Both sides evenly matched on current form.",
	"Head-to-head history suggests a tight stalemate.",
	"Two cautious sides likely to share the points.",
	"Low-scoring affair with little between the teams, draw value.",
	"Midtable clash with a draw written all over it.",
	"Visitors travel well and carry a threat on the break.",
	"Away side in better shape despite the venue.",
	"Counter-attacking setup suits the away team.",
	"Faltering back line means the road side should edge it.",
	"Away team stronger on paper and in the table.",
	"Visitors have won on their last two trips here.",
}

// outcomeKeywords filters the pool per outcome. A sentence matches if it
// contains any keyword, case-insensitively.
var outcomeKeywords = map[models.Outcome][]string{
	models.OutcomeHome: {"home", "hosts", "advantage"},
	models.OutcomeDraw: {"even", "stalemate", "share", "draw", "tight"},
	models.OutcomeAway: {"away", "visitors", "travel", "counter", "road"},
}

// pickReasoning selects a reasoning sentence matching the outcome, or any
// sentence from the pool when the filter comes up empty.
func (g *Generator) pickReasoning(outcome models.Outcome) string {
	matches := filterReasoning(outcome)
	if len(matches) == 0 {
		matches = reasoningPool
	}
	return matches[g.rng.Intn(len(matches))]
}

// filterReasoning returns the pool entries whose text matches the outcome's
// keywords.
func filterReasoning(outcome models.Outcome) []string {
	keywords := outcomeKeywords[outcome]
	if len(keywords) == 0 {
		return nil
	}

	var matches []string
	for _, sentence := range reasoningPool {
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				matches = append(matches, sentence)
				break
			}
		}
	}
	return matches
}
