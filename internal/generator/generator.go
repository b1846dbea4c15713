// Package generator produces strategy-constrained prediction slips for
// weekly jackpots.
package generator

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/jackpot-builder/internal/models"
)

// Options controls a single generation call
type Options struct {
	Strategy         models.Strategy
	RiskLevel        int
	IncludeWildcards bool
}

// ratio is the target count of each outcome across a slip. The three counts
// always sum to models.JackpotSize.
type ratio struct {
	home int
	draw int
	away int
}

var strategyRatios = map[models.Strategy]ratio{
	models.StrategyBalanced:     {home: 5, draw: 6, away: 6},
	models.StrategyConservative: {home: 8, draw: 5, away: 4},
	models.StrategyAggressive:   {home: 3, draw: 7, away: 7},
}

// Base confidence ranges per outcome. Draws are inherently less certain,
// so their range sits lowest.
var baseConfidence = map[models.Outcome][2]int{
	models.OutcomeHome: {70, 90},
	models.OutcomeDraw: {60, 80},
	models.OutcomeAway: {65, 85},
}

// Wildcard re-roll parameters
const (
	wildcardMinSlots = 2
	wildcardMaxSlots = 3
	wildcardChance   = 0.3
	wildcardConfLow  = 55
	wildcardConfHigh = 75
)

// Generator produces ordered slips of prediction records whose aggregate
// outcome counts match a strategy's target ratio. It holds no state beyond
// its random source; every call is an independent transform.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	logger *logrus.Logger
}

// New creates a generator. A nil rng gets a time-seeded source; tests pass
// a seeded one.
func New(rng *rand.Rand, logger *logrus.Logger) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Generator{rng: rng, logger: logger}
}

// Generate produces fixtureCount prediction records for the given options.
// The only hard error is a fixture count other than models.JackpotSize;
// every other input degrades to a best-effort, well-formed slip.
func (g *Generator) Generate(fixtureCount int, opts Options) ([]models.PredictionRecord, error) {
	if fixtureCount != models.JackpotSize {
		return nil, models.ErrFixtureCount
	}

	strat := opts.Strategy
	if !strat.IsKnown() {
		g.logger.WithField("strategy", string(opts.Strategy)).Debug("Unknown strategy, falling back to balanced")
		strat = models.StrategyBalanced
	}
	target := strategyRatios[strat]

	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	records := make([]models.PredictionRecord, 0, fixtureCount)
	records = g.fillBucket(records, models.OutcomeHome, target.home, strat, now)
	records = g.fillBucket(records, models.OutcomeDraw, target.draw, strat, now)
	records = g.fillBucket(records, models.OutcomeAway, target.away, strat, now)

	g.applyJitter(records, opts.RiskLevel)

	wildcards := 0
	if opts.IncludeWildcards {
		wildcards = g.rerollWildcards(records)
	}

	for i := range records {
		records[i].Reasoning = g.pickReasoning(records[i].Outcome)
	}

	g.shuffle(records)

	g.logger.WithFields(logrus.Fields{
		"strategy":   string(strat),
		"risk_level": opts.RiskLevel,
		"wildcards":  wildcards,
	}).Debug("Generated prediction slip")

	return records, nil
}

// fillBucket appends count records of one outcome with a base confidence
// drawn uniformly from the outcome's range.
func (g *Generator) fillBucket(records []models.PredictionRecord, outcome models.Outcome, count int, strat models.Strategy, now time.Time) []models.PredictionRecord {
	bounds := baseConfidence[outcome]
	for i := 0; i < count; i++ {
		records = append(records, models.PredictionRecord{
			Outcome:    outcome,
			Confidence: g.uniform(bounds[0], bounds[1]),
			Strategy:   strat,
			CreatedAt:  now,
		})
	}
	return records
}

// applyJitter adds a uniform random delta to each record's confidence. The
// magnitude grows with risk level; the result is clamped to the global
// confidence bounds.
func (g *Generator) applyJitter(records []models.PredictionRecord, riskLevel int) {
	magnitude := jitterMagnitude(riskLevel)
	for i := range records {
		delta := g.rng.Intn(2*magnitude+1) - magnitude
		records[i].Confidence = clamp(records[i].Confidence+delta, models.MinConfidence, models.MaxConfidence)
	}
}

// jitterMagnitude maps a risk level to the half-width of the jitter range.
// Risk levels are not validated; anything above 7 gets the widest band.
func jitterMagnitude(riskLevel int) int {
	switch {
	case riskLevel <= 4:
		return 5
	case riskLevel <= 7:
		return 10
	default:
		return 15
	}
}

// rerollWildcards picks 2-3 distinct slots and, with a fixed probability per
// slot, replaces the outcome and confidence outright. This intentionally
// breaks the exact-ratio guarantee for those slots. Returns the number of
// records actually re-rolled.
func (g *Generator) rerollWildcards(records []models.PredictionRecord) int {
	outcomes := []models.Outcome{models.OutcomeHome, models.OutcomeDraw, models.OutcomeAway}
	slots := wildcardMinSlots + g.rng.Intn(wildcardMaxSlots-wildcardMinSlots+1)

	rerolled := 0
	for _, idx := range g.rng.Perm(len(records))[:slots] {
		if g.rng.Float64() >= wildcardChance {
			continue
		}
		records[idx].Outcome = outcomes[g.rng.Intn(len(outcomes))]
		records[idx].Confidence = g.uniform(wildcardConfLow, wildcardConfHigh)
		records[idx].Wildcard = true
		rerolled++
	}
	return rerolled
}

// shuffle performs a Fisher-Yates shuffle so the bucket order from
// generation is not visible on the slip. Slips must not reveal the
// strategy via position.
func (g *Generator) shuffle(records []models.PredictionRecord) {
	for i := len(records) - 1; i > 0; i-- {
		j := g.rng.Intn(i + 1)
		records[i], records[j] = records[j], records[i]
	}
}

// uniform draws an integer uniformly from [low, high] inclusive
func (g *Generator) uniform(low, high int) int {
	return low + g.rng.Intn(high-low+1)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
