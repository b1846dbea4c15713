package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/jackpot-builder/internal/models"
)

func testSlip(jackpotID uuid.UUID, n int) []models.PredictionRecord {
	slip := make([]models.PredictionRecord, n)
	for i := range slip {
		slip[i] = models.PredictionRecord{
			ID:         uuid.New(),
			JackpotID:  jackpotID,
			Outcome:    models.OutcomeHome,
			Confidence: 70,
			Strategy:   models.StrategyBalanced,
		}
	}
	return slip
}

func TestSlipCacheHitAndMiss(t *testing.T) {
	sc := NewSlipCache(time.Minute, 100)
	jackpotID := uuid.New()
	key := SlipKey{JackpotID: jackpotID, Strategy: models.StrategyBalanced, RiskLevel: 5, Wildcards: true}

	if got := sc.Get(key); got != nil {
		t.Errorf("expected miss on empty cache, got %d records", len(got))
	}

	sc.Set(key, testSlip(jackpotID, models.JackpotSize))

	got := sc.Get(key)
	if len(got) != models.JackpotSize {
		t.Fatalf("expected %d records, got %d", models.JackpotSize, len(got))
	}

	hits, misses, ratio := sc.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit and 1 miss, got %d/%d", hits, misses)
	}
	if ratio != 0.5 {
		t.Errorf("expected hit ratio 0.5, got %f", ratio)
	}
}

func TestSlipCacheKeyDistinguishesParameters(t *testing.T) {
	sc := NewSlipCache(time.Minute, 100)
	jackpotID := uuid.New()

	balanced := SlipKey{JackpotID: jackpotID, Strategy: models.StrategyBalanced, RiskLevel: 5, Wildcards: true}
	aggressive := SlipKey{JackpotID: jackpotID, Strategy: models.StrategyAggressive, RiskLevel: 5, Wildcards: true}

	sc.Set(balanced, testSlip(jackpotID, 3))

	if got := sc.Get(aggressive); got != nil {
		t.Error("different strategy should not hit the same cache entry")
	}
}

func TestSlipCacheInvalidateByJackpot(t *testing.T) {
	sc := NewSlipCache(time.Minute, 100)
	target := uuid.New()
	other := uuid.New()

	sc.Set(SlipKey{JackpotID: target, Strategy: models.StrategyBalanced, RiskLevel: 5}, testSlip(target, 2))
	sc.Set(SlipKey{JackpotID: target, Strategy: models.StrategyAggressive, RiskLevel: 8}, testSlip(target, 2))
	sc.Set(SlipKey{JackpotID: other, Strategy: models.StrategyBalanced, RiskLevel: 5}, testSlip(other, 2))

	sc.Invalidate(target)

	if got := sc.Get(SlipKey{JackpotID: target, Strategy: models.StrategyBalanced, RiskLevel: 5}); got != nil {
		t.Error("expected invalidated entry to miss")
	}
	if got := sc.Get(SlipKey{JackpotID: target, Strategy: models.StrategyAggressive, RiskLevel: 8}); got != nil {
		t.Error("expected invalidated entry to miss")
	}
	if got := sc.Get(SlipKey{JackpotID: other, Strategy: models.StrategyBalanced, RiskLevel: 5}); got == nil {
		t.Error("other jackpot entry should survive invalidation")
	}
}

func TestSlipCacheClearResetsStats(t *testing.T) {
	sc := NewSlipCache(time.Minute, 100)
	jackpotID := uuid.New()
	key := SlipKey{JackpotID: jackpotID, Strategy: models.StrategyConservative, RiskLevel: 3}

	sc.Set(key, testSlip(jackpotID, 1))
	sc.Get(key)
	sc.Clear()

	if sc.ItemCount() != 0 {
		t.Errorf("expected empty cache after clear, got %d items", sc.ItemCount())
	}
	hits, misses, _ := sc.Stats()
	if hits != 0 || misses != 0 {
		t.Errorf("expected stats reset, got %d/%d", hits, misses)
	}
}
