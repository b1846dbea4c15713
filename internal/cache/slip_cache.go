// Package cache provides in-memory caching for generated prediction slips.
package cache

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/jackpot-builder/internal/models"
)

// SlipKey identifies a cached slip by jackpot and generation parameters
type SlipKey struct {
	JackpotID uuid.UUID
	Strategy  models.Strategy
	RiskLevel int
	Wildcards bool
}

// String returns string representation of the slip key
func (k SlipKey) String() string {
	return fmt.Sprintf("%s:%s:%d:%t", k.JackpotID, k.Strategy, k.RiskLevel, k.Wildcards)
}

// SlipCache provides in-memory caching for generated prediction slips
type SlipCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	maxSize   int
	hitCount  uint64
	missCount uint64
}

// NewSlipCache creates a new slip cache
func NewSlipCache(ttl time.Duration, maxSize int) *SlipCache {
	return &SlipCache{
		cache:   gocache.New(ttl, ttl*2),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retrieves a cached slip, or nil on miss
func (sc *SlipCache) Get(key SlipKey) []models.PredictionRecord {
	if result, found := sc.cache.Get(key.String()); found {
		if slip, ok := result.([]models.PredictionRecord); ok {
			atomic.AddUint64(&sc.hitCount, 1)
			return slip
		}
	}

	atomic.AddUint64(&sc.missCount, 1)
	return nil
}

// Set stores a slip in cache
func (sc *SlipCache) Set(key SlipKey, slip []models.PredictionRecord) {
	// Check size limit
	if sc.cache.ItemCount() >= sc.maxSize {
		// Remove expired items first
		sc.cache.DeleteExpired()
	}

	sc.cache.Set(key.String(), slip, sc.ttl)
}

// Invalidate removes all cache entries for a specific jackpot
func (sc *SlipCache) Invalidate(jackpotID uuid.UUID) {
	// Key format: jackpotID:strategy:risk:wildcards
	prefix := jackpotID.String() + ":"
	for k := range sc.cache.Items() {
		if len(k) > len(prefix) && k[:len(prefix)] == prefix {
			sc.cache.Delete(k)
		}
	}
}

// Clear flushes the entire cache
func (sc *SlipCache) Clear() {
	sc.cache.Flush()
	atomic.StoreUint64(&sc.hitCount, 0)
	atomic.StoreUint64(&sc.missCount, 0)
}

// Stats returns cache statistics
func (sc *SlipCache) Stats() (hits, misses uint64, ratio float64) {
	hits = atomic.LoadUint64(&sc.hitCount)
	misses = atomic.LoadUint64(&sc.missCount)
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in cache
func (sc *SlipCache) ItemCount() int {
	return sc.cache.ItemCount()
}
