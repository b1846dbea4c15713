// Package service coordinates jackpot creation, slip generation and exports.
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/jackpot-builder/internal/cache"
	"github.com/yourusername/jackpot-builder/internal/datasource"
	"github.com/yourusername/jackpot-builder/internal/generator"
	"github.com/yourusername/jackpot-builder/internal/logger"
	"github.com/yourusername/jackpot-builder/internal/metrics"
	"github.com/yourusername/jackpot-builder/internal/models"
	"github.com/yourusername/jackpot-builder/internal/repository"
)

// SlipDefaults are applied when a generation request omits parameters
type SlipDefaults struct {
	Strategy  models.Strategy
	RiskLevel int
	Stake     decimal.Decimal
}

// SlipService owns the jackpot lifecycle: building the weekly fixture slate,
// generating prediction slips and serving them back out.
type SlipService struct {
	repos     *repository.Repositories
	chain     *datasource.Chain
	generator *generator.Generator
	cache     *cache.SlipCache
	defaults  SlipDefaults
	logger    *logrus.Logger
	slipLog   *logger.SlipLogger
}

// NewSlipService creates a new slip service
func NewSlipService(
	repos *repository.Repositories,
	chain *datasource.Chain,
	gen *generator.Generator,
	slipCache *cache.SlipCache,
	defaults SlipDefaults,
	log *logrus.Logger,
) *SlipService {
	if log == nil {
		log = logrus.New()
	}
	if defaults.Strategy == "" {
		defaults.Strategy = models.StrategyBalanced
	}
	if defaults.RiskLevel == 0 {
		defaults.RiskLevel = 5
	}

	return &SlipService{
		repos:     repos,
		chain:     chain,
		generator: gen,
		cache:     slipCache,
		defaults:  defaults,
		logger:    log,
		slipLog:   logger.NewSlipLogger(log),
	}
}

// BuildJackpot creates a jackpot for the given week and fills its slate with
// fixtures from the ranked source chain. The deadline is the earliest
// kickoff on the slate.
func (s *SlipService) BuildJackpot(ctx context.Context, name string, week int) (*models.Jackpot, error) {
	if name == "" {
		return nil, models.ErrJackpotNameRequired
	}
	if week <= 0 {
		return nil, fmt.Errorf("week must be positive, got %d", week)
	}

	fetchStart := time.Now()
	pool, sourceName, err := s.chain.FetchFixtures(ctx, week)
	if err != nil {
		metrics.RecordFixtureFetch("chain", "error", time.Since(fetchStart).Seconds())
		return nil, fmt.Errorf("failed to fetch fixtures for week %d: %w", week, err)
	}
	metrics.RecordFixtureFetch(sourceName, "success", time.Since(fetchStart).Seconds())

	if len(pool) < models.JackpotSize {
		return nil, fmt.Errorf("source %s returned %d fixtures, need %d: %w",
			sourceName, len(pool), models.JackpotSize, models.ErrFixtureCount)
	}

	// Earliest kickoffs first; the slate is the first seventeen
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Kickoff.Before(pool[j].Kickoff)
	})
	slate := pool[:models.JackpotSize]

	now := time.Now().UTC()
	jackpot := &models.Jackpot{
		ID:        uuid.New(),
		Name:      name,
		Week:      week,
		Stake:     s.defaults.Stake,
		Status:    models.JackpotStatusOpen,
		Deadline:  slate[0].Kickoff,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repos.Jackpot.Create(ctx, jackpot); err != nil {
		return nil, fmt.Errorf("failed to create jackpot: %w", err)
	}

	fixtures := make([]*models.Fixture, len(slate))
	for i, fd := range slate {
		fixtures[i] = &models.Fixture{
			ID:        uuid.New(),
			JackpotID: jackpot.ID,
			Position:  i + 1,
			HomeTeam:  fd.HomeTeam,
			AwayTeam:  fd.AwayTeam,
			League:    fd.League,
			Kickoff:   fd.Kickoff,
			Source:    sourceName,
			HomeOdds:  fd.HomeOdds,
			DrawOdds:  fd.DrawOdds,
			AwayOdds:  fd.AwayOdds,
			CreatedAt: now,
		}
	}

	if err := s.repos.Fixture.CreateBatch(ctx, fixtures); err != nil {
		return nil, fmt.Errorf("failed to store fixtures: %w", err)
	}

	s.slipLog.LogJackpotBuilt(jackpot.ID.String(), week, sourceName, len(fixtures), jackpot.Deadline)

	return jackpot, nil
}

// GeneratePredictions produces and persists a prediction slip for the
// jackpot. A repeat call with the same options within the cache TTL returns
// the cached slip; otherwise the previous slip is replaced.
func (s *SlipService) GeneratePredictions(ctx context.Context, jackpotID uuid.UUID, opts generator.Options) ([]models.PredictionRecord, error) {
	jackpot, err := s.repos.Jackpot.GetByID(ctx, jackpotID)
	if err != nil {
		return nil, err
	}

	if opts.Strategy == "" {
		opts.Strategy = s.defaults.Strategy
	}
	if opts.RiskLevel == 0 {
		opts.RiskLevel = s.defaults.RiskLevel
	}

	key := cache.SlipKey{
		JackpotID: jackpot.ID,
		Strategy:  opts.Strategy,
		RiskLevel: opts.RiskLevel,
		Wildcards: opts.IncludeWildcards,
	}
	if cached := s.cache.Get(key); cached != nil {
		metrics.RecordSlipCacheHit()
		s.updateCacheRatio()
		s.slipLog.LogSlipServedFromCache(jackpot.ID.String(), string(opts.Strategy))
		return cached, nil
	}
	metrics.RecordSlipCacheMiss()

	fixtures, err := s.repos.Fixture.GetByJackpot(ctx, jackpot.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures: %w", err)
	}

	genStart := time.Now()
	records, err := s.generator.Generate(len(fixtures), opts)
	if err != nil {
		return nil, err
	}

	// Pair each record with the fixture at the same slate position
	toStore := make([]*models.PredictionRecord, len(records))
	for i := range records {
		records[i].ID = uuid.New()
		records[i].JackpotID = jackpot.ID
		records[i].FixtureID = fixtures[i].ID
		toStore[i] = &records[i]
	}

	if err := s.repos.Prediction.CreateBatch(ctx, toStore); err != nil {
		return nil, fmt.Errorf("failed to store predictions: %w", err)
	}

	wildcards := 0
	for i := range records {
		if records[i].Wildcard {
			wildcards++
		}
	}
	genDuration := time.Since(genStart)
	metrics.RecordSlipGenerated(string(opts.Strategy), len(records), wildcards, genDuration.Seconds())

	s.cache.Set(key, records)
	s.updateCacheRatio()

	s.slipLog.LogSlipGenerated(jackpot.ID.String(), string(opts.Strategy), opts.RiskLevel, len(records), wildcards, genDuration)

	return records, nil
}

// GetJackpot returns a jackpot by ID
func (s *SlipService) GetJackpot(ctx context.Context, id uuid.UUID) (*models.Jackpot, error) {
	return s.repos.Jackpot.GetByID(ctx, id)
}

// GetFixtures returns a jackpot's slate ordered by position
func (s *SlipService) GetFixtures(ctx context.Context, jackpotID uuid.UUID) ([]*models.Fixture, error) {
	if _, err := s.repos.Jackpot.GetByID(ctx, jackpotID); err != nil {
		return nil, err
	}
	return s.repos.Fixture.GetByJackpot(ctx, jackpotID)
}

// GetSlip returns the stored prediction slip ordered by slate position
func (s *SlipService) GetSlip(ctx context.Context, jackpotID uuid.UUID) ([]*models.PredictionRecord, error) {
	if _, err := s.repos.Jackpot.GetByID(ctx, jackpotID); err != nil {
		return nil, err
	}
	return s.repos.Prediction.GetByJackpot(ctx, jackpotID)
}

// ListJackpots returns recent jackpots, newest first
func (s *SlipService) ListJackpots(ctx context.Context, limit int) ([]*models.Jackpot, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repos.Jackpot.List(ctx, limit)
}

// SyncWeek ensures a jackpot exists for the given ISO week, building one
// when missing, and closes any open jackpots whose deadline has passed.
// The scheduler drives this on a cron cadence.
func (s *SlipService) SyncWeek(ctx context.Context, week int) error {
	if _, err := s.repos.Jackpot.GetByWeek(ctx, week); err == nil {
		s.logger.WithField("week", week).Debug("Jackpot already exists for week")
	} else {
		name := fmt.Sprintf("Week %d Jackpot", week)
		if _, err := s.BuildJackpot(ctx, name, week); err != nil {
			return fmt.Errorf("failed to build weekly jackpot: %w", err)
		}
	}

	return s.closeExpired(ctx)
}

// closeExpired transitions open jackpots past their deadline to closed and
// refreshes the active jackpot gauge.
func (s *SlipService) closeExpired(ctx context.Context) error {
	jackpots, err := s.repos.Jackpot.List(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list jackpots: %w", err)
	}

	active := 0
	now := time.Now()
	for _, j := range jackpots {
		if j.Status != models.JackpotStatusOpen {
			continue
		}
		if now.Before(j.Deadline) {
			active++
			continue
		}

		j.Status = models.JackpotStatusClosed
		j.UpdatedAt = now
		if err := s.repos.Jackpot.Update(ctx, j); err != nil {
			s.logger.WithError(err).WithField("jackpot_id", j.ID).Warn("Failed to close expired jackpot")
			continue
		}
		s.cache.Invalidate(j.ID)
		s.slipLog.LogJackpotClosed(j.ID.String(), j.Deadline)
	}

	metrics.UpdateActiveJackpots(float64(active))
	return nil
}

func (s *SlipService) updateCacheRatio() {
	_, _, ratio := s.cache.Stats()
	metrics.UpdateSlipCacheHitRatio(ratio)
}
