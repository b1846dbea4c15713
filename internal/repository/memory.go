package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/yourusername/jackpot-builder/internal/models"
)

// NewMemoryRepositories creates a repository set backed by in-process maps.
// Used by the slipgen CLI and in tests; nothing survives the process.
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		Jackpot:    NewMemoryJackpotRepository(),
		Fixture:    NewMemoryFixtureRepository(),
		Prediction: NewMemoryPredictionRepository(),
	}
}

// MemoryJackpotRepository implements JackpotRepository with an in-memory map
type MemoryJackpotRepository struct {
	mu       sync.RWMutex
	jackpots map[uuid.UUID]models.Jackpot
}

// NewMemoryJackpotRepository creates an empty in-memory jackpot store
func NewMemoryJackpotRepository() *MemoryJackpotRepository {
	return &MemoryJackpotRepository{jackpots: make(map[uuid.UUID]models.Jackpot)}
}

// Create inserts a new jackpot
func (r *MemoryJackpotRepository) Create(ctx context.Context, jackpot *models.Jackpot) error {
	if err := jackpot.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jackpots[jackpot.ID]; exists {
		return models.ErrDuplicateKey
	}
	r.jackpots[jackpot.ID] = *jackpot
	return nil
}

// GetByID retrieves a jackpot by ID
func (r *MemoryJackpotRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Jackpot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jackpot, ok := r.jackpots[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &jackpot, nil
}

// GetByWeek retrieves the most recent jackpot for a week number
func (r *MemoryJackpotRepository) GetByWeek(ctx context.Context, week int) (*models.Jackpot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var found *models.Jackpot
	for id := range r.jackpots {
		jackpot := r.jackpots[id]
		if jackpot.Week != week {
			continue
		}
		if found == nil || jackpot.CreatedAt.After(found.CreatedAt) {
			found = &jackpot
		}
	}
	if found == nil {
		return nil, models.ErrNotFound
	}
	return found, nil
}

// List retrieves jackpots ordered by creation time, newest first
func (r *MemoryJackpotRepository) List(ctx context.Context, limit int) ([]*models.Jackpot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jackpots := make([]*models.Jackpot, 0, len(r.jackpots))
	for id := range r.jackpots {
		jackpot := r.jackpots[id]
		jackpots = append(jackpots, &jackpot)
	}
	sort.Slice(jackpots, func(i, j int) bool {
		return jackpots[i].CreatedAt.After(jackpots[j].CreatedAt)
	})

	if limit > 0 && len(jackpots) > limit {
		jackpots = jackpots[:limit]
	}
	return jackpots, nil
}

// Update updates an existing jackpot
func (r *MemoryJackpotRepository) Update(ctx context.Context, jackpot *models.Jackpot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jackpots[jackpot.ID]; !ok {
		return models.ErrNotFound
	}
	r.jackpots[jackpot.ID] = *jackpot
	return nil
}

// Delete removes a jackpot
func (r *MemoryJackpotRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.jackpots[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.jackpots, id)
	return nil
}

// MemoryFixtureRepository implements FixtureRepository with an in-memory map
type MemoryFixtureRepository struct {
	mu       sync.RWMutex
	fixtures map[uuid.UUID]models.Fixture
}

// NewMemoryFixtureRepository creates an empty in-memory fixture store
func NewMemoryFixtureRepository() *MemoryFixtureRepository {
	return &MemoryFixtureRepository{fixtures: make(map[uuid.UUID]models.Fixture)}
}

// CreateBatch inserts fixtures
func (r *MemoryFixtureRepository) CreateBatch(ctx context.Context, fixtures []*models.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range fixtures {
		if _, exists := r.fixtures[f.ID]; exists {
			return models.ErrDuplicateKey
		}
	}
	for _, f := range fixtures {
		r.fixtures[f.ID] = *f
	}
	return nil
}

// GetByJackpot retrieves all fixtures for a jackpot in slip position order
func (r *MemoryFixtureRepository) GetByJackpot(ctx context.Context, jackpotID uuid.UUID) ([]*models.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var fixtures []*models.Fixture
	for id := range r.fixtures {
		f := r.fixtures[id]
		if f.JackpotID == jackpotID {
			fixtures = append(fixtures, &f)
		}
	}
	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Position < fixtures[j].Position
	})
	return fixtures, nil
}

// GetByID retrieves a fixture by ID
func (r *MemoryFixtureRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	f, ok := r.fixtures[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &f, nil
}

// DeleteByJackpot removes all fixtures for a jackpot
func (r *MemoryFixtureRepository) DeleteByJackpot(ctx context.Context, jackpotID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.fixtures {
		if r.fixtures[id].JackpotID == jackpotID {
			delete(r.fixtures, id)
		}
	}
	return nil
}

// MemoryPredictionRepository implements PredictionRepository with an in-memory map
type MemoryPredictionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID][]models.PredictionRecord // keyed by jackpot ID
}

// NewMemoryPredictionRepository creates an empty in-memory prediction store
func NewMemoryPredictionRepository() *MemoryPredictionRepository {
	return &MemoryPredictionRepository{records: make(map[uuid.UUID][]models.PredictionRecord)}
}

// CreateBatch replaces the prediction set for the slip, mirroring the
// Postgres implementation.
func (r *MemoryPredictionRepository) CreateBatch(ctx context.Context, records []*models.PredictionRecord) error {
	if len(records) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	jackpotID := records[0].JackpotID
	stored := make([]models.PredictionRecord, 0, len(records))
	for _, rec := range records {
		stored = append(stored, *rec)
	}
	r.records[jackpotID] = stored
	return nil
}

// GetByJackpot retrieves all prediction records for a jackpot
func (r *MemoryPredictionRepository) GetByJackpot(ctx context.Context, jackpotID uuid.UUID) ([]*models.PredictionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.records[jackpotID]
	if !ok {
		return nil, nil
	}

	records := make([]*models.PredictionRecord, 0, len(stored))
	for i := range stored {
		rec := stored[i]
		records = append(records, &rec)
	}
	return records, nil
}

// DeleteByJackpot removes all predictions for a jackpot
func (r *MemoryPredictionRepository) DeleteByJackpot(ctx context.Context, jackpotID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.records, jackpotID)
	return nil
}
