package api

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/jackpot-builder/internal/cache"
	"github.com/yourusername/jackpot-builder/internal/config"
	"github.com/yourusername/jackpot-builder/internal/datasource"
	"github.com/yourusername/jackpot-builder/internal/generator"
	"github.com/yourusername/jackpot-builder/internal/models"
	"github.com/yourusername/jackpot-builder/internal/repository"
	"github.com/yourusername/jackpot-builder/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return newTestRouterWithFeatures(t, config.FeaturesConfig{
		WildcardsEnabled: true,
		CSVExportEnabled: true,
	})
}

func newTestRouterWithFeatures(t *testing.T, features config.FeaturesConfig) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repos := repository.NewMemoryRepositories()
	chain := datasource.NewChain(
		[]datasource.FixtureSource{datasource.NewSyntheticSource(log.New(io.Discard, "", 0))},
		log.New(io.Discard, "", 0),
	)
	gen := generator.New(rand.New(rand.NewSource(42)), logger)
	svc := service.NewSlipService(
		repos,
		chain,
		gen,
		cache.NewSlipCache(time.Minute, 100),
		service.SlipDefaults{Strategy: models.StrategyBalanced, RiskLevel: 5, Stake: decimal.NewFromInt(1)},
		logger,
	)

	engine := gin.New()
	NewJackpotHandler(svc, features, logger).Register(engine)
	return engine
}

func doRequest(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var resp struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func createTestJackpot(t *testing.T, engine *gin.Engine, week int) models.Jackpot {
	t.Helper()

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots", gin.H{
		"name": fmt.Sprintf("Week %d Test", week),
		"week": week,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var jackpot models.Jackpot
	decodeData(t, rec, &jackpot)
	return jackpot
}

func TestCreateJackpot(t *testing.T) {
	engine := newTestRouter(t)

	jackpot := createTestJackpot(t, engine, 14)
	assert.Equal(t, 14, jackpot.Week)
	assert.Equal(t, models.JackpotStatusOpen, jackpot.Status)
}

func TestCreateJackpotValidation(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots", gin.H{"week": 14})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, engine, http.MethodPost, "/api/v1/jackpots", gin.H{"name": "No Week"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetJackpotWithFixtures(t *testing.T) {
	engine := newTestRouter(t)
	jackpot := createTestJackpot(t, engine, 5)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/jackpots/"+jackpot.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var detail struct {
		Jackpot  models.Jackpot   `json:"jackpot"`
		Fixtures []models.Fixture `json:"fixtures"`
	}
	decodeData(t, rec, &detail)

	assert.Equal(t, jackpot.ID, detail.Jackpot.ID)
	assert.Len(t, detail.Fixtures, models.JackpotSize)
	for i, f := range detail.Fixtures {
		assert.Equal(t, i+1, f.Position)
	}
}

func TestGetJackpotNotFound(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/jackpots/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJackpotBadID(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/jackpots/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePredictions(t *testing.T) {
	engine := newTestRouter(t)
	jackpot := createTestJackpot(t, engine, 7)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{
		"strategy":          "aggressive",
		"risk_level":        8,
		"include_wildcards": true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var records []models.PredictionRecord
	decodeData(t, rec, &records)

	require.Len(t, records, models.JackpotSize)
	for _, r := range records {
		assert.True(t, r.Outcome.IsValid())
		assert.GreaterOrEqual(t, r.Confidence, models.MinConfidence)
		assert.LessOrEqual(t, r.Confidence, models.MaxConfidence)
		assert.NotEmpty(t, r.Reasoning)
	}
}

func TestGeneratePredictionsUnknownJackpot(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/00000000-0000-0000-0000-000000000001/predictions", gin.H{})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGeneratePredictionsInvalidRisk(t *testing.T) {
	engine := newTestRouter(t)
	jackpot := createTestJackpot(t, engine, 9)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{
		"risk_level": 99,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSlipAfterGeneration(t *testing.T) {
	engine := newTestRouter(t)
	jackpot := createTestJackpot(t, engine, 11)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var records []models.PredictionRecord
	decodeData(t, rec, &records)
	assert.Len(t, records, models.JackpotSize)
}

func TestExportCSV(t *testing.T) {
	engine := newTestRouter(t)
	jackpot := createTestJackpot(t, engine, 13)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, engine, http.MethodGet, "/api/v1/jackpots/"+jackpot.ID.String()+"/export.csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, models.JackpotSize+1)
}

func TestGeneratePredictionsWildcardsDisabled(t *testing.T) {
	engine := newTestRouterWithFeatures(t, config.FeaturesConfig{CSVExportEnabled: true})
	jackpot := createTestJackpot(t, engine, 15)

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{
		"include_wildcards": true,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A plain request still goes through
	rec = doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestExportCSVDisabled(t *testing.T) {
	engine := newTestRouterWithFeatures(t, config.FeaturesConfig{WildcardsEnabled: true})
	jackpot := createTestJackpot(t, engine, 16)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/jackpots/"+jackpot.ID.String()+"/export.csv", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListStrategies(t *testing.T) {
	engine := newTestRouter(t)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/strategies", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var strategies []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	decodeData(t, rec, &strategies)

	require.Len(t, strategies, 3)
	names := make(map[string]bool)
	for _, s := range strategies {
		names[s.Name] = true
		assert.NotEmpty(t, s.Description)
	}
	assert.True(t, names["balanced"] && names["conservative"] && names["aggressive"])
}

func TestGeneratePredictionsWrongFixtureCount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	repos := repository.NewMemoryRepositories()
	chain := datasource.NewChain(
		[]datasource.FixtureSource{datasource.NewSyntheticSource(log.New(io.Discard, "", 0))},
		log.New(io.Discard, "", 0),
	)
	svc := service.NewSlipService(
		repos,
		chain,
		generator.New(rand.New(rand.NewSource(1)), logger),
		cache.NewSlipCache(time.Minute, 100),
		service.SlipDefaults{},
		logger,
	)

	engine := gin.New()
	NewJackpotHandler(svc, config.FeaturesConfig{WildcardsEnabled: true, CSVExportEnabled: true}, logger).Register(engine)

	// A jackpot stored without its slate cannot be predicted on
	jackpot := &models.Jackpot{
		ID:       uuid.New(),
		Name:     "Empty Slate",
		Week:     1,
		Status:   models.JackpotStatusOpen,
		Deadline: time.Now().Add(24 * time.Hour),
	}
	require.NoError(t, repos.Jackpot.Create(context.Background(), jackpot))

	rec := doRequest(t, engine, http.MethodPost, "/api/v1/jackpots/"+jackpot.ID.String()+"/predictions", gin.H{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListJackpots(t *testing.T) {
	engine := newTestRouter(t)
	createTestJackpot(t, engine, 1)
	createTestJackpot(t, engine, 2)

	rec := doRequest(t, engine, http.MethodGet, "/api/v1/jackpots?limit=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var jackpots []models.Jackpot
	decodeData(t, rec, &jackpots)
	assert.Len(t, jackpots, 2)
}
