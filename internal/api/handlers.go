package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/jackpot-builder/internal/config"
	"github.com/yourusername/jackpot-builder/internal/generator"
	"github.com/yourusername/jackpot-builder/internal/models"
	"github.com/yourusername/jackpot-builder/internal/service"
)

// JackpotHandler exposes the jackpot lifecycle over REST
type JackpotHandler struct {
	svc      *service.SlipService
	features config.FeaturesConfig
	logger   *logrus.Logger
}

// NewJackpotHandler creates the handler backed by the slip service
func NewJackpotHandler(svc *service.SlipService, features config.FeaturesConfig, logger *logrus.Logger) *JackpotHandler {
	if logger == nil {
		logger = logrus.New()
	}
	return &JackpotHandler{svc: svc, features: features, logger: logger}
}

// Register mounts the v1 routes on the engine
func (h *JackpotHandler) Register(r *gin.Engine) {
	v1 := r.Group("/api/v1")
	v1.GET("/strategies", h.listStrategies)
	v1.POST("/jackpots", h.createJackpot)
	v1.GET("/jackpots", h.listJackpots)
	v1.GET("/jackpots/:id", h.getJackpot)
	v1.POST("/jackpots/:id/predictions", h.generatePredictions)
	v1.GET("/jackpots/:id/predictions", h.getSlip)
	v1.GET("/jackpots/:id/export.csv", h.exportCSV)
}

type createJackpotRequest struct {
	Name string `json:"name" binding:"required"`
	Week int    `json:"week" binding:"required,gt=0"`
}

type generateRequest struct {
	Strategy         string `json:"strategy"`
	RiskLevel        int    `json:"risk_level" binding:"omitempty,min=1,max=10"`
	IncludeWildcards bool   `json:"include_wildcards"`
}

type jackpotDetail struct {
	Jackpot  *models.Jackpot   `json:"jackpot"`
	Fixtures []*models.Fixture `json:"fixtures"`
}

type strategyInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var strategyDescriptions = map[models.Strategy]string{
	models.StrategyBalanced:     "Even spread across home wins, draws and away wins",
	models.StrategyConservative: "Leans on home advantage with fewer away picks",
	models.StrategyAggressive:   "Chases draws and away upsets for bigger payouts",
}

func (h *JackpotHandler) listStrategies(c *gin.Context) {
	strategies := models.Strategies()
	out := make([]strategyInfo, len(strategies))
	for i, s := range strategies {
		out[i] = strategyInfo{Name: string(s), Description: strategyDescriptions[s]}
	}
	ok(c, out)
}

func (h *JackpotHandler) createJackpot(c *gin.Context) {
	var req createJackpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	jackpot, err := h.svc.BuildJackpot(c.Request.Context(), req.Name, req.Week)
	if err != nil {
		h.handleError(c, err)
		return
	}
	created(c, jackpot)
}

func (h *JackpotHandler) listJackpots(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	jackpots, err := h.svc.ListJackpots(c.Request.Context(), limit)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, jackpots)
}

func (h *JackpotHandler) getJackpot(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	jackpot, err := h.svc.GetJackpot(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	fixtures, err := h.svc.GetFixtures(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	ok(c, jackpotDetail{Jackpot: jackpot, Fixtures: fixtures})
}

func (h *JackpotHandler) generatePredictions(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	if req.IncludeWildcards && !h.features.WildcardsEnabled {
		fail(c, http.StatusForbidden, "wildcard picks are disabled")
		return
	}

	records, err := h.svc.GeneratePredictions(c.Request.Context(), id, generator.Options{
		Strategy:         models.Strategy(req.Strategy),
		RiskLevel:        req.RiskLevel,
		IncludeWildcards: req.IncludeWildcards,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, records)
}

func (h *JackpotHandler) getSlip(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	slip, err := h.svc.GetSlip(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	ok(c, slip)
}

func (h *JackpotHandler) exportCSV(c *gin.Context) {
	if !h.features.CSVExportEnabled {
		fail(c, http.StatusForbidden, "CSV export is disabled")
		return
	}

	id, err := parseID(c)
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	// Resolve existence before committing response headers
	if _, err := h.svc.GetJackpot(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=jackpot-%s.csv", id))
	c.Status(http.StatusOK)

	if err := h.svc.ExportCSV(c.Request.Context(), id, c.Writer); err != nil {
		// Headers may already be out; log and abort the stream
		h.logger.WithError(err).WithField("jackpot_id", id).Error("CSV export failed")
		c.Abort()
	}
}

// handleError maps service errors to HTTP statuses
func (h *JackpotHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		fail(c, http.StatusNotFound, "jackpot not found")
	case errors.Is(err, models.ErrFixtureCount):
		fail(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, models.ErrJackpotNameRequired):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrDuplicateKey):
		fail(c, http.StatusConflict, "jackpot already exists")
	default:
		h.logger.WithError(err).Error("Request failed")
		fail(c, http.StatusInternalServerError, "internal error")
	}
}

func parseID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid jackpot id: %w", models.ErrInvalidID)
	}
	return id, nil
}
