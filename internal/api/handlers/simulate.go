package handlers

import (
	"errors"
	"net/http"
	"time"

	"bidwise/internal/api/models"
	"bidwise/internal/model"
	"bidwise/internal/predict"
	"bidwise/internal/sim"
	"bidwise/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SimulationHandler runs campaign replays against the loaded dataset.
type SimulationHandler struct {
	Store       *store.Campaigns
	Cache       *store.ResultCache
	Impressions []model.Impression
	ModelDir    string
	Log         *zap.Logger
}

func NewSimulationHandler(st *store.Campaigns, cache *store.ResultCache, imps []model.Impression, modelDir string, log *zap.Logger) *SimulationHandler {
	return &SimulationHandler{Store: st, Cache: cache, Impressions: imps, ModelDir: modelDir, Log: log}
}

// GetMetrics handles GET /api/v1/campaigns/:id/metrics.
func (h *SimulationHandler) GetMetrics(c *gin.Context) {
	result, ok := h.resultFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Metrics)
}

// GetAnalytics handles GET /api/v1/campaigns/:id/analytics.
func (h *SimulationHandler) GetAnalytics(c *gin.Context) {
	result, ok := h.resultFor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, result.Analytics)
}

// RunSimulation handles POST /api/v1/campaigns/:id/simulate. The request
// overrides the campaign's stored strategy for this run, so the cached
// result for the stored configuration is invalidated and not reused.
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	campaign, ok := h.lookup(c)
	if !ok {
		return
	}

	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	strategy, err := model.ParseStrategy(req.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()},
		})
		return
	}

	params := campaign.Params
	params.Strategy = strategy

	result, ok := h.run(c, campaign, params)
	if !ok {
		return
	}
	h.Cache.Invalidate(campaign.ID)

	c.JSON(http.StatusOK, models.SimulationResponse{
		Strategy:  string(strategy),
		Metrics:   result.Metrics,
		Analytics: result.Analytics,
		Timestamp: time.Now().UTC(),
	})
}

// resultFor returns the campaign's simulation result under its stored
// configuration, serving from the cache when possible. On failure it writes
// the error response and returns ok=false.
func (h *SimulationHandler) resultFor(c *gin.Context) (*sim.Result, bool) {
	campaign, ok := h.lookup(c)
	if !ok {
		return nil, false
	}

	if cached, hit := h.Cache.Get(campaign.ID); hit {
		return cached, true
	}

	result, ok := h.run(c, campaign, campaign.Params)
	if !ok {
		return nil, false
	}
	h.Cache.Set(campaign.ID, result)
	return result, true
}

func (h *SimulationHandler) lookup(c *gin.Context) (model.Campaign, bool) {
	campaign, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CAMPAIGN_NOT_FOUND", Message: "Campaign not found"},
		})
		return model.Campaign{}, false
	}
	return campaign, true
}

func (h *SimulationHandler) run(c *gin.Context, campaign model.Campaign, params model.StrategyParams) (*sim.Result, bool) {
	var scorer sim.Scorer
	if params.Strategy == model.StrategyOptimized {
		predictor, err := predict.Load(h.ModelDir)
		if err != nil {
			h.Log.Warn("scorer unavailable", zap.String("campaign", campaign.ID), zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Error: models.ErrorDetail{Code: "MODEL_UNAVAILABLE", Message: err.Error()},
			})
			return nil, false
		}
		scorer = predictor
	}

	result, err := sim.Simulate(h.Impressions, scorer, params, campaign.TotalBudget)
	switch {
	case err == nil:
		return result, true
	case errors.Is(err, predict.ErrModelUnavailable) || errors.Is(err, sim.ErrScoresRequired):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "MODEL_UNAVAILABLE", Message: err.Error()},
		})
	default:
		h.Log.Error("simulation failed", zap.String("campaign", campaign.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "SIMULATION_ERROR", Message: err.Error()},
		})
	}
	return nil, false
}
