package handlers

import (
	"net/http"

	"bidwise/internal/analysis"
	"bidwise/internal/api/models"
	"bidwise/internal/model"
	"bidwise/internal/predict"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves dataset-level analytics. These read the raw replay
// log directly and never touch the budget ledger.
type AnalyticsHandler struct {
	Impressions []model.Impression
	ModelDir    string
}

func NewAnalyticsHandler(imps []model.Impression, modelDir string) *AnalyticsHandler {
	return &AnalyticsHandler{Impressions: imps, ModelDir: modelDir}
}

// EDA handles GET /api/v1/eda.
func (h *AnalyticsHandler) EDA(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.Summarize(h.Impressions))
}

// HourlyTrend handles GET /api/v1/analytics/hourly.
func (h *AnalyticsHandler) HourlyTrend(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.HourlyTrend(h.Impressions))
}

// MarketPriceHistogram handles GET /api/v1/analytics/market-price.
func (h *AnalyticsHandler) MarketPriceHistogram(c *gin.Context) {
	c.JSON(http.StatusOK, analysis.MarketPriceHistogram(h.Impressions))
}

// FeatureImportance handles GET /api/v1/analytics/feature-importance.
func (h *AnalyticsHandler) FeatureImportance(c *gin.Context) {
	predictor, ok := h.loadPredictor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, predictor.FeatureImportance())
}

// Confidence handles GET /api/v1/analytics/confidence.
func (h *AnalyticsHandler) Confidence(c *gin.Context) {
	predictor, ok := h.loadPredictor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, predictor.Confidence(h.Impressions))
}

func (h *AnalyticsHandler) loadPredictor(c *gin.Context) (*predict.Predictor, bool) {
	predictor, err := predict.Load(h.ModelDir)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "MODEL_UNAVAILABLE", Message: err.Error()},
		})
		return nil, false
	}
	return predictor, true
}
