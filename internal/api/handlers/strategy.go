package handlers

import (
	"net/http"

	"bidwise/internal/api/models"

	"github.com/gin-gonic/gin"
)

// StrategyHandler handles strategy catalogue requests.
type StrategyHandler struct{}

func NewStrategyHandler() *StrategyHandler {
	return &StrategyHandler{}
}

// ListStrategies handles GET /api/v1/strategies.
func (h *StrategyHandler) ListStrategies(c *gin.Context) {
	strategies := []models.StrategyInfo{
		{
			Name:        "baseline",
			Description: "Fixed-bid strategy. Bids base_bid on every impression regardless of predicted value or remaining budget.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "base_bid",
					Type:        "float",
					Description: "Constant bid amount per impression",
					Default:     10.0,
				},
			},
		},
		{
			Name:        "optimized",
			Description: "Budget-pacing bid shading. Scales bids with the predicted impression value relative to market price, damped as the budget depletes.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "conversion_weight",
					Type:        "int",
					Description: "Relative value of a conversion vs a click (1-20)",
					Default:     5,
				},
			},
		},
	}

	c.JSON(http.StatusOK, gin.H{"strategies": strategies})
}
