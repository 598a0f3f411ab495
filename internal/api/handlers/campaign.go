package handlers

import (
	"net/http"

	"bidwise/internal/api/models"
	"bidwise/internal/store"

	"github.com/gin-gonic/gin"
)

// CampaignHandler handles campaign CRUD requests.
type CampaignHandler struct {
	Store *store.Campaigns
	Cache *store.ResultCache
}

func NewCampaignHandler(st *store.Campaigns, cache *store.ResultCache) *CampaignHandler {
	return &CampaignHandler{Store: st, Cache: cache}
}

// CreateCampaign handles POST /api/v1/campaigns.
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req models.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	params, err := req.ToParams()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()},
		})
		return
	}

	campaign, err := h.Store.Create(req.CampaignName, req.TotalBudget, params)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_CONFIG", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusCreated, models.FromCampaign(campaign))
}

// ListCampaigns handles GET /api/v1/campaigns.
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	campaigns := h.Store.List()
	out := make([]models.CampaignResponse, len(campaigns))
	for i, campaign := range campaigns {
		out[i] = models.FromCampaign(campaign)
	}
	c.JSON(http.StatusOK, out)
}

// GetCampaign handles GET /api/v1/campaigns/:id.
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, ok := h.Store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CAMPAIGN_NOT_FOUND", Message: "Campaign not found"},
		})
		return
	}
	c.JSON(http.StatusOK, models.FromCampaign(campaign))
}

// DeleteCampaign handles DELETE /api/v1/campaigns/:id.
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	id := c.Param("id")
	if !h.Store.Delete(id) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "CAMPAIGN_NOT_FOUND", Message: "Campaign not found"},
		})
		return
	}
	h.Cache.Invalidate(id)
	c.Status(http.StatusNoContent)
}
