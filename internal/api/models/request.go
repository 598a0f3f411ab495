package models

import "bidwise/internal/model"

// CreateCampaignRequest is the body for POST /api/v1/campaigns.
type CreateCampaignRequest struct {
	CampaignName     string  `json:"campaign_name" binding:"required"`
	TotalBudget      float64 `json:"total_budget" binding:"required"`
	BaseBid          float64 `json:"base_bid" binding:"required"`
	Strategy         string  `json:"strategy" binding:"required"`
	ConversionWeight int     `json:"conversion_weight" binding:"required"`
	DeviceTargeting  string  `json:"device_targeting" binding:"required"`
	ActiveHours      []int   `json:"active_hours,omitempty"`
}

// ToParams converts the request into validated strategy parameters.
func (r CreateCampaignRequest) ToParams() (model.StrategyParams, error) {
	p := model.StrategyParams{
		Strategy:         model.Strategy(r.Strategy),
		BaseBid:          r.BaseBid,
		ConversionWeight: r.ConversionWeight,
		DeviceTargeting:  model.Targeting(r.DeviceTargeting),
		ActiveHours:      r.ActiveHours,
	}
	if err := p.Validate(); err != nil {
		return model.StrategyParams{}, err
	}
	return p, nil
}

// SimulateRequest is the body for POST /api/v1/campaigns/:id/simulate.
// It overrides the campaign's stored strategy for one run.
type SimulateRequest struct {
	Strategy string `json:"strategy" binding:"required"`
}
