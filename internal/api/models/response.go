package models

import (
	"time"

	"bidwise/internal/model"
	"bidwise/internal/sim"
)

// CampaignResponse is the wire shape of a campaign.
type CampaignResponse struct {
	ID               string    `json:"id"`
	CampaignName     string    `json:"campaign_name"`
	TotalBudget      float64   `json:"total_budget"`
	BaseBid          float64   `json:"base_bid"`
	Strategy         string    `json:"strategy"`
	ConversionWeight int       `json:"conversion_weight"`
	DeviceTargeting  string    `json:"device_targeting"`
	ActiveHours      []int     `json:"active_hours"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// FromCampaign flattens the domain campaign into its wire shape.
func FromCampaign(c model.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:               c.ID,
		CampaignName:     c.Name,
		TotalBudget:      c.TotalBudget,
		BaseBid:          c.Params.BaseBid,
		Strategy:         string(c.Params.Strategy),
		ConversionWeight: c.Params.ConversionWeight,
		DeviceTargeting:  string(c.Params.DeviceTargeting),
		ActiveHours:      c.Params.ActiveHours,
		Status:           c.Status,
		CreatedAt:        c.CreatedAt,
	}
}

// SimulationResponse is the result of one simulation run.
type SimulationResponse struct {
	Strategy  string        `json:"strategy"`
	Metrics   sim.Metrics   `json:"metrics"`
	Analytics sim.Analytics `json:"analytics"`
	Timestamp time.Time     `json:"timestamp"`
}

// StrategyInfo describes an available bidding strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes a strategy parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse is the error envelope for all endpoints.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
