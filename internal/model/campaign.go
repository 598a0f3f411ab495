package model

import (
	"errors"
	"time"
)

// Campaign bundles the advertiser-facing configuration of a simulated
// campaign: the budget plus the strategy parameters its runs use.
type Campaign struct {
	ID          string
	Name        string
	TotalBudget float64
	Params      StrategyParams
	Status      string
	CreatedAt   time.Time
}

func (c Campaign) Validate() error {
	if c.Name == "" {
		return errors.New("campaign_name is required")
	}
	if c.TotalBudget <= 0 {
		return errors.New("total_budget must be > 0")
	}
	return c.Params.Validate()
}
