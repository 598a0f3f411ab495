package model

import (
	"errors"
	"fmt"
)

// Strategy selects the bidding policy for a simulation run. Dispatch happens
// once per run, never per impression.
type Strategy string

const (
	StrategyBaseline  Strategy = "baseline"
	StrategyOptimized Strategy = "optimized"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyBaseline, StrategyOptimized:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Targeting is the device pre-filter applied to the stream before a run.
type Targeting string

const (
	TargetMobile  Targeting = "mobile"
	TargetDesktop Targeting = "desktop"
	TargetAll     Targeting = "all"
)

func ParseTargeting(s string) (Targeting, error) {
	switch Targeting(s) {
	case TargetMobile, TargetDesktop, TargetAll:
		return Targeting(s), nil
	}
	return "", fmt.Errorf("unknown device targeting %q", s)
}

// StrategyParams configures one simulation run.
type StrategyParams struct {
	Strategy         Strategy
	BaseBid          float64
	ConversionWeight int
	DeviceTargeting  Targeting
	// ActiveHours restricts the replay to these hours (0-23).
	// Empty means all hours.
	ActiveHours []int
}

func (p StrategyParams) Validate() error {
	if _, err := ParseStrategy(string(p.Strategy)); err != nil {
		return err
	}
	if p.BaseBid <= 0 {
		return errors.New("base_bid must be > 0")
	}
	if p.ConversionWeight < 1 || p.ConversionWeight > 20 {
		return errors.New("conversion_weight must be in [1, 20]")
	}
	if _, err := ParseTargeting(string(p.DeviceTargeting)); err != nil {
		return err
	}
	for _, h := range p.ActiveHours {
		if h < 0 || h > 23 {
			return fmt.Errorf("active hour %d out of range [0, 23]", h)
		}
	}
	return nil
}
