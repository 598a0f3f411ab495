package sim

import (
	"fmt"

	"bidwise/internal/model"
	"bidwise/internal/predict"
)

// Tuning constants for the optimized bid. The scale maps typical ROI factors
// into a price-comparable range; it is a tuning parameter, not a derived
// quantity.
const (
	bidScale = 1000.0
	priceEps = 1e-6

	// Clamp bounds relative to the market price. The lower bound keeps the
	// policy minimally competitive, the upper bound avoids extreme
	// overbidding.
	minBidRatio = 1.05
	maxBidRatio = 1.5
)

// Context carries everything a policy may consult for one impression.
type Context struct {
	Index      int
	Impression model.Impression
	Scores     predict.Scores
	Ledger     *Ledger
}

// Policy maps an impression and the current budget state to a bid amount.
type Policy interface {
	Name() string
	Bid(ctx Context) float64
}

// BaselinePolicy bids a fixed amount for every impression, independent of
// scores and pace.
type BaselinePolicy struct {
	BaseBid float64
}

func (p *BaselinePolicy) Name() string { return string(model.StrategyBaseline) }

func (p *BaselinePolicy) Bid(Context) float64 { return p.BaseBid }

// OptimizedPolicy is a budget-pacing bid-shading policy: the bid scales with
// the predicted value of the impression relative to its market price, damped
// by the ledger's pace factor so spend stretches across the stream.
//
// The lower clamp is the unconditional max(bid, market*1.05); the older
// conditional market*0.8 clamp gated on expected value is deprecated.
type OptimizedPolicy struct {
	ConversionWeight int
}

func (p *OptimizedPolicy) Name() string { return string(model.StrategyOptimized) }

func (p *OptimizedPolicy) Bid(ctx Context) float64 {
	m := ctx.Impression.MarketPrice

	expectedValue := ctx.Scores.PClick + float64(p.ConversionWeight)*ctx.Scores.PConv
	roiFactor := expectedValue / (m + priceEps)
	bid := roiFactor * bidScale * ctx.Ledger.PaceFactor()

	if floor := m * minBidRatio; bid < floor {
		bid = floor
	}
	if ceil := m * maxBidRatio; bid > ceil {
		bid = ceil
	}
	return bid
}

// NewPolicy builds the policy for a run. This is the single point where the
// strategy tag is dispatched.
func NewPolicy(params model.StrategyParams) (Policy, error) {
	switch params.Strategy {
	case model.StrategyBaseline:
		return &BaselinePolicy{BaseBid: params.BaseBid}, nil
	case model.StrategyOptimized:
		return &OptimizedPolicy{ConversionWeight: params.ConversionWeight}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", params.Strategy)
	}
}
