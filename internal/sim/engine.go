package sim

import (
	"errors"
	"fmt"

	"bidwise/internal/model"
	"bidwise/internal/predict"
)

// ErrScoresRequired is returned when the optimized policy runs without
// predictions. A scorer failure must surface to the caller; the engine never
// substitutes a constant.
var ErrScoresRequired = errors.New("optimized strategy requires prediction scores")

// Termination says why a run stopped.
type Termination string

const (
	TermBudgetExhausted Termination = "budget_exhausted"
	TermStreamExhausted Termination = "stream_exhausted"
)

// Scorer supplies predicted click/conversion probabilities for a batch of
// impressions, index-aligned with the input.
type Scorer interface {
	ScoreAll(imps []model.Impression) ([]predict.Scores, error)
}

type Engine struct{}

func New() *Engine { return &Engine{} }

// Filter applies the device-targeting and active-hours pre-filters,
// preserving stream order.
func Filter(imps []model.Impression, params model.StrategyParams) []model.Impression {
	hours := make(map[int]bool, len(params.ActiveHours))
	for _, h := range params.ActiveHours {
		hours[h] = true
	}
	out := make([]model.Impression, 0, len(imps))
	for _, imp := range imps {
		if params.DeviceTargeting != model.TargetAll && string(params.DeviceTargeting) != string(imp.Device) {
			continue
		}
		if len(hours) > 0 && !hours[imp.Hour] {
			continue
		}
		out = append(out, imp)
	}
	return out
}

// Run replays an already-filtered impression stream against the policy and
// ledger in order. scores must be index-aligned with imps; it may be nil for
// policies that ignore predictions.
//
// The loop is strictly sequential: the pace factor at step i depends on the
// ledger state after step i-1. Identical inputs always produce an identical
// result.
func (e *Engine) Run(imps []model.Impression, scores []predict.Scores, pol Policy, ledger *Ledger, conversionWeight int) (*Result, error) {
	if pol == nil {
		return nil, errors.New("policy is nil")
	}
	if ledger == nil {
		return nil, errors.New("ledger is nil")
	}
	if scores != nil && len(scores) != len(imps) {
		return nil, fmt.Errorf("scores length %d does not match impressions length %d", len(scores), len(imps))
	}
	if _, needsScores := pol.(*OptimizedPolicy); needsScores && scores == nil && len(imps) > 0 {
		return nil, ErrScoresRequired
	}

	agg := newAggregator()
	term := TermStreamExhausted

	for i, imp := range imps {
		var sc predict.Scores
		if scores != nil {
			sc = scores[i]
		}

		bid := pol.Bid(Context{Index: i, Impression: imp, Scores: sc, Ledger: ledger})

		if bid >= imp.MarketPrice && ledger.CanAfford(imp.MarketPrice) {
			if err := ledger.Charge(imp.MarketPrice); err != nil {
				return nil, fmt.Errorf("charge at impression %d: %w", i, err)
			}
			// Historical labels count as the realized outcome only for
			// impressions the policy would have won.
			agg.recordWin(imp)
		}

		if ledger.Remaining() <= 0 {
			term = TermBudgetExhausted
			break
		}
	}

	return agg.finalize(ledger, conversionWeight, term), nil
}

// Simulate is the full run orchestration: validate the configuration, build
// the ledger and policy, filter the stream, batch-score it when the policy
// needs predictions, and replay. scorer may be nil for the baseline strategy.
func Simulate(imps []model.Impression, scorer Scorer, params model.StrategyParams, budget float64) (*Result, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	ledger, err := NewLedger(budget)
	if err != nil {
		return nil, err
	}
	pol, err := NewPolicy(params)
	if err != nil {
		return nil, err
	}

	filtered := Filter(imps, params)

	var scores []predict.Scores
	if params.Strategy == model.StrategyOptimized && len(filtered) > 0 {
		if scorer == nil {
			return nil, ErrScoresRequired
		}
		scores, err = scorer.ScoreAll(filtered)
		if err != nil {
			return nil, fmt.Errorf("score impressions: %w", err)
		}
	}

	return New().Run(filtered, scores, pol, ledger, params.ConversionWeight)
}
