package sim

import (
	"errors"
	"testing"

	"bidwise/internal/model"
	"bidwise/internal/predict"

	"github.com/stretchr/testify/require"
)

func imp(hour int, dev model.Device, market float64, click, conv bool) model.Impression {
	return model.Impression{
		CampaignID:  1,
		Hour:        hour,
		Device:      dev,
		FloorPrice:  market - 0.5,
		MarketPrice: market,
		Click:       click,
		Conversion:  conv,
	}
}

func baselineParams(baseBid float64) model.StrategyParams {
	return model.StrategyParams{
		Strategy:         model.StrategyBaseline,
		BaseBid:          baseBid,
		ConversionWeight: 5,
		DeviceTargeting:  model.TargetAll,
	}
}

type stubScorer struct {
	scores predict.Scores
	err    error
}

func (s *stubScorer) ScoreAll(imps []model.Impression) ([]predict.Scores, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]predict.Scores, len(imps))
	for i := range out {
		out[i] = s.scores
	}
	return out, nil
}

func TestSimulateBaselineScenario(t *testing.T) {
	require := require.New(t)

	// Market prices 4, 6, 3 against a constant bid of 5: the second
	// impression is lost on price, the other two are won and charged at
	// market price.
	imps := []model.Impression{
		imp(10, model.DeviceMobile, 4, true, false),
		imp(11, model.DeviceDesktop, 6, true, true),
		imp(12, model.DeviceMobile, 3, false, false),
	}

	res, err := Simulate(imps, nil, baselineParams(5), 10)
	require.NoError(err)

	require.Equal(2, res.Metrics.TotalImpressions)
	require.Equal(1, res.Metrics.TotalClicks)
	require.Equal(0, res.Metrics.TotalConversions)
	require.Equal(7.0, res.Metrics.TotalSpent)
	require.Equal(3.0, res.Metrics.RemainingBudget)
	require.Equal(50.0, res.Metrics.CTR)
	require.Equal(0.0, res.Metrics.CVR)
	require.Equal(7.0, res.Metrics.AvgCPC)
	require.Equal(1, res.Metrics.Score)
	require.Equal(TermStreamExhausted, res.Termination)
}

func TestSimulateBudgetExhaustion(t *testing.T) {
	require := require.New(t)

	imps := make([]model.Impression, 5)
	for i := range imps {
		imps[i] = imp(i, model.DeviceMobile, 10, false, false)
	}

	res, err := Simulate(imps, nil, baselineParams(10), 10)
	require.NoError(err)

	// The first win drains the budget exactly; the replay stops there.
	require.Equal(1, res.Metrics.TotalImpressions)
	require.Equal(10.0, res.Metrics.TotalSpent)
	require.Equal(0.0, res.Metrics.RemainingBudget)
	require.Equal(TermBudgetExhausted, res.Termination)
}

func TestSimulateEmptyStream(t *testing.T) {
	require := require.New(t)

	res, err := Simulate(nil, nil, baselineParams(5), 100)
	require.NoError(err)

	require.Equal(0, res.Metrics.TotalImpressions)
	require.Equal(0.0, res.Metrics.TotalSpent)
	require.Equal(100.0, res.Metrics.RemainingBudget)
	require.Equal(0.0, res.Metrics.CTR)
	require.Empty(res.Analytics.HourlyPerformance)
	require.Empty(res.Analytics.DevicePerformance)
	require.Equal(TermStreamExhausted, res.Termination)
}

func TestFilterDeviceAndHours(t *testing.T) {
	require := require.New(t)

	imps := []model.Impression{
		imp(9, model.DeviceMobile, 2, false, false),
		imp(10, model.DeviceDesktop, 2, false, false),
		imp(10, model.DeviceMobile, 2, false, false),
		imp(23, model.DeviceMobile, 2, false, false),
	}

	params := baselineParams(5)
	params.DeviceTargeting = model.TargetMobile
	params.ActiveHours = []int{10, 23}

	got := Filter(imps, params)
	require.Len(got, 2)
	require.Equal(10, got[0].Hour)
	require.Equal(23, got[1].Hour)
	for _, g := range got {
		require.Equal(model.DeviceMobile, g.Device)
	}

	params.DeviceTargeting = model.TargetAll
	params.ActiveHours = nil
	require.Len(Filter(imps, params), 4)
}

func TestSimulateValidation(t *testing.T) {
	require := require.New(t)

	imps := []model.Impression{imp(0, model.DeviceMobile, 2, false, false)}

	_, err := Simulate(imps, nil, baselineParams(5), 0)
	require.Error(err)

	params := baselineParams(5)
	params.DeviceTargeting = "tablet"
	_, err = Simulate(imps, nil, params, 100)
	require.Error(err)

	params = baselineParams(5)
	params.ActiveHours = []int{24}
	_, err = Simulate(imps, nil, params, 100)
	require.Error(err)
}

func TestSimulateOptimizedRequiresScorer(t *testing.T) {
	require := require.New(t)

	imps := []model.Impression{imp(0, model.DeviceMobile, 2, false, false)}
	params := baselineParams(5)
	params.Strategy = model.StrategyOptimized

	_, err := Simulate(imps, nil, params, 100)
	require.ErrorIs(err, ErrScoresRequired)

	// An empty filtered stream never touches the scorer.
	params.ActiveHours = []int{5}
	res, err := Simulate(imps, nil, params, 100)
	require.NoError(err)
	require.Equal(0, res.Metrics.TotalImpressions)
}

func TestSimulateScorerFailurePropagates(t *testing.T) {
	require := require.New(t)

	imps := []model.Impression{imp(0, model.DeviceMobile, 2, false, false)}
	params := baselineParams(5)
	params.Strategy = model.StrategyOptimized

	scorerErr := errors.New("artifact corrupt")
	_, err := Simulate(imps, &stubScorer{err: scorerErr}, params, 100)
	require.ErrorIs(err, scorerErr)
}

func TestSimulateOptimizedSpendStaysWithinBudget(t *testing.T) {
	require := require.New(t)

	imps := make([]model.Impression, 200)
	for i := range imps {
		imps[i] = imp(i%24, model.DeviceMobile, 2+float64(i%5), i%7 == 0, i%13 == 0)
	}

	params := baselineParams(5)
	params.Strategy = model.StrategyOptimized
	scorer := &stubScorer{scores: predict.Scores{PClick: 0.1, PConv: 0.05}}

	res, err := Simulate(imps, scorer, params, 80)
	require.NoError(err)
	require.Greater(res.Metrics.TotalImpressions, 0)
	require.LessOrEqual(res.Metrics.TotalSpent, 80.0)
	require.GreaterOrEqual(res.Metrics.RemainingBudget, 0.0)
	require.InDelta(80.0, res.Metrics.TotalSpent+res.Metrics.RemainingBudget, 0.01)
}

func TestSimulateDeterminism(t *testing.T) {
	require := require.New(t)

	imps := make([]model.Impression, 100)
	for i := range imps {
		dev := model.DeviceMobile
		if i%3 == 0 {
			dev = model.DeviceDesktop
		}
		imps[i] = imp(i%24, dev, 1+float64(i%9)*0.7, i%5 == 0, i%11 == 0)
	}

	params := baselineParams(4)
	first, err := Simulate(imps, nil, params, 150)
	require.NoError(err)
	second, err := Simulate(imps, nil, params, 150)
	require.NoError(err)
	require.Equal(first, second)
}

func TestSimulateAnalyticsAdditivity(t *testing.T) {
	require := require.New(t)

	imps := make([]model.Impression, 60)
	for i := range imps {
		dev := model.DeviceMobile
		if i%2 == 0 {
			dev = model.DeviceDesktop
		}
		imps[i] = imp(i%6, dev, 1, i%4 == 0, i%10 == 0)
	}

	// A large budget and a bid above every market price wins everything, so
	// the buckets must sum back to the totals.
	res, err := Simulate(imps, nil, baselineParams(100), 1e6)
	require.NoError(err)
	require.Equal(60, res.Metrics.TotalImpressions)

	var hourClicks, hourConvs int
	for _, h := range res.Analytics.HourlyPerformance {
		hourClicks += h.Clicks
		hourConvs += h.Conversions
	}
	require.Equal(res.Metrics.TotalClicks, hourClicks)
	require.Equal(res.Metrics.TotalConversions, hourConvs)

	var devClicks, devConvs int
	for _, d := range res.Analytics.DevicePerformance {
		devClicks += d.Clicks
		devConvs += d.Conversions
	}
	require.Equal(res.Metrics.TotalClicks, devClicks)
	require.Equal(res.Metrics.TotalConversions, devConvs)

	expectedScore := res.Metrics.TotalClicks + 5*res.Metrics.TotalConversions
	require.Equal(expectedScore, res.Metrics.Score)
}

func TestRunRejectsMisalignedScores(t *testing.T) {
	require := require.New(t)

	ledger, err := NewLedger(100)
	require.NoError(err)

	imps := []model.Impression{
		imp(0, model.DeviceMobile, 2, false, false),
		imp(1, model.DeviceMobile, 2, false, false),
	}
	_, err = New().Run(imps, []predict.Scores{{}}, &BaselinePolicy{BaseBid: 5}, ledger, 5)
	require.Error(err)
}

func TestRunRejectsNilPolicyAndLedger(t *testing.T) {
	require := require.New(t)

	ledger, err := NewLedger(100)
	require.NoError(err)

	_, err = New().Run(nil, nil, nil, ledger, 5)
	require.Error(err)

	_, err = New().Run(nil, nil, &BaselinePolicy{BaseBid: 5}, nil, 5)
	require.Error(err)
}
