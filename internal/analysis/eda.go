package analysis

import (
	"bidwise/internal/model"

	"github.com/shopspring/decimal"
)

// Summary is a dataset-level snapshot: raw click/conversion rates over the
// whole log, independent of any budget or strategy.
type Summary struct {
	TotalRows          int                      `json:"total_rows"`
	TotalClicks        int                      `json:"total_clicks"`
	TotalConversions   int                      `json:"total_conversions"`
	CTR                float64                  `json:"ctr"`
	CVR                float64                  `json:"cvr"`
	AvgMarketPrice     float64                  `json:"avg_market_price"`
	DeviceDistribution map[model.Device]float64 `json:"device_distribution"`
}

// Summarize computes the EDA summary of a replay log. Rates here are
// fractions of all rows, not percentages; they describe the dataset, not a
// simulated campaign.
func Summarize(imps []model.Impression) Summary {
	s := Summary{DeviceDistribution: make(map[model.Device]float64)}
	s.TotalRows = len(imps)
	if len(imps) == 0 {
		return s
	}

	var priceSum float64
	deviceCounts := make(map[model.Device]int)
	for _, imp := range imps {
		if imp.Click {
			s.TotalClicks++
		}
		if imp.Conversion {
			s.TotalConversions++
		}
		priceSum += imp.MarketPrice
		deviceCounts[imp.Device]++
	}

	n := float64(len(imps))
	s.CTR = round(float64(s.TotalClicks)/n, 4)
	s.CVR = round(float64(s.TotalConversions)/n, 4)
	s.AvgMarketPrice = round(priceSum/n, 2)
	for dev, c := range deviceCounts {
		s.DeviceDistribution[dev] = round(float64(c)/n, 4)
	}
	return s
}

func round(x float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(x).Round(places).Float64()
	return f
}
