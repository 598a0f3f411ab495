package sim

import (
	"sort"

	"bidwise/internal/model"

	"github.com/shopspring/decimal"
)

// Metrics are the scalar totals of one run.
type Metrics struct {
	TotalImpressions int     `json:"total_impressions"`
	TotalClicks      int     `json:"total_clicks"`
	TotalConversions int     `json:"total_conversions"`
	TotalSpent       float64 `json:"total_spent"`
	RemainingBudget  float64 `json:"remaining_budget"`
	CTR              float64 `json:"ctr"`
	CVR              float64 `json:"cvr"`
	Score            int     `json:"score"`
	AvgCPC           float64 `json:"avg_cpc"`
}

// HourlyPerformance is one per-hour analytics bucket.
type HourlyPerformance struct {
	Hour        int     `json:"hour"`
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CTR         float64 `json:"ctr"`
}

// DevicePerformance is one per-device analytics bucket.
type DevicePerformance struct {
	Clicks      int     `json:"clicks"`
	Conversions int     `json:"conversions"`
	CTR         float64 `json:"ctr"`
	CVR         float64 `json:"cvr"`
}

// Analytics are the breakdown views of one run. Hourly entries are sorted by
// ascending hour; device entries exist only for devices that won impressions.
type Analytics struct {
	HourlyPerformance []HourlyPerformance                `json:"hourly_performance"`
	DevicePerformance map[model.Device]DevicePerformance `json:"device_performance"`
}

// Result is the immutable output of one simulation run.
type Result struct {
	Metrics     Metrics     `json:"metrics"`
	Analytics   Analytics   `json:"analytics"`
	Termination Termination `json:"termination"`
}

type bucket struct {
	impressions int
	clicks      int
	conversions int
}

// aggregator accumulates raw win counters during the replay. Rates and
// rounding are applied once at finalize, never during accumulation.
type aggregator struct {
	impressions int
	clicks      int
	conversions int
	hourly      map[int]*bucket
	device      map[model.Device]*bucket
}

func newAggregator() *aggregator {
	return &aggregator{
		hourly: make(map[int]*bucket),
		device: make(map[model.Device]*bucket),
	}
}

func (a *aggregator) recordWin(imp model.Impression) {
	a.impressions++

	hb := a.hourly[imp.Hour]
	if hb == nil {
		hb = &bucket{}
		a.hourly[imp.Hour] = hb
	}
	db := a.device[imp.Device]
	if db == nil {
		db = &bucket{}
		a.device[imp.Device] = db
	}
	hb.impressions++
	db.impressions++

	if imp.Click {
		a.clicks++
		hb.clicks++
		db.clicks++
	}
	if imp.Conversion {
		a.conversions++
		hb.conversions++
		db.conversions++
	}
}

func (a *aggregator) finalize(ledger *Ledger, conversionWeight int, term Termination) *Result {
	m := Metrics{
		TotalImpressions: a.impressions,
		TotalClicks:      a.clicks,
		TotalConversions: a.conversions,
		TotalSpent:       round2(ledger.Spent()),
		RemainingBudget:  round2(ledger.Remaining()),
		Score:            a.clicks + conversionWeight*a.conversions,
	}
	if a.impressions > 0 {
		m.CTR = round2(float64(a.clicks) / float64(a.impressions) * 100)
	}
	if a.clicks > 0 {
		m.CVR = round2(float64(a.conversions) / float64(a.clicks) * 100)
		m.AvgCPC = round2(ledger.Spent() / float64(a.clicks))
	}

	hours := make([]int, 0, len(a.hourly))
	for h := range a.hourly {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	hourly := make([]HourlyPerformance, 0, len(hours))
	for _, h := range hours {
		b := a.hourly[h]
		entry := HourlyPerformance{Hour: h, Clicks: b.clicks, Conversions: b.conversions}
		if b.impressions > 0 {
			entry.CTR = round2(float64(b.clicks) / float64(b.impressions) * 100)
		}
		hourly = append(hourly, entry)
	}

	devices := make(map[model.Device]DevicePerformance, len(a.device))
	for dev, b := range a.device {
		if b.impressions == 0 {
			continue
		}
		entry := DevicePerformance{
			Clicks:      b.clicks,
			Conversions: b.conversions,
			CTR:         round2(float64(b.clicks) / float64(b.impressions) * 100),
		}
		if b.clicks > 0 {
			entry.CVR = round2(float64(b.conversions) / float64(b.clicks) * 100)
		}
		devices[dev] = entry
	}

	return &Result{
		Metrics:     m,
		Analytics:   Analytics{HourlyPerformance: hourly, DevicePerformance: devices},
		Termination: term,
	}
}

// round2 rounds to two decimal places at the formatting boundary only.
func round2(x float64) float64 {
	f, _ := decimal.NewFromFloat(x).Round(2).Float64()
	return f
}
