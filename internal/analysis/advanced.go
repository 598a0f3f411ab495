package analysis

import (
	"math"
	"sort"

	"bidwise/internal/model"
)

// HourPoint is one entry of the hourly click/conversion trend.
type HourPoint struct {
	Hour        int `json:"hour"`
	Clicks      int `json:"clicks"`
	Conversions int `json:"conversions"`
}

// HourlyTrend groups raw clicks and conversions by hour, ascending. Hours
// with no rows are omitted.
func HourlyTrend(imps []model.Impression) []HourPoint {
	byHour := make(map[int]*HourPoint)
	for _, imp := range imps {
		p := byHour[imp.Hour]
		if p == nil {
			p = &HourPoint{Hour: imp.Hour}
			byHour[imp.Hour] = p
		}
		if imp.Click {
			p.Clicks++
		}
		if imp.Conversion {
			p.Conversions++
		}
	}

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	out := make([]HourPoint, 0, len(hours))
	for _, h := range hours {
		out = append(out, *byHour[h])
	}
	return out
}

// PriceBin is one bucket of the market-price histogram.
type PriceBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// Fixed histogram edges; the last bin is open-ended.
var priceBinEdges = []struct {
	label string
	lo    float64
	hi    float64
}{
	{"0-2", 0, 2},
	{"2-4", 2, 4},
	{"4-6", 4, 6},
	{"6-8", 6, 8},
	{"8+", 8, math.Inf(1)},
}

// MarketPriceHistogram buckets market prices into the fixed bins used by the
// dashboard. Bins are [lo, hi); all bins appear even when empty.
func MarketPriceHistogram(imps []model.Impression) []PriceBin {
	out := make([]PriceBin, len(priceBinEdges))
	for i, e := range priceBinEdges {
		out[i] = PriceBin{Range: e.label}
	}
	for _, imp := range imps {
		for i, e := range priceBinEdges {
			if imp.MarketPrice >= e.lo && imp.MarketPrice < e.hi {
				out[i].Count++
				break
			}
		}
	}
	return out
}
