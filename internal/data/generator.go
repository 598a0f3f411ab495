package data

import (
	"encoding/csv"
	"math/rand"
	"os"
	"strconv"

	"bidwise/internal/model"
)

// GeneratorParams controls synthetic replay-log generation.
type GeneratorParams struct {
	Rows int
	Seed int64
}

// Generate produces a synthetic replay log with the distributions of the
// original training data: evening hours click better, campaigns 2 and 3
// click better, mobile converts better, and the market price sits a little
// above the floor. Output is deterministic for a given seed.
func Generate(p GeneratorParams) []model.Impression {
	rng := rand.New(rand.NewSource(p.Seed))
	out := make([]model.Impression, p.Rows)
	for i := range out {
		campaign := 1 + rng.Intn(5)
		hour := rng.Intn(24)
		device := model.DeviceDesktop
		if rng.Intn(2) == 1 {
			device = model.DeviceMobile
		}
		floor := 1 + rng.Float64()*4
		market := floor + 0.5 + rng.Float64()*2.5

		clickProb := 0.02
		if hour >= 18 && hour <= 22 {
			clickProb += 0.03
		}
		if campaign == 2 || campaign == 3 {
			clickProb += 0.02
		}
		click := rng.Float64() < clickProb

		convProb := 0.01
		if device == model.DeviceMobile {
			convProb += 0.02
		}
		if click {
			convProb += 0.05
		}
		conversion := rng.Float64() < convProb

		out[i] = model.Impression{
			CampaignID:  campaign,
			Hour:        hour,
			Device:      device,
			FloorPrice:  floor,
			MarketPrice: market,
			Click:       click,
			Conversion:  conversion,
		}
	}
	return out
}

// WriteCSV writes impressions in the canonical training-data column order.
func WriteCSV(path string, imps []model.Impression) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"impression_id",
		"campaign_id",
		"hour",
		"device_type",
		"floor_price",
		"market_price",
		"click",
		"conversion",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, imp := range imps {
		row := []string{
			strconv.Itoa(i),
			strconv.Itoa(imp.CampaignID),
			strconv.Itoa(imp.Hour),
			strconv.Itoa(imp.Device.Code()),
			fmtFloat(imp.FloorPrice),
			fmtFloat(imp.MarketPrice),
			boolCell(imp.Click),
			boolCell(imp.Conversion),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

func boolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
