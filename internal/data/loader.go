package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"bidwise/internal/model"

	"github.com/xuri/excelize/v2"
)

// Replay logs must carry these columns (after header normalization).
var requiredColumns = []string{
	"campaign_id",
	"hour",
	"device_type",
	"floor_price",
	"market_price",
	"click",
	"conversion",
}

// LoadImpressions reads a replay log from path. CSV and XLSX are supported;
// the format is detected from the file extension. Column headers are
// normalized (trimmed, lowercased, spaces to underscores) and malformed
// numeric cells coerce to zero, matching how upstream exports behave.
func LoadImpressions(path string) ([]model.Impression, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("dataset file not found: %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xls", ".xlsx":
		return loadXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported dataset format: %s", path)
	}
}

func loadCSV(path string) ([]model.Impression, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromRows(rows)
}

func loadXLSX(path string) ([]model.Impression, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in %s", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return fromRows(rows)
}

func fromRows(rows [][]string) ([]model.Impression, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset has no header row")
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[normalizeHeader(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", col)
		}
	}

	out := make([]model.Impression, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		cell := func(col string) string {
			i := idx[col]
			if i >= len(row) {
				return ""
			}
			return row[i]
		}
		out = append(out, model.Impression{
			CampaignID:  int(num(cell("campaign_id"))),
			Hour:        int(num(cell("hour"))),
			Device:      model.DeviceFromCode(int(num(cell("device_type")))),
			FloorPrice:  num(cell("floor_price")),
			MarketPrice: num(cell("market_price")),
			Click:       num(cell("click")) == 1,
			Conversion:  num(cell("conversion")) == 1,
		})
	}
	return out, nil
}

// num coerces a cell to a float; malformed values become 0.
func num(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

func normalizeHeader(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_")
}
