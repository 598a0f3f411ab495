package data

import (
	"os"
	"path/filepath"
	"testing"

	"bidwise/internal/model"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadImpressionsCSV(t *testing.T) {
	require := require.New(t)

	// Headers arrive in mixed case with spaces, as spreadsheet exports do.
	path := writeTempCSV(t, `impression_id,Campaign ID,Hour,device_type,Floor Price,market_price,click,conversion
0,2,18,1,1.50,2.75,1,0
1,3,9,2,3.00,4.25,0,1
`)

	imps, err := LoadImpressions(path)
	require.NoError(err)
	require.Len(imps, 2)

	require.Equal(2, imps[0].CampaignID)
	require.Equal(18, imps[0].Hour)
	require.Equal(model.DeviceMobile, imps[0].Device)
	require.Equal(1.5, imps[0].FloorPrice)
	require.Equal(2.75, imps[0].MarketPrice)
	require.True(imps[0].Click)
	require.False(imps[0].Conversion)

	require.Equal(model.DeviceDesktop, imps[1].Device)
	require.False(imps[1].Click)
	require.True(imps[1].Conversion)
}

func TestLoadImpressionsMalformedCellsCoerce(t *testing.T) {
	require := require.New(t)

	path := writeTempCSV(t, `campaign_id,hour,device_type,floor_price,market_price,click,conversion
abc,?,0,n/a,2.5,yes,1
`)

	imps, err := LoadImpressions(path)
	require.NoError(err)
	require.Len(imps, 1)

	require.Equal(0, imps[0].CampaignID)
	require.Equal(0, imps[0].Hour)
	// Legacy exports used device code 0 for desktop.
	require.Equal(model.DeviceDesktop, imps[0].Device)
	require.Equal(0.0, imps[0].FloorPrice)
	require.Equal(2.5, imps[0].MarketPrice)
	require.False(imps[0].Click)
	require.True(imps[0].Conversion)
}

func TestLoadImpressionsMissingColumn(t *testing.T) {
	require := require.New(t)

	path := writeTempCSV(t, `campaign_id,hour,device_type,floor_price,click,conversion
1,0,1,1.0,0,0
`)

	_, err := LoadImpressions(path)
	require.Error(err)
	require.Contains(err.Error(), "market_price")
}

func TestLoadImpressionsUnsupportedFormat(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "train.json")
	require.NoError(os.WriteFile(path, []byte("{}"), 0o644))

	_, err := LoadImpressions(path)
	require.Error(err)
	require.Contains(err.Error(), "unsupported dataset format")
}

func TestLoadImpressionsMissingFile(t *testing.T) {
	require := require.New(t)

	_, err := LoadImpressions(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(err)
	require.Contains(err.Error(), "not found")
}

func TestLoadImpressionsXLSX(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "train.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"campaign_id", "hour", "device_type", "floor_price", "market_price", "click", "conversion"},
		{1, 20, 1, 2.0, 3.5, 1, 1},
		{4, 3, 2, 1.0, 1.2, 0, 0},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(err)
		require.NoError(f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(f.SaveAs(path))
	require.NoError(f.Close())

	imps, err := LoadImpressions(path)
	require.NoError(err)
	require.Len(imps, 2)
	require.Equal(model.DeviceMobile, imps[0].Device)
	require.Equal(3.5, imps[0].MarketPrice)
	require.True(imps[0].Click)
	require.Equal(4, imps[1].CampaignID)
	require.Equal(model.DeviceDesktop, imps[1].Device)
}
