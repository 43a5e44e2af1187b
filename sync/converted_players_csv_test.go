package sync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatConvertedPlayersCSV(t *testing.T) {
	converted := time.Date(2021, 5, 26, 14, 0, 0, 0, time.FixedZone("CEST", 2*60*60))

	result, err := FormatConvertedPlayersCSV([]ConvertedPlayer{
		{BrandName: "Bet One", ClientUserID: "b001", ConversionDate: &converted, CampaignType: "Reactivation"},
		{BrandName: "Bet Two, Ltd", ClientUserID: "c004"},
	})

	require.NoError(t, err)
	expected := "brand_name,client_user_id,conversion_date,campaign_type\n" +
		"Bet One,b001,2021-05-26T12:00:00Z,Reactivation\n" +
		"\"Bet Two, Ltd\",c004,,\n"
	assert.Equal(t, expected, result)
}

func TestFormatConvertedPlayersCSV_Empty(t *testing.T) {
	result, err := FormatConvertedPlayersCSV(nil)

	require.NoError(t, err)
	assert.Equal(t, "brand_name,client_user_id,conversion_date,campaign_type\n", result)
}

func TestSaveConvertedPlayersCSV(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "Samples", "CSV", "ConvertedPlayers.csv")

	err := SaveConvertedPlayersCSV(filename, []ConvertedPlayer{{BrandName: "Bet One", ClientUserID: "b001"}})

	require.NoError(t, err)
	contents, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "Bet One,b001,,")
}
