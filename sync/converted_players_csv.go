package sync

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iancoleman/strcase"
)

var convertedPlayersColumns = []string{"BrandName", "ClientUserId", "ConversionDate", "CampaignType"}

// FormatConvertedPlayersCSV formats converted players as CSV with snake_case headers.
func FormatConvertedPlayersCSV(players []ConvertedPlayer) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(convertedPlayersColumns))
	for i, c := range convertedPlayersColumns {
		headers[i] = strcase.ToSnake(c)
	}
	if err := writer.Write(headers); err != nil {
		return "", err
	}

	for _, p := range players {
		conversionDate := ""
		if p.ConversionDate != nil {
			conversionDate = p.ConversionDate.UTC().Format(time.RFC3339)
		}
		if err := writer.Write([]string{p.BrandName, p.ClientUserID, conversionDate, p.CampaignType}); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SaveConvertedPlayersCSV writes converted players to filename, creating its directory.
func SaveConvertedPlayersCSV(filename string, players []ConvertedPlayer) error {
	contents, err := FormatConvertedPlayersCSV(players)
	if err != nil {
		return fmt.Errorf("failed to format converted players %w", err)
	}
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory for %s %w", filename, err)
		}
	}
	if err := os.WriteFile(filename, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("failed to write converted players to %s %w", filename, err)
	}
	return nil
}
