package sync

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFieldDocumentation(t *testing.T) {
	config := testConfig()
	config.Source = testFileSettings()

	doc := GenerateFieldDocumentation(config)

	var importFields []string
	for _, row := range doc.Rows {
		if row.Path == "Import" {
			importFields = append(importFields, row.FieldName)
		}
	}
	assert.Equal(t, []string{
		"brand", "country", "depositDate", "mobile", "userId",
		"affiliateCode", "attribute", "registrationDate", "smsConsent", "username", "voiceConsent",
	}, importFields)
	assert.Equal(t, "Update", doc.Rows[len(doc.Rows)-1].Path)

	byField := map[string]FieldDocRow{}
	for _, row := range doc.Rows {
		if row.Path == "Import" {
			byField[row.FieldName] = row
		}
	}
	assert.Equal(t, FieldDocRow{
		FieldName: "depositDate", Path: "Import", FieldType: "Time and date", Required: true,
		SourcePath: "depositDate", Notes: "Parses dates laid out as 02/01/2006",
	}, byField["depositDate"])
	assert.Equal(t, "Normalises country to ISO 3166-1 alpha-2", byField["country"].Notes)
	assert.Equal(t, "Normalises mobile to international digits", byField["mobile"].Notes)
	assert.Equal(t, "(static)", byField["affiliateCode"].SourcePath)
	assert.Equal(t, `Always "direct"`, byField["affiliateCode"].Notes)
	assert.Equal(t, "Boolean", byField["voiceConsent"].FieldType)
}

func TestGenerateFieldDocumentation_RequiredFollowsCampaignType(t *testing.T) {
	config := testConfig()
	config.Source = testFileSettings()
	config.Import.CampaignType = NRC

	doc := GenerateFieldDocumentation(config)

	for _, row := range doc.Rows {
		if row.Path != "Import" {
			continue
		}
		switch row.FieldName {
		case "registrationDate":
			assert.True(t, row.Required)
		case "depositDate":
			assert.False(t, row.Required)
		}
	}
}

func TestFieldDocumentation_FormatCSV(t *testing.T) {
	doc := FieldDocumentation{
		CampaignType: Reactivation,
		SourceFile:   "players.json",
		Rows: []FieldDocRow{
			{FieldName: "mobile", Path: "Import", FieldType: "Text", Required: true, SourcePath: "contact.mobile", Notes: "Normalises mobile to international digits (default region GB)"},
			{FieldName: "eligible", Path: "Update", FieldType: "Boolean", SourcePath: "(unmapped)"},
		},
	}

	result, err := doc.FormatCSV()

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(result), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "# Source: players.json (campaign type Reactivation)", lines[0])
	assert.Equal(t, "Player Field,Path,Field Type,Required,Source Path,Mapping Notes", lines[1])
	assert.Equal(t, "mobile,Import,Text,yes,contact.mobile,Normalises mobile to international digits (default region GB)", lines[2])
	assert.Equal(t, "eligible,Update,Boolean,,(unmapped),", lines[3])
}

func TestParseSourcePath(t *testing.T) {
	path, modifiers := parseSourcePath("player.mobile|@msisdn:gb")
	assert.Equal(t, "player.mobile", path)
	assert.Equal(t, []string{"@msisdn:gb"}, modifiers)

	path, modifiers = parseSourcePath("")
	assert.Equal(t, "(unmapped)", path)
	assert.Nil(t, modifiers)

	assert.Equal(t, `Unknown date layout "julian"`, formatModifierNote("@date:julian"))
	assert.Equal(t, "Modifier: @reverse", formatModifierNote("@reverse"))
}
