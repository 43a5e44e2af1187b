package sync

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
)

// FieldDocRow represents a single row in the field mapping documentation.
type FieldDocRow struct {
	FieldName  string // Player field name (e.g., "depositDate")
	Path       string // "Import" or "Update"
	FieldType  string // Text, Boolean or Time and date
	Required   bool   // Whether Enteractive needs the field for the campaign type
	SourcePath string // gjson path within a source row
	Notes      string // Mapping notes (modifiers, static values)
}

// FieldDocumentation contains all field documentation for a file source.
type FieldDocumentation struct {
	CampaignType CampaignType
	SourceFile   string
	Rows         []FieldDocRow
}

// GenerateFieldDocumentation documents how a file source maps onto player fields.
func GenerateFieldDocumentation(config Config) FieldDocumentation {
	doc := FieldDocumentation{
		CampaignType: config.Import.CampaignType,
		SourceFile:   config.Source.Path,
		Rows:         []FieldDocRow{},
	}

	required := requiredImportFields(config.Import.CampaignType)
	processFieldMappings(&doc.Rows, "Import", config.Source.ImportFields, required)
	processFieldMappings(&doc.Rows, "Update", config.Source.UpdateFields, map[string]bool{
		"brand":       true,
		"userId":      true,
		"depositDate": true,
		"eligible":    true,
	})

	// Import rows first, then required fields, then by name
	sort.SliceStable(doc.Rows, func(i, j int) bool {
		if doc.Rows[i].Path != doc.Rows[j].Path {
			return doc.Rows[i].Path == "Import"
		}
		if doc.Rows[i].Required != doc.Rows[j].Required {
			return doc.Rows[i].Required
		}
		return doc.Rows[i].FieldName < doc.Rows[j].FieldName
	})

	return doc
}

func requiredImportFields(campaignType CampaignType) map[string]bool {
	result := map[string]bool{
		"brand":   true,
		"userId":  true,
		"country": true,
		"mobile":  true,
	}
	if campaignType.RequiresDepositDate() {
		result["depositDate"] = true
	}
	if campaignType.RequiresRegistrationDate() {
		result["registrationDate"] = true
	}
	return result
}

// processFieldMappings extracts field documentation from a FieldMappings struct.
// Fields are processed in sorted order for deterministic output.
func processFieldMappings(rows *[]FieldDocRow, path string, mappings FieldMappings, required map[string]bool) {
	for _, field := range sortedKeys(mappings.Strings) {
		*rows = append(*rows, createFieldDocRow(field, path, mappings.Strings[field], "Text", required[field]))
	}
	for _, field := range sortedKeys(mappings.Booleans) {
		*rows = append(*rows, createFieldDocRow(field, path, mappings.Booleans[field], "Boolean", required[field]))
	}
	for _, field := range sortedKeys(mappings.Timestamps) {
		*rows = append(*rows, createFieldDocRow(field, path, mappings.Timestamps[field], "Time and date", required[field]))
	}
}

// sortedKeys returns the keys of a map[string]string in sorted order.
func sortedKeys(m map[string]string) []string {
	keys := FieldMapsKeys(m)
	sort.Strings(keys)
	return keys
}

func createFieldDocRow(field string, path string, sourcepathwithmodifiers string, fieldtype string, required bool) FieldDocRow {
	row := FieldDocRow{
		FieldName: field,
		Path:      path,
		FieldType: fieldtype,
		Required:  required,
	}

	if len(sourcepathwithmodifiers) >= 2 && strings.HasPrefix(sourcepathwithmodifiers, "`") && strings.HasSuffix(sourcepathwithmodifiers, "`") {
		row.SourcePath = "(static)"
		row.Notes = fmt.Sprintf("Always %q", strings.Trim(sourcepathwithmodifiers, "`"))
		return row
	}

	sourcePath, modifiers := parseSourcePath(sourcepathwithmodifiers)
	row.SourcePath = sourcePath
	notes := []string{}
	for _, m := range modifiers {
		notes = append(notes, formatModifierNote(m))
	}
	row.Notes = strings.Join(notes, " | ")

	return row
}

// parseSourcePath extracts the source path and modifiers from a mapping value.
// e.g., "player.country|@countryCode" -> ("player.country", ["@countryCode"])
func parseSourcePath(value string) (string, []string) {
	if value == "" {
		return "(unmapped)", nil
	}

	parts := strings.Split(value, "|")
	sourcePath := parts[0]
	var modifiers []string
	for i := 1; i < len(parts); i++ {
		if strings.HasPrefix(parts[i], "@") {
			modifiers = append(modifiers, parts[i])
		}
	}

	return sourcePath, modifiers
}

// formatModifierNote formats a gjson modifier into a human-readable note.
func formatModifierNote(modifier string) string {
	switch {
	case strings.HasPrefix(modifier, "@date:"):
		arg := strings.TrimPrefix(modifier, "@date:")
		if layout, ok := DateLayouts[strings.ToLower(arg)]; ok {
			return fmt.Sprintf("Parses dates laid out as %s", layout)
		}
		return fmt.Sprintf("Unknown date layout %q", arg)
	case modifier == "@countryCode":
		return "Normalises country to ISO 3166-1 alpha-2"
	case modifier == "@msisdn":
		return "Normalises mobile to international digits"
	case strings.HasPrefix(modifier, "@msisdn:"):
		arg := strings.TrimPrefix(modifier, "@msisdn:")
		return fmt.Sprintf("Normalises mobile to international digits (default region %s)", strings.ToUpper(arg))
	default:
		return fmt.Sprintf("Modifier: %s", modifier)
	}
}

// FormatCSV formats the field documentation as CSV.
func (d FieldDocumentation) FormatCSV() (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{fmt.Sprintf("# Source: %s (campaign type %s)", d.SourceFile, d.CampaignType)}); err != nil {
		return "", err
	}

	headers := []string{"Player Field", "Path", "Field Type", "Required", "Source Path", "Mapping Notes"}
	if err := writer.Write(headers); err != nil {
		return "", err
	}

	for _, row := range d.Rows {
		requiredMark := ""
		if row.Required {
			requiredMark = "yes"
		}
		record := []string{row.FieldName, row.Path, row.FieldType, requiredMark, row.SourcePath, row.Notes}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return buf.String(), nil
}
